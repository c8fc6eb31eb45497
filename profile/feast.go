package profile

import (
	"context"
	"strconv"
	"strings"

	"github.com/xemaha/watchkit/core"
	"github.com/xemaha/watchkit/feast"
)

// 画像在 Feast 在线存储里的默认特征名。
// 集合类特征物化为逗号分隔的字符串，关键词物化为 "name:count" 形式。
const (
	defaultFeatureGenres     = "taste_profile:genres"
	defaultFeatureDirectors  = "taste_profile:directors"
	defaultFeatureActors     = "taste_profile:actors"
	defaultFeatureKeywords   = "taste_profile:keywords"
	defaultFeatureExcludeIDs = "taste_profile:exclude_ids"
)

// FeastProvider 从 Feast 在线存储加载用户口味画像。
//
// 离线任务把画像物化到 Feast，推荐链路按 user_id 实时拉取，
// 不必每次都从评分历史重算。
type FeastProvider struct {
	Client feast.Client

	// Project Feast 项目名，空则用客户端默认
	Project string

	// EntityKey 实体键名，默认 "user_id"
	EntityKey string

	// Features 特征名列表，空则用默认的 taste_profile 特征集
	Features []string
}

func (p *FeastProvider) defaults() (string, []string) {
	entityKey := p.EntityKey
	if entityKey == "" {
		entityKey = "user_id"
	}
	features := p.Features
	if len(features) == 0 {
		features = []string{
			defaultFeatureGenres,
			defaultFeatureDirectors,
			defaultFeatureActors,
			defaultFeatureKeywords,
			defaultFeatureExcludeIDs,
		}
	}
	return entityKey, features
}

// Load 按 userID 拉取画像。特征不存在或为空时返回零画像（不是错误），
// 只有客户端调用失败才返回错误。
func (p *FeastProvider) Load(ctx context.Context, userID string) (core.TasteProfile, error) {
	var empty core.TasteProfile
	if p.Client == nil {
		return empty, core.NewDomainError(core.ModuleProfile, core.ErrorCodeUnavailable, "profile: no feast client configured")
	}
	if userID == "" {
		return empty, core.NewDomainError(core.ModuleProfile, core.ErrorCodeInvalidInput, "profile: userID is required")
	}

	entityKey, features := p.defaults()
	resp, err := p.Client.GetOnlineFeatures(ctx, &feast.GetOnlineFeaturesRequest{
		Features:   features,
		EntityRows: []map[string]interface{}{{entityKey: userID}},
		Project:    p.Project,
	})
	if err != nil {
		return empty, err
	}
	if len(resp.FeatureVectors) == 0 {
		return empty, nil
	}

	values := resp.FeatureVectors[0].Values
	profile := empty.
		WithGenres(splitList(stringFeature(values, defaultFeatureGenres))...).
		WithExcludeIDs(splitList(stringFeature(values, defaultFeatureExcludeIDs))...)
	for _, name := range splitList(stringFeature(values, defaultFeatureDirectors)) {
		profile = profile.WithDirectors(name)
	}
	for _, name := range splitList(stringFeature(values, defaultFeatureActors)) {
		profile = profile.WithActors(name)
	}
	for _, pair := range splitList(stringFeature(values, defaultFeatureKeywords)) {
		name, count := parseKeywordPair(pair)
		if name != "" {
			profile = profile.WithKeywords(core.PreferenceEntry{Name: name, Count: count})
		}
	}
	return profile, nil
}

func stringFeature(values map[string]interface{}, name string) string {
	if values == nil {
		return ""
	}
	if s, ok := values[name].(string); ok {
		return s
	}
	return ""
}

// splitList 拆分逗号分隔的特征值，空段丢弃。
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseKeywordPair 解析 "name:count" 形式的关键词特征；
// 无冒号或 count 非法时按频次 1 处理。
func parseKeywordPair(pair string) (string, int) {
	idx := strings.LastIndex(pair, ":")
	if idx < 0 {
		return strings.TrimSpace(pair), 1
	}
	name := strings.TrimSpace(pair[:idx])
	count, err := strconv.Atoi(strings.TrimSpace(pair[idx+1:]))
	if err != nil || count <= 0 {
		count = 1
	}
	return name, count
}
