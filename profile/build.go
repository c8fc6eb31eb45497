// Package profile 构建用户口味画像。
//
// 画像来自用户自己的历史评分：高分条目贡献偏好信号（类型/导演/演员/关键词），
// 所有评过分的条目进入排除集，避免把看过的东西再推一遍。
package profile

import "github.com/xemaha/watchkit/core"

// Entry 是画像构建的输入：用户对某个条目的一次评分及该条目的元数据。
// 元数据允许缺失（外部详情没补全时），缺什么就少贡献什么信号。
type Entry struct {
	ItemID   string
	Score    int // 1..5
	Genres   []string
	Director string
	Actors   []string
	Keywords []string
}

// Builder 从用户评分历史构建口味画像。
type Builder struct {
	// MinScore 高分阈值：评分 >= MinScore 的条目才贡献偏好信号，默认 4
	MinScore int
}

func (b *Builder) defaults() int {
	if b != nil && b.MinScore > 0 {
		return b.MinScore
	}
	return 4
}

// Build 基于 userID 的评分条目构建画像。
//
// 规则：
//   - 所有条目的 ID 进入 ExcludeIDs（无论分数高低）
//   - 仅 Score >= MinScore 的条目贡献类型/导演/演员/关键词
//   - 关键词频次按出现次数累加，仅作为透传元数据
//
// 无评分时返回零画像（不是错误）。
func (b *Builder) Build(userID string, entries []Entry) core.TasteProfile {
	_ = userID // 画像与用户一一对应，调用方持有映射关系
	minScore := b.defaults()

	var (
		ids       []string
		genres    []string
		directors []any
		actors    []any
		keywords  []any
	)
	for _, e := range entries {
		if e.ItemID != "" {
			ids = append(ids, e.ItemID)
		}
		if e.Score < minScore {
			continue
		}
		genres = append(genres, e.Genres...)
		if e.Director != "" {
			directors = append(directors, e.Director)
		}
		for _, a := range e.Actors {
			actors = append(actors, a)
		}
		for _, k := range e.Keywords {
			keywords = append(keywords, k)
		}
	}

	var p core.TasteProfile
	return p.
		WithExcludeIDs(ids...).
		WithGenres(genres...).
		WithDirectors(directors...).
		WithActors(actors...).
		WithKeywords(keywords...)
}

// Build 使用默认配置构建画像。
func Build(userID string, entries []Entry) core.TasteProfile {
	b := &Builder{}
	return b.Build(userID, entries)
}

// FromRatedItems 从共享评分快照中抽取 userID 自己的评分，
// 转换为画像构建输入。快照条目不带详情元数据，
// 只能贡献排除集；详情由调用方另行补全后再 Build。
func FromRatedItems(userID string, items []*core.RatedItem) []Entry {
	var out []Entry
	for _, item := range items {
		if item == nil {
			continue
		}
		if score, ok := item.RatingBy(userID); ok {
			out = append(out, Entry{ItemID: item.ID, Score: score})
		}
	}
	return out
}
