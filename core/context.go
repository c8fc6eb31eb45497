package core

import "github.com/xemaha/watchkit/pkg/utils"

// RecommendContext 承载用户/场景/实时信息，贯穿整个 Pipeline 透传。
type RecommendContext struct {
	UserID   string // 使用 string 类型（通用，支持所有 ID 格式）
	UserName string // 展示名，用于解释文案
	Scene    string // feed / discovery / watchlist 等

	// Profile 是用户口味画像（偏好类型/导演/演员/关键词）
	Profile *TasteProfile

	// Labels 是用户级标签，可驱动整个 Pipeline 行为
	// 例如：新用户、重度用户等
	Labels map[string]utils.Label

	// Params 请求级上下文参数，包含：
	// - 请求参数：query, media_type, max_results 等
	// - 实时信号：realtime_* 前缀区分
	Params map[string]any
}

// PutLabel 写入用户级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取用户级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}

// GetProfile 获取口味画像；未设置时返回空画像（零值可用）。
func (rctx *RecommendContext) GetProfile() TasteProfile {
	if rctx.Profile != nil {
		return *rctx.Profile
	}
	return TasteProfile{}
}
