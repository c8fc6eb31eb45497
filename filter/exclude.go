package filter

import (
	"context"

	"github.com/xemaha/watchkit/core"
)

// ExcludeIDFilter 过滤掉画像排除集中的条目
// （已在片单/收藏里的条目不重复推荐）。
// 优先使用 IDs；为空时回退到 rctx.Profile.ExcludeIDs。
type ExcludeIDFilter struct {
	// IDs 是内存中的排除条目 ID 列表
	IDs []string
}

func (f *ExcludeIDFilter) Name() string {
	return "filter.exclude"
}

func (f *ExcludeIDFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}

	for _, id := range f.IDs {
		if item.ID == id {
			return true, nil
		}
	}

	if rctx != nil && rctx.Profile != nil && rctx.Profile.Excluded(item.ID) {
		return true, nil
	}

	return false, nil
}
