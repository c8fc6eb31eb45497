package filter

import (
	"context"

	"github.com/xemaha/watchkit/core"
	"github.com/xemaha/watchkit/recall"
)

// RatedFilter 过滤掉目标用户已经评过分的条目：
// 自己看过的东西不需要再被推荐。
// 支持两种数据源：内存快照（Items）或评分快照存储（Store）。
type RatedFilter struct {
	// Items 是内存中的评分快照
	Items []*core.RatedItem

	// Store 用于从存储中读取快照（可选；Items 为空时使用）
	Store recall.SnapshotStore
}

func (f *RatedFilter) Name() string {
	return "filter.rated"
}

func (f *RatedFilter) ShouldFilter(
	ctx context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	if rctx == nil || rctx.UserID == "" {
		return false, nil
	}

	items := f.Items
	if items == nil && f.Store != nil {
		snapshot, err := f.Store.Snapshot(ctx)
		if err == nil {
			items = snapshot
		}
	}

	for _, it := range items {
		if it == nil || it.ID != item.ID {
			continue
		}
		if _, ok := it.RatingBy(rctx.UserID); ok {
			return true, nil
		}
	}

	return false, nil
}
