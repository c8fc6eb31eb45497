package recall

import (
	"context"

	"github.com/xemaha/watchkit/core"
)

// Source 表示一个可复用的召回源（协同过滤/片库搜索/热门兜底/...）。
// 你可以把它理解为"可并发 fan-out 的策略单元"。
type Source interface {
	Name() string
	Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error)
}

// SnapshotStore 提供全量评分快照：所有条目带全部评分，反范式化后整体给出。
// 协同过滤不做分页，调用方必须提供完整快照。
type SnapshotStore interface {
	Snapshot(ctx context.Context) ([]*core.RatedItem, error)
}
