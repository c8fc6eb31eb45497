package pipeline

import (
	"context"

	"github.com/xemaha/watchkit/core"
)

// Pipeline 是 watchkit 的核心抽象：把推荐逻辑拆成可组合的 Node 链。
// 典型编排：召回（协同过滤 / 片库）→ 补全 → 过滤 → 打分 → TopN。
type Pipeline struct {
	Nodes []Node
}

func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	cur := items
	for _, node := range p.Nodes {
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
