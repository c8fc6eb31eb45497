package enrich

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/xemaha/watchkit/core"
	"github.com/xemaha/watchkit/pipeline"
	"github.com/xemaha/watchkit/pkg/utils"
)

// EnrichNode 是元数据补全节点：对带候选对象的 Item 并发拉取详情
// （导演/演员/类型/关键词），合并进候选对象供口味打分使用。
//
// 部分失败退化：单个 ID 拉取失败（或超时）只标记该候选为未补全，
// 对应信号不加分，绝不中断整批。外部接口的限流/重试属于 Detailer 实现方。
//
// 补全可以一批做完，也可以按详情到达增量做——打分是纯函数，
// 两种用法对相同输入产出相同分数。
type EnrichNode struct {
	Detailer Detailer

	// MaxConcurrent 最大并发拉取数（0 表示无限制）
	MaxConcurrent int

	// Timeout 单个详情拉取的超时时间
	Timeout time.Duration
}

func (n *EnrichNode) Name() string        { return "enrich.details" }
func (n *EnrichNode) Kind() pipeline.Kind { return pipeline.KindPostProcess }

func (n *EnrichNode) Process(
	ctx context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.Detailer == nil || len(items) == 0 {
		return items, nil
	}

	var mu sync.Mutex
	eg, egCtx := errgroup.WithContext(ctx)

	// 限流：使用 semaphore 控制并发数（MaxConcurrent <= 0 时不限流）
	var sem chan struct{}
	if n.MaxConcurrent > 0 {
		sem = make(chan struct{}, n.MaxConcurrent)
	}

	for _, item := range items {
		it := item
		if it == nil || it.Candidate() == nil {
			continue
		}

		eg.Go(func() error {
			if n.MaxConcurrent > 0 {
				sem <- struct{}{}
				defer func() { <-sem }()
			}

			fetchCtx := egCtx
			if n.Timeout > 0 {
				var cancel context.CancelFunc
				fetchCtx, cancel = context.WithTimeout(egCtx, n.Timeout)
				defer cancel()
			}

			c := it.Candidate()
			details, err := n.Detailer.Fetch(fetchCtx, c.ID, c.MediaType)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				// 部分失败退化为"未补全"，对应信号不加分
				it.PutLabel("enriched", utils.Label{Value: "false", Source: "enrich"})
				return nil
			}
			details.Apply(c)
			it.PutLabel("enriched", utils.Label{Value: "true", Source: "enrich"})
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return items, nil
}
