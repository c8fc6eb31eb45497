package recall

import (
	"context"

	"github.com/xemaha/watchkit/core"
	"github.com/xemaha/watchkit/pipeline"
	"github.com/xemaha/watchkit/pkg/utils"
)

// CatalogSearcher 是外部片库搜索接口（TMDB 类元数据服务的本地抽象）。
// 返回带媒介形态标记的原始候选；重试/退避等策略属于实现方，这里不管。
type CatalogSearcher interface {
	Search(ctx context.Context, query, mediaType string) ([]core.Candidate, error)
}

// Catalog 是片库搜索召回源：把外部搜索结果封装为候选 Item，
// 供后续补全（enrich）与口味打分（rank.discovery）使用。
//
// 查询词从 rctx.Params["query"] 取；媒介形态优先取 Params["media_type"]，
// 否则使用 MediaType 字段。查询词为空时召回为空。
type Catalog struct {
	Searcher  CatalogSearcher
	MediaType string // 默认媒介形态过滤（可选）
}

func (r *Catalog) Name() string        { return "recall.catalog" }
func (r *Catalog) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall。
func (r *Catalog) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口。
func (r *Catalog) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Searcher == nil || rctx == nil {
		return nil, nil
	}

	query := ""
	mediaType := r.MediaType
	if rctx.Params != nil {
		if q, ok := rctx.Params["query"].(string); ok {
			query = q
		}
		if mt, ok := rctx.Params["media_type"].(string); ok && mt != "" {
			mediaType = mt
		}
	}
	if query == "" {
		return nil, nil
	}

	candidates, err := r.Searcher.Search(ctx, query, mediaType)
	if err != nil {
		return nil, err
	}

	out := make([]*core.Item, 0, len(candidates))
	for i := range candidates {
		c := candidates[i]
		it := core.NewItem(c.ID)
		it.SetCandidate(&c)
		it.PutLabel("recall_source", utils.Label{Value: "catalog", Source: "recall"})
		it.PutLabel("media_type", utils.Label{Value: c.MediaType, Source: "recall"})
		out = append(out, it)
	}
	return out, nil
}
