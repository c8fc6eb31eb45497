package enrich

import (
	"context"

	"github.com/xemaha/watchkit/core"
)

// Details 是详情接口返回的补全元数据。任意字段都可能为空。
type Details struct {
	Director   string   `json:"director,omitempty"`
	Actors     []string `json:"actors,omitempty"`
	Genres     []string `json:"genres,omitempty"`
	Keywords   []string `json:"keywords,omitempty"`
	TrailerURL string   `json:"trailer_url,omitempty"`
}

// Detailer 是外部详情接口的抽象（TMDB 类元数据服务的 detail 端点）。
// 单个 ID 拉取失败返回 error；调用方（EnrichNode）以空 Details 兜底，
// 不会因此中断整批补全。
type Detailer interface {
	// Fetch 按条目 ID 和媒介形态拉取详情
	Fetch(ctx context.Context, id, mediaType string) (Details, error)
}

// Apply 把详情合并进候选对象：只填充空字段，已有值不覆盖。
func (d Details) Apply(c *core.Candidate) {
	if c == nil {
		return
	}
	if c.Director == "" {
		c.Director = d.Director
	}
	if len(c.Actors) == 0 {
		c.Actors = d.Actors
	}
	if len(c.Genres) == 0 {
		c.Genres = d.Genres
	}
	if len(c.Keywords) == 0 {
		c.Keywords = d.Keywords
	}
	if c.TrailerURL == "" {
		c.TrailerURL = d.TrailerURL
	}
}
