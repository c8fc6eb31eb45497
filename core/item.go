package core

import "github.com/xemaha/watchkit/pkg/utils"

// Item 是推荐链路中的统一承载结构：分数、元信息、标签。
// Labels 用于解释与策略驱动；Score 用于排序决策；
// Meta 承载领域对象（如 *Candidate、*Recommendation），供各 Node 透传。
type Item struct {
	ID     string
	Score  float64
	Meta   map[string]any
	Labels map[string]utils.Label
}

func NewItem(id string) *Item {
	return &Item{
		ID:     id,
		Score:  0,
		Meta:   make(map[string]any),
		Labels: make(map[string]utils.Label),
	}
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}

// Candidate 从 Meta 取出候选对象；不存在时返回 nil。
func (it *Item) Candidate() *Candidate {
	if it.Meta == nil {
		return nil
	}
	if c, ok := it.Meta["candidate"].(*Candidate); ok {
		return c
	}
	return nil
}

// SetCandidate 将候选对象写入 Meta。
func (it *Item) SetCandidate(c *Candidate) {
	if it.Meta == nil {
		it.Meta = make(map[string]any)
	}
	it.Meta["candidate"] = c
}
