package filter

import (
	"context"

	"github.com/xemaha/watchkit/core"
	"github.com/xemaha/watchkit/pkg/dsl"
)

// RuleFilter 是规则过滤器：用 CEL 表达式描述要过滤的条目，
// 支持配置驱动的运营规则（如排除投票太少或特定媒介形态的候选）。
//
// 表达式返回 true 表示过滤掉该条目。示例：
//   - `candidate.vote_count < 50`
//   - `candidate.media_type == "book" && candidate.vote_average < 6.0`
//   - `label.recall_source == "hot" && item.score == 0.0`
type RuleFilter struct {
	// Expr 是 CEL 过滤表达式；为空时不过滤任何条目
	Expr string
}

func (f *RuleFilter) Name() string {
	return "filter.rule"
}

func (f *RuleFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	if f.Expr == "" {
		return false, nil
	}

	matched, err := dsl.NewEval(item, rctx).Evaluate(f.Expr)
	if err != nil {
		// 表达式错误时保留条目，错误交给 FilterNode 忽略策略
		return false, err
	}
	return matched, nil
}
