package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/xemaha/watchkit/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
)

// initCELEnv 初始化 CEL 环境，定义变量
func initCELEnv() (*cel.Env, error) {
	env, err := cel.NewEnv(
		cel.Variable("item", cel.DynType),
		cel.Variable("candidate", cel.DynType),
		cel.Variable("label", cel.DynType),
		cel.Variable("rctx", cel.DynType),
	)
	return env, err
}

// getCELEnv 获取或创建 CEL 环境
func getCELEnv() (*cel.Env, error) {
	var err error
	celEnvOnce.Do(func() {
		celEnv, err = initCELEnv()
	})
	return celEnv, err
}

// Eval 是规则解释器，使用 CEL (Common Expression Language) 实现。
// 用于配置驱动的候选过滤规则，例如按媒介形态或投票统计排除候选。
//
// 表达式语法（CEL 标准语法）：
//   - 基础：label.recall_source == "catalog" / candidate.media_type == "film"
//   - 数值：item.score > 6.5 / candidate.vote_count >= 100
//   - 逻辑：candidate.media_type == "series" && candidate.vote_average > 7.0
//   - 存在性：label.recall_source != null
//
// 示例：
//   - `candidate.vote_count < 50` → 投票太少的候选
//   - `label.recall_source.contains("hot")` → 热门兜底来源
type Eval struct {
	item *core.Item
	rctx *core.RecommendContext
	env  *cel.Env
}

// NewEval 创建一个新的规则解释器。
func NewEval(item *core.Item, rctx *core.RecommendContext) *Eval {
	env, _ := getCELEnv()
	return &Eval{
		item: item,
		rctx: rctx,
		env:  env,
	}
}

// Evaluate 解析并执行规则表达式，返回布尔结果。
// 空表达式恒为 true。
// 注意：CEL 访问不存在的 key 会报错，用 label.key != null 检查存在性。
func (e *Eval) Evaluate(expr string) (bool, error) {
	if expr == "" {
		return true, nil
	}

	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return false, fmt.Errorf("compile error: %v", issues.Err())
	}

	prg, err := e.env.Program(ast)
	if err != nil {
		return false, fmt.Errorf("program error: %v", err)
	}

	out, _, err := prg.Eval(e.buildInput())
	if err != nil {
		return false, fmt.Errorf("eval error: %v", err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}

	return result, nil
}

// buildInput 构建 CEL 表达式的输入数据
func (e *Eval) buildInput() map[string]any {
	labels := make(map[string]any)
	labelAccessor := make(map[string]any)
	if e.item != nil {
		for k, v := range e.item.Labels {
			labels[k] = map[string]any{
				"value":  v.Value,
				"source": v.Source,
			}
			// label.recall_source 直接取 value，兼容简写
			labelAccessor[k] = v.Value
		}
	}

	item := map[string]any{}
	candidate := map[string]any{}
	if e.item != nil {
		item = map[string]any{
			"id":     e.item.ID,
			"score":  e.item.Score,
			"labels": labels,
		}
		if c := e.item.Candidate(); c != nil {
			candidate = map[string]any{
				"id":           c.ID,
				"title":        c.Title,
				"media_type":   c.MediaType,
				"vote_average": c.VoteAverage,
				"vote_count":   c.VoteCount,
				"popularity":   c.Popularity,
				"director":     c.Director,
				"actors":       c.Actors,
				"genres":       c.Genres,
				"keywords":     c.Keywords,
			}
		}
	}

	rctx := map[string]any{}
	if e.rctx != nil {
		rctx = map[string]any{
			"user_id":   e.rctx.UserID,
			"user_name": e.rctx.UserName,
			"scene":     e.rctx.Scene,
			"params":    e.rctx.Params,
		}
	}

	return map[string]any{
		"item":      item,
		"candidate": candidate,
		"label":     labelAccessor,
		"rctx":      rctx,
	}
}
