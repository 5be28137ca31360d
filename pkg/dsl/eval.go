package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/shoprec/core"
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

// Eval 是候选规则的解释器，使用 CEL (Common Expression Language) 实现。
//
// 表达式语法（CEL 标准语法）：
//   - 基础：label.recall_source == "item_cf"
//   - 数值：item.score > 0.7 / item.score >= 0.5
//   - 逻辑：item.score > 0.8 && rctx.user_id != 0
//   - 用户级标签：rctx.labels.model_version == "..."
//   - 存在性：label.recall_source != null
//
// 运营可通过配置下发表达式，在召回之后、截断之前剔除候选。
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

// Evaluate 解析并执行 CEL 表达式，返回布尔结果。
// 空表达式恒为 true。
// 注意：CEL 访问不存在的 key 会报错，存在性检查请使用 label.key != null。
func (e *Eval) Evaluate(expr string) (bool, error) {
	if expr == "" {
		return true, nil
	}
	if e.env == nil {
		return false, fmt.Errorf("dsl: cel env not initialized")
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
func (e *Eval) buildInput() map[string]interface{} {
	labels := make(map[string]interface{})
	labelAccessor := make(map[string]interface{})
	if e.item != nil {
		for k, v := range e.item.Labels {
			labels[k] = map[string]interface{}{
				"value":  v.Value,
				"source": v.Source,
			}
			// label.recall_source 直接返回 value，便于书写短表达式
			labelAccessor[k] = v.Value
		}
	}

	item := map[string]interface{}{}
	if e.item != nil {
		item["id"] = e.item.ID
		item["score"] = e.item.Score
		item["meta"] = e.item.Meta
		item["labels"] = labels
	}

	rctx := map[string]interface{}{}
	if e.rctx != nil {
		rctxLabels := make(map[string]interface{})
		for k, v := range e.rctx.Labels {
			rctxLabels[k] = v.Value
		}
		rctx["user_id"] = e.rctx.UserID
		rctx["count"] = e.rctx.Count
		rctx["params"] = e.rctx.Params
		rctx["labels"] = rctxLabels
	}

	return map[string]interface{}{
		"item":  item,
		"label": labelAccessor,
		"rctx":  rctx,
	}
}
