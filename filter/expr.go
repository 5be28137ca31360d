package filter

import (
	"context"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/pkg/dsl"
)

// ExprFilter 是表达式过滤器：用 CEL 表达式描述"应被剔除"的候选。
// 任一表达式为 true 即过滤。表达式由配置下发，例如：
//
//	item.score < 0.1
//	label.recall_source == "item_cf" && item.score < 0.05
//
// 表达式编译/求值出错时保留候选（宁可多推，不因规则笔误丢流量）。
type ExprFilter struct {
	// Exprs 是 CEL 表达式列表，命中任意一条即过滤
	Exprs []string
}

func NewExprFilter(exprs []string) *ExprFilter {
	return &ExprFilter{Exprs: exprs}
}

func (f *ExprFilter) Name() string {
	return "filter.expr"
}

func (f *ExprFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	if len(f.Exprs) == 0 {
		return false, nil
	}

	eval := dsl.NewEval(item, rctx)
	for _, expr := range f.Exprs {
		if expr == "" {
			continue
		}
		matched, err := eval.Evaluate(expr)
		if err != nil {
			continue
		}
		if matched {
			return true, nil
		}
	}
	return false, nil
}
