package rerank

import (
	"context"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/pipeline"
)

// TopNNode 是一个 Top-N 截断节点，在打分排序之后截取前 N 个候选。
//
// N 的取值优先级：rctx.Count（请求指定）→ Default（配置默认，通常 10）。
// 候选不足 N 时原样返回，不做填充。
type TopNNode struct {
	// Default 是未指定请求数量时的默认值；<=0 时取 10
	Default int
}

const defaultTopN = 10

func (n *TopNNode) Name() string {
	return "rerank.topn"
}

func (n *TopNNode) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *TopNNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	limit := n.Default
	if limit <= 0 {
		limit = defaultTopN
	}
	if rctx != nil && rctx.Count > 0 {
		limit = rctx.Count
	}

	if len(items) <= limit {
		return items, nil
	}
	return items[:limit], nil
}
