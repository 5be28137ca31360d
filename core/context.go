package core

import "github.com/rushteam/shoprec/pkg/utils"

// RecommendContext 承载一次推荐请求的用户/场景信息，贯穿整个 Pipeline 透传。
type RecommendContext struct {
	UserID int64

	// Count 是期望返回的推荐数量（<=0 时由 TopN 节点取默认值）
	Count int

	// Purchased 是用户已购商品集合，由召回节点在读取订单后回填，
	// 供下游节点（过滤/解释）复用，避免重复查询
	Purchased map[int64]struct{}

	// Labels 是用户级标签，可驱动 Pipeline 行为
	Labels map[string]utils.Label

	// Params 请求级上下文参数（device_type、scene 等）
	Params map[string]any
}

// HasPurchased 判断用户是否已购买过该商品。
func (rctx *RecommendContext) HasPurchased(productID int64) bool {
	if rctx.Purchased == nil {
		return false
	}
	_, ok := rctx.Purchased[productID]
	return ok
}

// PutLabel 写入用户级 Label，供下游节点与过滤表达式（rctx.labels.*）使用。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}
