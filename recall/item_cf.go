// Package recall 实现在线打分侧的召回：基于已训练的物品相似度快照，
// 为用户生成带分候选集。
package recall

import (
	"context"
	"fmt"
	"sort"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/history"
	"github.com/rushteam/shoprec/pipeline"
	"github.com/rushteam/shoprec/pkg/utils"
)

// ItemCF 是基于物品的协同过滤召回节点（Item-based CF, i2i）。
//
// 核心思想："被同一批用户购买的商品，相互相似"
//
// 打分流程：
//  1. 取用户的已购商品集合（与训练侧相同的订单状态过滤）
//  2. 对每个已购且在训练集中的商品，把它与全体候选的相似度累加到候选分上
//  3. 已购商品只作排除项，不参与被推荐
//  4. 分数 <= 0 的候选（无任何共购信号）被丢弃
//
// 空状态语义（均为正常结果，不报错）：
//  - 尚无已训练模型 → 空候选
//  - 用户无购买记录 → 空候选
//  - 已购商品全部不在训练集中（训练后才购买）→ 空候选
type ItemCF struct {
	// Snapshots 提供最新模型快照（经 SnapshotCache 缓存）
	Snapshots *SnapshotCache

	// History 提供用户已购商品集合
	History *history.Aggregator
}

func (r *ItemCF) Name() string        { return "recall.item_cf" }
func (r *ItemCF) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 pipeline.Node 接口，忽略输入 items（召回节点是链路源头）。
func (r *ItemCF) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 为用户生成按分数降序的候选集。
// 同分候选保持训练列序（商品 ID 升序），保证同一快照下输出稳定可复现。
func (r *ItemCF) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if rctx == nil || rctx.UserID == 0 {
		return nil, nil
	}
	if r.Snapshots == nil || r.History == nil {
		return nil, fmt.Errorf("recall: item_cf not wired")
	}

	snapshot, err := r.Snapshots.Get(ctx)
	if err != nil {
		if core.IsSnapshotNotFound(err) {
			// 尚未训练过模型：合法的初始状态
			return nil, nil
		}
		return nil, err
	}

	purchased, err := r.History.PurchasedSet(ctx, rctx.UserID)
	if err != nil {
		return nil, err
	}
	if len(purchased) == 0 {
		return nil, nil
	}

	// 回填到上下文，供下游节点（过滤/解释）复用
	rctx.Purchased = purchased
	rctx.PutLabel("model_version", utils.Label{Value: snapshot.Version, Source: "recall"})

	scores := make([]float64, snapshot.Size())
	hit := false
	for pid := range purchased {
		idx, ok := snapshot.Index(pid)
		if !ok {
			// 训练之后才购买的商品：无相似度信号，静默跳过
			continue
		}
		hit = true
		row := snapshot.ItemSimilarity[idx]
		for j, candidateID := range snapshot.ProductIDs {
			if _, bought := purchased[candidateID]; bought {
				// 已购商品是排除项，不累加分数
				continue
			}
			scores[j] += row[j]
		}
	}
	if !hit {
		return nil, nil
	}

	// 沿训练列序收集候选再稳定排序：同分时保持商品 ID 升序
	out := make([]*core.Item, 0, snapshot.Size())
	for j, candidateID := range snapshot.ProductIDs {
		if _, bought := purchased[candidateID]; bought {
			continue
		}
		if scores[j] <= 0 {
			continue
		}
		it := core.NewItem(candidateID)
		it.Score = scores[j]
		it.PutLabel("recall_source", utils.Label{Value: "item_cf", Source: "recall"})
		it.PutLabel("model_version", utils.Label{Value: snapshot.Version, Source: "recall"})
		out = append(out, it)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})

	return out, nil
}
