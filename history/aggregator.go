// Package history 把订单存储中的完成订单归约为 (用户, 商品) 购买对。
// 离线训练的数据入口：全量扫描，不分页。
package history

import (
	"context"
	"fmt"
	"sort"

	"github.com/rushteam/shoprec/core"
)

// Aggregator 是购买历史聚合器。
// 只统计支付成功类订单（paid / processing / delivered）；
// 同一用户重复购买同一商品折叠为一条记录（交互矩阵存购买发生标记，不存数量）。
type Aggregator struct {
	Orders core.OrderStore
}

// Aggregate 投影全量购买对。
// 无符合条件的订单时返回空切片（正常状态，非错误）；存储层错误向上传递。
// 输出按 (user_id, product_id) 升序排列，保证重复训练结果可复现。
func (a *Aggregator) Aggregate(ctx context.Context) ([]core.PurchasePair, error) {
	if a.Orders == nil {
		return nil, fmt.Errorf("history: order store is nil")
	}

	orders, err := a.Orders.CompletedOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("history: fetch completed orders: %w", err)
	}

	return ProjectPairs(orders), nil
}

// PurchasedSet 获取单个用户的已购商品集合（与 Aggregate 相同的状态过滤）。
// 在线打分侧复用：无购买记录时返回空集合。
func (a *Aggregator) PurchasedSet(ctx context.Context, userID int64) (map[int64]struct{}, error) {
	if a.Orders == nil {
		return nil, fmt.Errorf("history: order store is nil")
	}

	orders, err := a.Orders.CompletedOrdersByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("history: fetch orders for user %d: %w", userID, err)
	}

	purchased := make(map[int64]struct{})
	for _, o := range orders {
		if !o.Status.IsCompleted() {
			continue
		}
		for _, item := range o.Items {
			purchased[item.ProductID] = struct{}{}
		}
	}
	return purchased, nil
}

// ProjectPairs 把订单列表归约为去重后的购买对，按 (user_id, product_id) 升序。
// 状态过滤在此处再做一次：存储层实现若多返回了非完成订单，也不会污染训练集。
func ProjectPairs(orders []core.Order) []core.PurchasePair {
	seen := make(map[core.PurchasePair]struct{})
	for _, o := range orders {
		if !o.Status.IsCompleted() {
			continue
		}
		for _, item := range o.Items {
			seen[core.PurchasePair{UserID: o.UserID, ProductID: item.ProductID}] = struct{}{}
		}
	}

	pairs := make([]core.PurchasePair, 0, len(seen))
	for p := range seen {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].UserID != pairs[j].UserID {
			return pairs[i].UserID < pairs[j].UserID
		}
		return pairs[i].ProductID < pairs[j].ProductID
	})
	return pairs
}
