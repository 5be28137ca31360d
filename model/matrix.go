// Package model 实现物品相似度模型的离线构建：
// 购买对 → 用户×商品交互矩阵 → 物品-物品余弦相似度矩阵 → 版本化快照。
//
// 每次训练都是全量重算：丢弃旧快照的内部结构，从当前全量购买历史重建。
// 简单且正确，代价是推荐新鲜度受训练触发频率限制（见包 shoprec 的运维说明）。
package model

import (
	"sort"

	"github.com/rushteam/shoprec/core"
)

// InteractionMatrix 是用户×商品的二值交互矩阵。
// 行 = 有过至少一笔完成购买的用户，列 = 被购买过的商品；
// 单元格为 1 表示该用户购买过该商品（重复购买折叠为 1）。
type InteractionMatrix struct {
	// UserIDs 行顺序，升序
	UserIDs []int64

	// ProductIDs 列顺序，升序。下游打分必须沿用这一列序。
	ProductIDs []int64

	// Cells 按 [行][列] 排列的 0/1 标记
	Cells [][]float64
}

// BuildInteractionMatrix 从购买对构建交互矩阵。
// 行列均按 ID 升序排列，保证同一输入多次构建产出完全一致的列序。
func BuildInteractionMatrix(pairs []core.PurchasePair) *InteractionMatrix {
	userIdx := make(map[int64]int)
	productIdx := make(map[int64]int)
	var userIDs, productIDs []int64

	// 先收集去重后的行列 ID
	for _, p := range pairs {
		if _, ok := userIdx[p.UserID]; !ok {
			userIdx[p.UserID] = 0
			userIDs = append(userIDs, p.UserID)
		}
		if _, ok := productIdx[p.ProductID]; !ok {
			productIdx[p.ProductID] = 0
			productIDs = append(productIDs, p.ProductID)
		}
	}
	sortInt64(userIDs)
	sortInt64(productIDs)
	for i, id := range userIDs {
		userIdx[id] = i
	}
	for i, id := range productIDs {
		productIdx[id] = i
	}

	cells := make([][]float64, len(userIDs))
	for i := range cells {
		cells[i] = make([]float64, len(productIDs))
	}
	for _, p := range pairs {
		cells[userIdx[p.UserID]][productIdx[p.ProductID]] = 1
	}

	return &InteractionMatrix{
		UserIDs:    userIDs,
		ProductIDs: productIDs,
		Cells:      cells,
	}
}

// Column 返回第 j 列（商品在用户维度上的向量）。
func (m *InteractionMatrix) Column(j int) []float64 {
	col := make([]float64, len(m.Cells))
	for i := range m.Cells {
		col[i] = m.Cells[i][j]
	}
	return col
}

func sortInt64(s []int64) {
	sort.Slice(s, func(i, j int) bool { return s[i] < s[j] })
}
