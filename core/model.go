package core

import (
	"context"
	"time"
)

// SimilarityModel 是一次离线训练产出的完整快照：
// 物品-物品余弦相似度矩阵 + 训练时的商品列顺序。
//
// 不变式：
//   - ItemSimilarity 为 N×N 对称矩阵，N = len(ProductIDs)
//   - ItemSimilarity[i][i] == 1.0
//   - 二值交互矩阵下所有取值落在 [0, 1]
//   - 快照一经构建不可变；新一轮训练整体替换旧快照
type SimilarityModel struct {
	// Version 是快照版本号（UUID），每次训练生成新值
	Version string `json:"version"`

	// TrainedAt 是训练完成时间，作为新鲜度指标随推荐结果透出
	TrainedAt time.Time `json:"trained_at"`

	// ProductIDs 是训练集中商品列的有序列表，下标 i 对应矩阵第 i 行/列
	ProductIDs []int64 `json:"product_ids"`

	// ItemSimilarity 是物品-物品余弦相似度矩阵
	ItemSimilarity [][]float64 `json:"item_similarity"`

	// index 是 ProductID → 矩阵下标的映射，由 ProductIDs 重建，不参与序列化
	index map[int64]int
}

// Index 返回商品 ID 在矩阵中的下标。不在训练集中的商品返回 (0, false)。
// 调用前必须已通过 BuildIndex 建立映射（训练器构建与快照反序列化均已处理）；
// 这里不做惰性重建，快照可被并发读取，读路径必须无写操作。
func (m *SimilarityModel) Index(productID int64) (int, bool) {
	idx, ok := m.index[productID]
	return idx, ok
}

// BuildIndex 从 ProductIDs 重建下标映射。反序列化后必须调用一次。
func (m *SimilarityModel) BuildIndex() {
	m.index = make(map[int64]int, len(m.ProductIDs))
	for i, id := range m.ProductIDs {
		m.index[id] = i
	}
}

// Size 返回训练集中的商品数。
func (m *SimilarityModel) Size() int {
	return len(m.ProductIDs)
}

// SnapshotStore 是模型快照的版本化制品存储接口。
//
// 设计原则：
//   - Put 必须原子替换：并发读者不能观察到半写状态
//     （文件后端写临时文件再 rename；KV 后端单 key 覆盖写）
//   - 只保留"最新"一份：并发训练最后写入者胜出，败者的制品被静默丢弃
//   - 快照字节格式是实现内部约定，不对外暴露
//
// 实现：
//   - snapshot.FileStore（本地文件，临时文件 + rename 交换）
//   - snapshot.KVStore（core.Store 单 key，Redis 等）
type SnapshotStore interface {
	// Name 返回存储后端名称（用于日志/监控）
	Name() string

	// Put 原子写入新快照并替换旧快照
	Put(ctx context.Context, model *SimilarityModel) error

	// Latest 读取最新快照。尚未训练过模型时返回 ErrSnapshotNotFound，
	// 调用方应视为正常的初始状态（空推荐），而非故障。
	Latest(ctx context.Context) (*SimilarityModel, error)
}

// ErrSnapshotNotFound 表示尚无已训练的模型快照
var ErrSnapshotNotFound = NewDomainError(ModuleSnapshot, ErrorCodeNotFound, "snapshot: no trained model")

// IsSnapshotNotFound 检查错误是否为"尚无快照"
func IsSnapshotNotFound(err error) bool {
	if err == nil {
		return false
	}
	domainErr := GetDomainError(err)
	if domainErr != nil && domainErr.Module == ModuleSnapshot {
		return domainErr.Code == ErrorCodeNotFound
	}
	return false
}
