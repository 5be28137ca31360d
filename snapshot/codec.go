// Package snapshot 实现模型快照的版本化制品存储（core.SnapshotStore）。
//
// 快照是两个组件之间唯一共享的可变资源：训练器写、打分器读，二者可并发。
// 唯一的正确性机制是"原子替换"——读者永远不能观察到半写状态。
// 不做锁、不做多版本保留：最后写入者胜出。
package snapshot

import (
	"encoding/json"
	"fmt"

	"github.com/rushteam/shoprec/core"
)

// Encode 把快照序列化为字节。格式（JSON）是包内部约定，
// 没有外部消费者，不构成公开契约。
func Encode(m *core.SimilarityModel) ([]byte, error) {
	if m == nil {
		return nil, fmt.Errorf("snapshot: nil model")
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("snapshot: encode: %w", err)
	}
	return data, nil
}

// Decode 反序列化快照并重建下标映射。
// 字节损坏属于基础设施故障，错误向上传递，绝不当作"无推荐"处理。
func Decode(data []byte) (*core.SimilarityModel, error) {
	var m core.SimilarityModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("snapshot: decode: %w", err)
	}
	if len(m.ItemSimilarity) != len(m.ProductIDs) {
		return nil, fmt.Errorf("snapshot: corrupt model: %d products, %d matrix rows",
			len(m.ProductIDs), len(m.ItemSimilarity))
	}
	for i, row := range m.ItemSimilarity {
		if len(row) != len(m.ProductIDs) {
			return nil, fmt.Errorf("snapshot: corrupt model: row %d has %d columns, want %d",
				i, len(row), len(m.ProductIDs))
		}
	}
	m.BuildIndex()
	return &m, nil
}
