package model

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/history"
)

// Trainer 把购买历史训练为物品相似度模型并持久化快照。
//
// 并发模型：设计为单个后台任务，由管理接口或调度器带外触发；
// 不做并发互斥——两次训练竞争写入时最后写入者胜出，败者的快照被静默覆盖。
type Trainer struct {
	Aggregator *history.Aggregator
	Snapshots  core.SnapshotStore
	Logger     zerolog.Logger

	// Clock 便于测试注入固定时间；为 nil 时使用 time.Now
	Clock func() time.Time
}

// Train 执行一轮完整的离线训练：聚合 → 建矩阵 → 算相似度 → 原子落盘。
// 购买历史为空时跳过训练（打日志、不产出快照、返回 nil）：
// 余弦相似度在空矩阵上无定义。存储层错误向上传递。
func (t *Trainer) Train(ctx context.Context) error {
	if t.Aggregator == nil || t.Snapshots == nil {
		return fmt.Errorf("model: trainer not wired")
	}

	start := time.Now()
	t.Logger.Info().Msg("recommendation model training started")

	pairs, err := t.Aggregator.Aggregate(ctx)
	if err != nil {
		return fmt.Errorf("model: aggregate purchase history: %w", err)
	}
	if len(pairs) == 0 {
		t.Logger.Info().Msg("no purchase history found, skipping model training")
		return nil
	}

	snapshot := t.Build(pairs)

	if err := t.Snapshots.Put(ctx, snapshot); err != nil {
		return fmt.Errorf("model: persist snapshot: %w", err)
	}

	t.Logger.Info().
		Str("version", snapshot.Version).
		Int("users", countUsers(pairs)).
		Int("products", snapshot.Size()).
		Dur("elapsed", time.Since(start)).
		Msg("recommendation model training complete")
	return nil
}

// Build 从购买对构建一个新的不可变快照（纯计算，不触存储）。
func (t *Trainer) Build(pairs []core.PurchasePair) *core.SimilarityModel {
	matrix := BuildInteractionMatrix(pairs)

	now := time.Now
	if t.Clock != nil {
		now = t.Clock
	}

	snapshot := &core.SimilarityModel{
		Version:        uuid.NewString(),
		TrainedAt:      now().UTC(),
		ProductIDs:     matrix.ProductIDs,
		ItemSimilarity: ItemSimilarityMatrix(matrix),
	}
	snapshot.BuildIndex()
	return snapshot
}

func countUsers(pairs []core.PurchasePair) int {
	users := make(map[int64]struct{}, len(pairs))
	for _, p := range pairs {
		users[p.UserID] = struct{}{}
	}
	return len(users)
}
