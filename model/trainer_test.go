package model

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/history"
	"github.com/rushteam/shoprec/snapshot"
	"github.com/rushteam/shoprec/store"
)

func newTrainer(orders *store.MemoryOrderStore, snapshots core.SnapshotStore) *Trainer {
	return &Trainer{
		Aggregator: &history.Aggregator{Orders: orders},
		Snapshots:  snapshots,
		Logger:     zerolog.Nop(),
	}
}

func TestTrain_SkipsOnEmptyHistory(t *testing.T) {
	kv := store.NewMemoryStore()
	defer kv.Close()
	snapshots := snapshot.NewKVStore(kv, "")

	trainer := newTrainer(store.NewMemoryOrderStore(), snapshots)
	if err := trainer.Train(context.Background()); err != nil {
		t.Fatalf("Train() error = %v, want nil (skip is not an error)", err)
	}

	if _, err := snapshots.Latest(context.Background()); !core.IsSnapshotNotFound(err) {
		t.Errorf("Latest() error = %v, want ErrSnapshotNotFound (no snapshot written)", err)
	}
}

func TestTrain_WritesSnapshot(t *testing.T) {
	orders := store.NewMemoryOrderStore(
		core.Order{UserID: 1, Status: core.OrderStatusPaid, Items: []core.OrderItem{{ProductID: 101}, {ProductID: 102}}},
		core.Order{UserID: 2, Status: core.OrderStatusDelivered, Items: []core.OrderItem{{ProductID: 101}, {ProductID: 103}}},
	)
	kv := store.NewMemoryStore()
	defer kv.Close()
	snapshots := snapshot.NewKVStore(kv, "")

	trainer := newTrainer(orders, snapshots)
	if err := trainer.Train(context.Background()); err != nil {
		t.Fatalf("Train() error = %v", err)
	}

	m, err := snapshots.Latest(context.Background())
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if m.Version == "" {
		t.Error("snapshot version is empty")
	}
	if m.TrainedAt.IsZero() {
		t.Error("snapshot trained_at is zero")
	}
	if !reflect.DeepEqual(m.ProductIDs, []int64{101, 102, 103}) {
		t.Errorf("ProductIDs = %v, want [101 102 103]", m.ProductIDs)
	}
	if len(m.ItemSimilarity) != 3 {
		t.Fatalf("ItemSimilarity has %d rows, want 3", len(m.ItemSimilarity))
	}
	for i := range m.ItemSimilarity {
		if m.ItemSimilarity[i][i] != 1 {
			t.Errorf("sim[%d][%d] = %v, want 1", i, i, m.ItemSimilarity[i][i])
		}
	}
}

func TestTrain_ReplacesPreviousSnapshot(t *testing.T) {
	orders := store.NewMemoryOrderStore(
		core.Order{UserID: 1, Status: core.OrderStatusPaid, Items: []core.OrderItem{{ProductID: 101}}},
	)
	kv := store.NewMemoryStore()
	defer kv.Close()
	snapshots := snapshot.NewKVStore(kv, "")
	trainer := newTrainer(orders, snapshots)

	if err := trainer.Train(context.Background()); err != nil {
		t.Fatalf("first Train() error = %v", err)
	}
	first, _ := snapshots.Latest(context.Background())

	orders.Add(core.Order{UserID: 2, Status: core.OrderStatusPaid, Items: []core.OrderItem{{ProductID: 102}}})
	if err := trainer.Train(context.Background()); err != nil {
		t.Fatalf("second Train() error = %v", err)
	}
	second, _ := snapshots.Latest(context.Background())

	if first.Version == second.Version {
		t.Error("retraining should produce a new snapshot version")
	}
	if !reflect.DeepEqual(second.ProductIDs, []int64{101, 102}) {
		t.Errorf("second ProductIDs = %v, want [101 102]", second.ProductIDs)
	}
}

func TestBuild_Deterministic(t *testing.T) {
	trainer := &Trainer{
		Logger: zerolog.Nop(),
		Clock:  func() time.Time { return time.Unix(1700000000, 0) },
	}
	pairs := []core.PurchasePair{
		{UserID: 1, ProductID: 102},
		{UserID: 1, ProductID: 101},
		{UserID: 2, ProductID: 101},
	}

	a := trainer.Build(pairs)
	b := trainer.Build(pairs)

	if !reflect.DeepEqual(a.ProductIDs, b.ProductIDs) {
		t.Errorf("ProductIDs differ across builds: %v vs %v", a.ProductIDs, b.ProductIDs)
	}
	if !reflect.DeepEqual(a.ItemSimilarity, b.ItemSimilarity) {
		t.Errorf("ItemSimilarity differs across builds")
	}
}
