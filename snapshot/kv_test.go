package snapshot

import (
	"context"
	"reflect"
	"testing"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/store"
)

func TestKVStore_PutThenLatest(t *testing.T) {
	kv := store.NewMemoryStore()
	defer kv.Close()
	s := NewKVStore(kv, "")

	want := sampleModel()
	if err := s.Put(context.Background(), want); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, err := s.Latest(context.Background())
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if got.Version != want.Version {
		t.Errorf("Version = %q, want %q", got.Version, want.Version)
	}
	if !reflect.DeepEqual(got.ProductIDs, want.ProductIDs) {
		t.Errorf("ProductIDs = %v, want %v", got.ProductIDs, want.ProductIDs)
	}
}

func TestKVStore_LatestMissingKey(t *testing.T) {
	kv := store.NewMemoryStore()
	defer kv.Close()
	s := NewKVStore(kv, "custom:key")

	_, err := s.Latest(context.Background())
	if !core.IsSnapshotNotFound(err) {
		t.Errorf("Latest() error = %v, want ErrSnapshotNotFound", err)
	}
}

func TestKVStore_DefaultKey(t *testing.T) {
	kv := store.NewMemoryStore()
	defer kv.Close()
	s := NewKVStore(kv, "")

	if s.Key != "rec:model:latest" {
		t.Errorf("default key = %q, want rec:model:latest", s.Key)
	}
}
