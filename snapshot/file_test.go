package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/rushteam/shoprec/core"
)

func sampleModel() *core.SimilarityModel {
	m := &core.SimilarityModel{
		Version:    "test-version",
		TrainedAt:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		ProductIDs: []int64{101, 102},
		ItemSimilarity: [][]float64{
			{1, 0.5},
			{0.5, 1},
		},
	}
	m.BuildIndex()
	return m
}

func TestFileStore_PutThenLatest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rec_model.json")
	s := NewFileStore(path)

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
	if !got.TrainedAt.Equal(want.TrainedAt) {
		t.Errorf("TrainedAt = %v, want %v", got.TrainedAt, want.TrainedAt)
	}
	if !reflect.DeepEqual(got.ProductIDs, want.ProductIDs) {
		t.Errorf("ProductIDs = %v, want %v", got.ProductIDs, want.ProductIDs)
	}
	if !reflect.DeepEqual(got.ItemSimilarity, want.ItemSimilarity) {
		t.Errorf("ItemSimilarity = %v, want %v", got.ItemSimilarity, want.ItemSimilarity)
	}

	// index must be rebuilt on load
	if idx, ok := got.Index(102); !ok || idx != 1 {
		t.Errorf("Index(102) = (%d, %v), want (1, true)", idx, ok)
	}
}

func TestFileStore_LatestMissingFile(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "nope", "rec_model.json"))

	_, err := s.Latest(context.Background())
	if !core.IsSnapshotNotFound(err) {
		t.Errorf("Latest() error = %v, want ErrSnapshotNotFound", err)
	}
}

func TestFileStore_PutCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache", "deep", "rec_model.json")
	s := NewFileStore(path)

	if err := s.Put(context.Background(), sampleModel()); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("snapshot file not created: %v", err)
	}
}

func TestFileStore_PutReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rec_model.json")
	s := NewFileStore(path)

	first := sampleModel()
	if err := s.Put(context.Background(), first); err != nil {
		t.Fatalf("first Put() error = %v", err)
	}

	second := sampleModel()
	second.Version = "newer"
	if err := s.Put(context.Background(), second); err != nil {
		t.Fatalf("second Put() error = %v", err)
	}

	got, err := s.Latest(context.Background())
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if got.Version != "newer" {
		t.Errorf("Version = %q, want %q", got.Version, "newer")
	}

	// no leftover temp files
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("snapshot dir has %d entries, want 1", len(entries))
	}
}

func TestDecode_Corrupt(t *testing.T) {
	cases := []struct {
		name string
		data []byte
	}{
		{"not json", []byte("{broken")},
		{"row count mismatch", []byte(`{"version":"v","product_ids":[1,2],"item_similarity":[[1]]}`)},
		{"row length mismatch", []byte(`{"version":"v","product_ids":[1,2],"item_similarity":[[1,0],[0]]}`)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Decode(tc.data); err == nil {
				t.Error("Decode() error = nil, want corrupt-model error")
			}
		})
	}
}
