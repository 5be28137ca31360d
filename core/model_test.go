package core

import "testing"

func TestSimilarityModelIndex(t *testing.T) {
	m := &SimilarityModel{
		ProductIDs:     []int64{101, 102, 103},
		ItemSimilarity: [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
	}

	// lookups before BuildIndex miss instead of mutating the model
	if _, ok := m.Index(101); ok {
		t.Error("Index() before BuildIndex() should miss")
	}

	m.BuildIndex()
	for want, id := range m.ProductIDs {
		got, ok := m.Index(id)
		if !ok || got != want {
			t.Errorf("Index(%d) = (%d, %v), want (%d, true)", id, got, ok, want)
		}
	}
	if _, ok := m.Index(999); ok {
		t.Error("Index(999) = true for product outside the training set")
	}
	if m.Size() != 3 {
		t.Errorf("Size() = %d, want 3", m.Size())
	}
}
