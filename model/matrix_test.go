package model

import (
	"reflect"
	"testing"

	"github.com/rushteam/shoprec/core"
)

func TestBuildInteractionMatrix(t *testing.T) {
	pairs := []core.PurchasePair{
		{UserID: 2, ProductID: 103},
		{UserID: 1, ProductID: 101},
		{UserID: 1, ProductID: 102},
		{UserID: 2, ProductID: 101},
		{UserID: 1, ProductID: 101}, // duplicate stays binary
	}

	m := BuildInteractionMatrix(pairs)

	if !reflect.DeepEqual(m.UserIDs, []int64{1, 2}) {
		t.Errorf("UserIDs = %v, want [1 2]", m.UserIDs)
	}
	if !reflect.DeepEqual(m.ProductIDs, []int64{101, 102, 103}) {
		t.Errorf("ProductIDs = %v, want [101 102 103]", m.ProductIDs)
	}

	want := [][]float64{
		{1, 1, 0}, // user 1: 101, 102
		{1, 0, 1}, // user 2: 101, 103
	}
	if !reflect.DeepEqual(m.Cells, want) {
		t.Errorf("Cells = %v, want %v", m.Cells, want)
	}
}

func TestBuildInteractionMatrix_Empty(t *testing.T) {
	m := BuildInteractionMatrix(nil)
	if len(m.UserIDs) != 0 || len(m.ProductIDs) != 0 || len(m.Cells) != 0 {
		t.Errorf("empty input should produce empty matrix, got %+v", m)
	}
}

func TestColumn(t *testing.T) {
	m := BuildInteractionMatrix([]core.PurchasePair{
		{UserID: 1, ProductID: 101},
		{UserID: 2, ProductID: 101},
		{UserID: 2, ProductID: 102},
	})

	if got := m.Column(0); !reflect.DeepEqual(got, []float64{1, 1}) {
		t.Errorf("Column(0) = %v, want [1 1]", got)
	}
	if got := m.Column(1); !reflect.DeepEqual(got, []float64{0, 1}) {
		t.Errorf("Column(1) = %v, want [0 1]", got)
	}
}
