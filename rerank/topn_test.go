package rerank

import (
	"context"
	"testing"

	"github.com/rushteam/shoprec/core"
)

func makeItems(n int) []*core.Item {
	items := make([]*core.Item, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, core.NewItem(int64(100+i)))
	}
	return items
}

func TestTopNNode(t *testing.T) {
	cases := []struct {
		name       string
		node       TopNNode
		count      int
		candidates int
		want       int
	}{
		{"request count wins", TopNNode{Default: 5}, 3, 10, 3},
		{"default when count unset", TopNNode{Default: 5}, 0, 10, 5},
		{"builtin default", TopNNode{}, 0, 20, 10},
		{"fewer candidates than limit", TopNNode{}, 3, 1, 1},
		{"empty input", TopNNode{}, 3, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rctx := &core.RecommendContext{UserID: 1, Count: tc.count}
			out, err := tc.node.Process(context.Background(), rctx, makeItems(tc.candidates))
			if err != nil {
				t.Fatalf("Process() error = %v", err)
			}
			if len(out) != tc.want {
				t.Errorf("got %d items, want %d", len(out), tc.want)
			}
		})
	}
}

func TestTopNNode_KeepsOrder(t *testing.T) {
	node := &TopNNode{}
	items := makeItems(5)

	out, err := node.Process(context.Background(), &core.RecommendContext{UserID: 1, Count: 3}, items)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	for i, it := range out {
		if it.ID != items[i].ID {
			t.Errorf("position %d: got %d, want %d", i, it.ID, items[i].ID)
		}
	}
}
