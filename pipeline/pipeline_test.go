package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/rushteam/shoprec/core"
)

type stubNode struct {
	name string
	kind Kind
	fn   func([]*core.Item) ([]*core.Item, error)
}

func (n *stubNode) Name() string { return n.name }
func (n *stubNode) Kind() Kind   { return n.kind }
func (n *stubNode) Process(_ context.Context, _ *core.RecommendContext, items []*core.Item) ([]*core.Item, error) {
	return n.fn(items)
}

func TestPipeline_ChainsNodes(t *testing.T) {
	p := &Pipeline{Nodes: []Node{
		&stubNode{name: "source", kind: KindRecall, fn: func(_ []*core.Item) ([]*core.Item, error) {
			return []*core.Item{core.NewItem(1), core.NewItem(2), core.NewItem(3)}, nil
		}},
		&stubNode{name: "drop-first", kind: KindFilter, fn: func(items []*core.Item) ([]*core.Item, error) {
			return items[1:], nil
		}},
	}}

	out, err := p.Run(context.Background(), &core.RecommendContext{UserID: 1}, nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(out) != 2 || out[0].ID != 2 {
		t.Errorf("out = %v, want items 2 and 3", out)
	}
}

func TestPipeline_StopsOnError(t *testing.T) {
	boom := errors.New("boom")
	ran := false
	p := &Pipeline{Nodes: []Node{
		&stubNode{name: "fail", kind: KindRecall, fn: func(_ []*core.Item) ([]*core.Item, error) {
			return nil, boom
		}},
		&stubNode{name: "after", kind: KindFilter, fn: func(items []*core.Item) ([]*core.Item, error) {
			ran = true
			return items, nil
		}},
	}}

	_, err := p.Run(context.Background(), &core.RecommendContext{UserID: 1}, nil)
	if !errors.Is(err, boom) {
		t.Errorf("Run() error = %v, want boom", err)
	}
	if ran {
		t.Error("node after the failing one must not run")
	}
}

func TestPipeline_Empty(t *testing.T) {
	p := &Pipeline{}
	out, err := p.Run(context.Background(), &core.RecommendContext{UserID: 1}, nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(out) != 0 {
		t.Errorf("out = %v, want empty", out)
	}
}
