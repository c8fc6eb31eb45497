package rerank

import (
	"context"
	"testing"

	"github.com/xemaha/watchkit/core"
)

func TestTopNNode(t *testing.T) {
	items := []*core.Item{core.NewItem("a"), core.NewItem("b"), core.NewItem("c")}

	tests := []struct {
		name string
		n    int
		want int
	}{
		{"truncates to n", 2, 2},
		{"n larger than input", 10, 3},
		{"zero n keeps all", 0, 3},
		{"negative n keeps all", -1, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := &TopNNode{N: tt.n}
			out, err := node.Process(context.Background(), nil, items)
			if err != nil {
				t.Fatalf("process: %v", err)
			}
			if len(out) != tt.want {
				t.Errorf("len = %d, want %d", len(out), tt.want)
			}
			if len(out) > 0 && out[0].ID != "a" {
				t.Errorf("order must be preserved, got %s first", out[0].ID)
			}
		})
	}
}
