package recall

import (
	"context"
	"errors"
	"testing"

	"github.com/xemaha/watchkit/core"
)

// stubSource 返回固定 ID 列表，可配置为失败。
type stubSource struct {
	name string
	ids  []string
	err  error
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Recall(_ context.Context, _ *core.RecommendContext) ([]*core.Item, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]*core.Item, 0, len(s.ids))
	for _, id := range s.ids {
		out = append(out, core.NewItem(id))
	}
	return out, nil
}

func TestFanout_MergeFirst(t *testing.T) {
	fanout := &Fanout{
		Sources: []Source{
			&stubSource{name: "cf", ids: []string{"a", "b"}},
			&stubSource{name: "hot", ids: []string{"b", "c"}},
		},
		Dedup: true,
	}

	out, err := fanout.Process(context.Background(), &core.RecommendContext{UserID: "ana"}, nil)
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	want := []string{"a", "b", "c"}
	if len(out) != len(want) {
		t.Fatalf("got %d items, want %d", len(out), len(want))
	}
	for i := range want {
		if out[i].ID != want[i] {
			t.Errorf("out[%d] = %s, want %s", i, out[i].ID, want[i])
		}
	}

	// 重复条目的来源 label 被合并
	var dup *core.Item
	for _, it := range out {
		if it.ID == "b" {
			dup = it
		}
	}
	if lbl, ok := dup.Labels["recall_source"]; !ok || lbl.Value != "cf|hot" {
		t.Errorf("merged recall_source = %+v, want cf|hot", lbl)
	}
}

func TestFanout_SourceErrorTolerated(t *testing.T) {
	fanout := &Fanout{
		Sources: []Source{
			&stubSource{name: "broken", err: errors.New("unavailable")},
			&stubSource{name: "hot", ids: []string{"x"}},
		},
		Dedup: true,
	}

	out, err := fanout.Process(context.Background(), &core.RecommendContext{UserID: "ana"}, nil)
	if err != nil {
		t.Fatalf("one broken source must not fail the batch: %v", err)
	}
	if len(out) != 1 || out[0].ID != "x" {
		t.Errorf("expected surviving source result, got %+v", out)
	}
}

func TestFanout_Deterministic(t *testing.T) {
	fanout := &Fanout{
		Sources: []Source{
			&stubSource{name: "s1", ids: []string{"a", "b"}},
			&stubSource{name: "s2", ids: []string{"c"}},
			&stubSource{name: "s3", ids: []string{"d", "e"}},
		},
		Dedup:         true,
		MaxConcurrent: 2,
	}

	first, err := fanout.Process(context.Background(), &core.RecommendContext{UserID: "ana"}, nil)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := fanout.Process(context.Background(), &core.RecommendContext{UserID: "ana"}, nil)
		if err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
		if len(again) != len(first) {
			t.Fatalf("run %d: length changed", i)
		}
		for j := range again {
			if again[j].ID != first[j].ID {
				t.Fatalf("run %d: order changed at %d", i, j)
			}
		}
	}
}

func TestFanout_Empty(t *testing.T) {
	fanout := &Fanout{}
	out, err := fanout.Process(context.Background(), &core.RecommendContext{UserID: "ana"}, nil)
	if err != nil || out != nil {
		t.Errorf("expected nil result for no sources, got %v err=%v", out, err)
	}
}
