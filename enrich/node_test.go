package enrich

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/xemaha/watchkit/core"
	"github.com/xemaha/watchkit/store"
)

// fakeDetailer 按 ID 返回预置详情，列在 fail 里的 ID 返回错误。
type fakeDetailer struct {
	mu      sync.Mutex
	details map[string]Details
	fail    map[string]bool
	calls   int
}

func (d *fakeDetailer) Fetch(_ context.Context, id, _ string) (Details, error) {
	d.mu.Lock()
	d.calls++
	d.mu.Unlock()
	if d.fail[id] {
		return Details{}, errors.New("upstream unavailable")
	}
	return d.details[id], nil
}

func candidateItem(id string) *core.Item {
	it := core.NewItem(id)
	it.SetCandidate(&core.Candidate{ID: id, MediaType: core.MediaFilm})
	return it
}

func TestEnrichNode_Process(t *testing.T) {
	detailer := &fakeDetailer{
		details: map[string]Details{
			"ok": {Director: "Christopher Nolan", Genres: []string{"Sci-Fi"}},
		},
		fail: map[string]bool{"bad": true},
	}
	node := &EnrichNode{Detailer: detailer, MaxConcurrent: 2}

	items := []*core.Item{candidateItem("ok"), candidateItem("bad"), core.NewItem("no-candidate")}
	out, err := node.Process(context.Background(), nil, items)
	if err != nil {
		t.Fatalf("process must tolerate per-id failures: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected all items back, got %d", len(out))
	}

	okItem := out[0]
	if okItem.Candidate().Director != "Christopher Nolan" {
		t.Errorf("details not applied: %+v", okItem.Candidate())
	}
	if lbl, ok := okItem.Labels["enriched"]; !ok || lbl.Value != "true" {
		t.Errorf("enriched label = %+v, want true", lbl)
	}

	badItem := out[1]
	if lbl, ok := badItem.Labels["enriched"]; !ok || lbl.Value != "false" {
		t.Errorf("failed fetch must be labeled enriched=false, got %+v", lbl)
	}

	// 无候选对象的条目不触发拉取
	if _, ok := out[2].Labels["enriched"]; ok {
		t.Errorf("item without candidate must not be enriched")
	}
	if detailer.calls != 2 {
		t.Errorf("detailer calls = %d, want 2", detailer.calls)
	}
}

func TestEnrichNode_NoDetailer(t *testing.T) {
	node := &EnrichNode{}
	items := []*core.Item{candidateItem("x")}
	out, err := node.Process(context.Background(), nil, items)
	if err != nil || len(out) != 1 {
		t.Fatalf("expected pass-through without detailer, got %d err=%v", len(out), err)
	}
}

func TestDetails_Apply(t *testing.T) {
	c := &core.Candidate{ID: "x", Director: "Existing"}
	d := Details{Director: "New", Actors: []string{"A"}, TrailerURL: "https://example.com/t"}
	d.Apply(c)

	if c.Director != "Existing" {
		t.Errorf("existing field must not be overwritten, got %q", c.Director)
	}
	if len(c.Actors) != 1 || c.TrailerURL == "" {
		t.Errorf("empty fields must be filled: %+v", c)
	}
}

func TestCachedDetailer(t *testing.T) {
	ctx := context.Background()
	memStore := store.NewMemoryStore()
	defer memStore.Close()

	inner := &fakeDetailer{details: map[string]Details{
		"hit": {Director: "Denis Villeneuve"},
	}}
	cached := NewCachedDetailer(memStore, inner, 0)

	first, err := cached.Fetch(ctx, "hit", core.MediaFilm)
	if err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	second, err := cached.Fetch(ctx, "hit", core.MediaFilm)
	if err != nil {
		t.Fatalf("second fetch: %v", err)
	}

	if first.Director != "Denis Villeneuve" || second.Director != first.Director {
		t.Errorf("cached result mismatch: %+v vs %+v", first, second)
	}
	if inner.calls != 1 {
		t.Errorf("inner calls = %d, want 1 (second served from cache)", inner.calls)
	}
}

func TestCachedDetailer_ErrorNotCached(t *testing.T) {
	ctx := context.Background()
	memStore := store.NewMemoryStore()
	defer memStore.Close()

	inner := &fakeDetailer{fail: map[string]bool{"bad": true}}
	cached := NewCachedDetailer(memStore, inner, 0)

	if _, err := cached.Fetch(ctx, "bad", core.MediaFilm); err == nil {
		t.Fatalf("expected error from inner detailer")
	}
	if _, err := cached.Fetch(ctx, "bad", core.MediaFilm); err == nil {
		t.Fatalf("expected error again, failures are not cached")
	}
	if inner.calls != 2 {
		t.Errorf("inner calls = %d, want 2", inner.calls)
	}
}
