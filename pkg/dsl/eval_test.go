package dsl

import (
	"testing"

	"github.com/xemaha/watchkit/core"
	"github.com/xemaha/watchkit/pkg/utils"
)

func evalItem() *core.Item {
	it := core.NewItem("tt1375666")
	it.Score = 7.5
	it.SetCandidate(&core.Candidate{
		ID:          "tt1375666",
		Title:       "Inception",
		MediaType:   core.MediaFilm,
		VoteAverage: 8.8,
		VoteCount:   34000,
		Popularity:  90.0,
		Director:    "Christopher Nolan",
	})
	it.PutLabel("recall_source", utils.Label{Value: "catalog", Source: "recall"})
	return it
}

func TestEval_Evaluate(t *testing.T) {
	it := evalItem()
	rctx := &core.RecommendContext{UserID: "ana", Scene: "discover"}

	tests := []struct {
		name    string
		expr    string
		want    bool
		wantErr bool
	}{
		{"empty expression is true", "", true, false},
		{"numeric comparison", "candidate.vote_count >= 100", true, false},
		{"numeric comparison false", "candidate.vote_count < 100", false, false},
		{"string equality", `candidate.media_type == "film"`, true, false},
		{"label shorthand", `label.recall_source == "catalog"`, true, false},
		{"item score", "item.score > 7.0", true, false},
		{"rctx scene", `rctx.scene == "discover"`, true, false},
		{"logical and", `candidate.media_type == "film" && candidate.vote_average > 8.0`, true, false},
		{"compile error", "not a valid ((", false, true},
		{"non-bool result", "candidate.vote_count", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewEval(it, rctx).Evaluate(tt.expr)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestEval_NilItem(t *testing.T) {
	// 无 item 时 candidate 为空 map，存在性检查可用
	got, err := NewEval(nil, nil).Evaluate(`!has(candidate.id)`)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if !got {
		t.Errorf("expected empty candidate to have no id")
	}
}
