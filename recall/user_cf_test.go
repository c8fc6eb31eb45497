package recall

import (
	"context"
	"math"
	"testing"

	"github.com/xemaha/watchkit/core"
	"github.com/xemaha/watchkit/store"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// 固定快照：
//   - beto 与 ana 在 i1/i2/i3 上评分完全一致（相关系数 1.0）
//   - eli 与 ana 大体一致（相关系数 13/14）
//   - carla 与 ana 完全相反（相关系数 -1.0，被阈值排除）
//   - dora 全部打 3 分（方差为 0，系数按 0 处理，被阈值排除）
//   - i4/i5 是 ana 未评分的条目
func fixtureSnapshot() []*core.RatedItem {
	return []*core.RatedItem{
		{ID: "i1", Title: "Inception", MediaType: core.MediaFilm, Ratings: []core.Rating{
			{UserID: "ana", UserName: "Ana", Score: 5},
			{UserID: "beto", UserName: "Beto", Score: 5},
			{UserID: "carla", UserName: "Carla", Score: 1},
			{UserID: "dora", UserName: "Dora", Score: 3},
			{UserID: "eli", UserName: "Eli", Score: 5},
		}},
		{ID: "i2", Title: "Dark", MediaType: core.MediaSeries, Ratings: []core.Rating{
			{UserID: "ana", UserName: "Ana", Score: 4},
			{UserID: "beto", UserName: "Beto", Score: 4},
			{UserID: "carla", UserName: "Carla", Score: 2},
			{UserID: "dora", UserName: "Dora", Score: 3},
			{UserID: "eli", UserName: "Eli", Score: 3},
		}},
		{ID: "i3", Title: "Dune", MediaType: core.MediaBook, Ratings: []core.Rating{
			{UserID: "ana", UserName: "Ana", Score: 2},
			{UserID: "beto", UserName: "Beto", Score: 2},
			{UserID: "carla", UserName: "Carla", Score: 4},
			{UserID: "dora", UserName: "Dora", Score: 3},
			{UserID: "eli", UserName: "Eli", Score: 2},
		}},
		{ID: "i4", Title: "Tenet", MediaType: core.MediaFilm, Ratings: []core.Rating{
			{UserID: "beto", UserName: "Beto", Score: 5},
			{UserID: "eli", UserName: "Eli", Score: 4},
		}},
		{ID: "i5", Title: "Foundation", MediaType: core.MediaSeries, Ratings: []core.Rating{
			{UserID: "beto", UserName: "Beto", Score: 3},
		}},
	}
}

func TestPearsonCorrelation(t *testing.T) {
	tests := []struct {
		name string
		x    []float64
		y    []float64
		want float64
	}{
		{"identical vectors", []float64{5, 4, 2}, []float64{5, 4, 2}, 1.0},
		{"inverted vectors", []float64{5, 4, 2}, []float64{1, 2, 4}, -1.0},
		{"single common item", []float64{5}, []float64{5}, 0},
		{"empty vectors", nil, nil, 0},
		{"zero variance right", []float64{5, 4, 2}, []float64{3, 3, 3}, 0},
		{"zero variance left", []float64{4, 4, 4}, []float64{5, 1, 3}, 0},
		{"mismatched length", []float64{5, 4}, []float64{5}, 0},
		{"partial agreement", []float64{5, 4, 2}, []float64{5, 3, 2}, 13.0 / 14.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pearsonCorrelation(tt.x, tt.y)
			if !almostEqual(got, tt.want) {
				t.Errorf("pearsonCorrelation() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFindSimilarUsers(t *testing.T) {
	items := fixtureSnapshot()
	cf := &UserCF{}

	similar := cf.FindSimilarUsers("ana", items)

	if len(similar) != 2 {
		t.Fatalf("expected 2 similar users, got %d: %+v", len(similar), similar)
	}
	if similar[0].UserID != "beto" || similar[1].UserID != "eli" {
		t.Errorf("expected order [beto eli], got [%s %s]", similar[0].UserID, similar[1].UserID)
	}
	if !almostEqual(similar[0].Correlation, 1.0) {
		t.Errorf("beto correlation = %v, want 1.0", similar[0].Correlation)
	}
	if !almostEqual(similar[1].Correlation, 13.0/14.0) {
		t.Errorf("eli correlation = %v, want %v", similar[1].Correlation, 13.0/14.0)
	}
	if similar[0].CommonItems != 3 {
		t.Errorf("beto common items = %d, want 3", similar[0].CommonItems)
	}
	if similar[0].UserName != "Beto" {
		t.Errorf("beto user name = %q, want Beto", similar[0].UserName)
	}
}

func TestFindSimilarUsers_EdgeCases(t *testing.T) {
	items := fixtureSnapshot()

	t.Run("unknown target has no ratings", func(t *testing.T) {
		if got := FindSimilarUsers("nobody", items, 0); got != nil {
			t.Errorf("expected nil for user without ratings, got %+v", got)
		}
	})

	t.Run("empty snapshot", func(t *testing.T) {
		if got := FindSimilarUsers("ana", nil, 0); got != nil {
			t.Errorf("expected nil for empty snapshot, got %+v", got)
		}
	})

	t.Run("min common items excludes sparse overlap", func(t *testing.T) {
		// 共同条目只有 3 个；阈值提到 4 后不再有相似用户
		if got := FindSimilarUsers("ana", items, 4); len(got) != 0 {
			t.Errorf("expected no similar users with minCommonItems=4, got %+v", got)
		}
	})

	t.Run("negative correlation excluded", func(t *testing.T) {
		for _, su := range FindSimilarUsers("ana", items, 0) {
			if su.UserID == "carla" {
				t.Errorf("carla (correlation -1.0) must not pass the threshold")
			}
			if su.UserID == "dora" {
				t.Errorf("dora (zero variance) must not pass the threshold")
			}
		}
	})
}

func TestGenerateRecommendations(t *testing.T) {
	items := fixtureSnapshot()
	cf := &UserCF{}

	recs := cf.GenerateRecommendations("ana", items)

	// i4: 预测 = (5×1 + 4×13/14) / (1 + 13/14) = 122/27 ≈ 4.52
	// i5: 预测 = 3×1/1 = 3 < 3.5，被下限过滤
	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation, got %d: %+v", len(recs), recs)
	}
	rec := recs[0]
	if rec.Item.ID != "i4" {
		t.Errorf("recommended item = %s, want i4", rec.Item.ID)
	}
	if !almostEqual(rec.PredictedScore, 122.0/27.0) {
		t.Errorf("predicted score = %v, want %v", rec.PredictedScore, 122.0/27.0)
	}
	if len(rec.ContributingUsers) != 2 {
		t.Fatalf("expected 2 contributing users, got %d", len(rec.ContributingUsers))
	}
	if rec.ContributingUsers[0].UserID != "beto" || rec.ContributingUsers[1].UserID != "eli" {
		t.Errorf("contributors order = [%s %s], want [beto eli]",
			rec.ContributingUsers[0].UserID, rec.ContributingUsers[1].UserID)
	}
}

func TestGenerateRecommendations_ExcludesRatedItems(t *testing.T) {
	items := fixtureSnapshot()
	recs := GenerateRecommendations("ana", items, 0)

	for _, rec := range recs {
		if _, ok := rec.Item.RatingBy("ana"); ok {
			t.Errorf("item %s already rated by target, must not be recommended", rec.Item.ID)
		}
	}
}

func TestGenerateRecommendations_ContributorLimit(t *testing.T) {
	// 5 个用户与目标完全一致，第 6 个条目有 5 个评分：贡献用户最多 3 个
	items := []*core.RatedItem{}
	base := []int{5, 4, 2}
	for i, id := range []string{"i1", "i2", "i3"} {
		ratings := []core.Rating{{UserID: "target", Score: base[i]}}
		for _, u := range []string{"u1", "u2", "u3", "u4", "u5"} {
			ratings = append(ratings, core.Rating{UserID: u, Score: base[i]})
		}
		items = append(items, &core.RatedItem{ID: id, Ratings: ratings})
	}
	items = append(items, &core.RatedItem{ID: "new", Ratings: []core.Rating{
		{UserID: "u1", Score: 5}, {UserID: "u2", Score: 5}, {UserID: "u3", Score: 4},
		{UserID: "u4", Score: 4}, {UserID: "u5", Score: 5},
	}})

	recs := GenerateRecommendations("target", items, 0)
	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(recs))
	}
	if len(recs[0].ContributingUsers) != 3 {
		t.Errorf("contributing users = %d, want at most 3", len(recs[0].ContributingUsers))
	}
	// 预测仍然累加全部 5 个相似用户：(5+5+4+4+5)/5 = 4.6
	if !almostEqual(recs[0].PredictedScore, 4.6) {
		t.Errorf("predicted score = %v, want 4.6", recs[0].PredictedScore)
	}
}

func TestGenerateRecommendations_MaxResults(t *testing.T) {
	items := []*core.RatedItem{}
	base := []int{5, 4, 2}
	for i, id := range []string{"a", "b", "c"} {
		items = append(items, &core.RatedItem{ID: id, Ratings: []core.Rating{
			{UserID: "target", Score: base[i]},
			{UserID: "peer", Score: base[i]},
		}})
	}
	for _, id := range []string{"n1", "n2", "n3", "n4"} {
		items = append(items, &core.RatedItem{ID: id, Ratings: []core.Rating{
			{UserID: "peer", Score: 5},
		}})
	}

	recs := GenerateRecommendations("target", items, 2)
	if len(recs) != 2 {
		t.Errorf("expected maxResults=2 truncation, got %d", len(recs))
	}
}

func TestGenerateRecommendations_Deterministic(t *testing.T) {
	items := fixtureSnapshot()
	first := GenerateRecommendations("ana", items, 0)
	for i := 0; i < 10; i++ {
		again := GenerateRecommendations("ana", items, 0)
		if len(again) != len(first) {
			t.Fatalf("run %d: length changed: %d vs %d", i, len(again), len(first))
		}
		for j := range again {
			if again[j].Item.ID != first[j].Item.ID {
				t.Fatalf("run %d: order changed at %d: %s vs %s", i, j, again[j].Item.ID, first[j].Item.ID)
			}
		}
	}
}

func TestUserCF_Recall(t *testing.T) {
	ctx := context.Background()
	memStore := store.NewMemoryStore()
	defer memStore.Close()

	snapshot := NewStoreSnapshotAdapter(memStore, "")
	if err := snapshot.Save(ctx, fixtureSnapshot(), 0); err != nil {
		t.Fatalf("save snapshot: %v", err)
	}

	cf := &UserCF{Store: snapshot}
	rctx := &core.RecommendContext{UserID: "ana", UserName: "Ana"}

	out, err := cf.Recall(ctx, rctx)
	if err != nil {
		t.Fatalf("recall: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 item, got %d", len(out))
	}

	it := out[0]
	if it.ID != "i4" {
		t.Errorf("item ID = %s, want i4", it.ID)
	}
	if lbl, ok := it.Labels["recall_source"]; !ok || lbl.Value != "user_cf" {
		t.Errorf("recall_source label = %+v, want user_cf", lbl)
	}
	if lbl, ok := it.Labels["contributing_users"]; !ok || lbl.Value != "Beto,Eli" {
		t.Errorf("contributing_users label = %+v, want Beto,Eli", lbl)
	}
	if _, ok := it.Meta["recommendation"].(*core.Recommendation); !ok {
		t.Errorf("expected *core.Recommendation in Meta")
	}
}

func TestUserCF_RecallEmptyState(t *testing.T) {
	ctx := context.Background()
	memStore := store.NewMemoryStore()
	defer memStore.Close()

	cf := &UserCF{Store: NewStoreSnapshotAdapter(memStore, "")}

	// 快照不存在：无数据不是错误
	out, err := cf.Recall(ctx, &core.RecommendContext{UserID: "ana"})
	if err != nil {
		t.Fatalf("expected no error on missing snapshot, got %v", err)
	}
	if len(out) != 0 {
		t.Errorf("expected empty result, got %d items", len(out))
	}

	// UserID 为空：直接空结果
	out, err = cf.Recall(ctx, &core.RecommendContext{})
	if err != nil || len(out) != 0 {
		t.Errorf("expected empty result for empty user, got %d items err=%v", len(out), err)
	}
}

func TestUserCF_CustomThresholds(t *testing.T) {
	items := fixtureSnapshot()

	// 下限降到 3.0 后 i5（预测 3.0）也能入选
	cf := &UserCF{PredictionFloor: 3.0}
	recs := cf.GenerateRecommendations("ana", items)
	if len(recs) != 2 {
		t.Fatalf("expected 2 recommendations with floor=3.0, got %d", len(recs))
	}
	if recs[0].Item.ID != "i4" || recs[1].Item.ID != "i5" {
		t.Errorf("expected order [i4 i5], got [%s %s]", recs[0].Item.ID, recs[1].Item.ID)
	}

	// 阈值提到 0.95 后只剩 beto 一个相似用户
	cf = &UserCF{SimilarityThreshold: 0.95}
	similar := cf.FindSimilarUsers("ana", items)
	if len(similar) != 1 || similar[0].UserID != "beto" {
		t.Errorf("expected only beto above 0.95, got %+v", similar)
	}
}
