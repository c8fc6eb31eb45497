package profile

import (
	"testing"

	"github.com/xemaha/watchkit/core"
)

func TestBuild(t *testing.T) {
	entries := []Entry{
		{ItemID: "i1", Score: 5, Genres: []string{"Sci-Fi", "Thriller"},
			Director: "Christopher Nolan", Actors: []string{"Leonardo DiCaprio"},
			Keywords: []string{"dream"}},
		{ItemID: "i2", Score: 4, Genres: []string{"Sci-Fi"},
			Director: "Denis Villeneuve", Keywords: []string{"dream", "desert"}},
		{ItemID: "i3", Score: 2, Genres: []string{"Romance"},
			Director: "Someone Else"},
	}

	p := Build("ana", entries)

	// 所有评过分的条目进入排除集，无论分数
	for _, id := range []string{"i1", "i2", "i3"} {
		if !p.Excluded(id) {
			t.Errorf("%s must be excluded", id)
		}
	}

	// 只有高分条目贡献偏好信号
	if !p.HasGenre("sci-fi") || !p.HasGenre("thriller") {
		t.Errorf("missing genres from high-rated entries: %+v", p.Genres)
	}
	if p.HasGenre("romance") {
		t.Errorf("low-rated entry must not contribute genres")
	}
	if !p.HasDirector("christopher nolan") || !p.HasDirector("denis villeneuve") {
		t.Errorf("missing directors: %+v", p.Directors)
	}
	if p.HasDirector("someone else") {
		t.Errorf("low-rated entry must not contribute directors")
	}
	if !p.HasActor("leonardo dicaprio") {
		t.Errorf("missing actor")
	}

	// 关键词频次累加
	if c, _ := p.KeywordCount("dream"); c != 2 {
		t.Errorf("dream count = %d, want 2", c)
	}
	if c, _ := p.KeywordCount("desert"); c != 1 {
		t.Errorf("desert count = %d, want 1", c)
	}
}

func TestBuild_CustomMinScore(t *testing.T) {
	entries := []Entry{
		{ItemID: "i1", Score: 3, Genres: []string{"Crime"}},
	}

	if p := Build("ana", entries); p.HasGenre("crime") {
		t.Errorf("score 3 must not contribute with default minScore 4")
	}

	b := &Builder{MinScore: 3}
	if p := b.Build("ana", entries); !p.HasGenre("crime") {
		t.Errorf("score 3 must contribute with minScore 3")
	}
}

func TestBuild_Empty(t *testing.T) {
	p := Build("ana", nil)
	if len(p.Genres) != 0 || len(p.ExcludeIDs) != 0 {
		t.Errorf("expected zero profile for no entries, got %+v", p)
	}
}

func TestFromRatedItems(t *testing.T) {
	items := []*core.RatedItem{
		{ID: "i1", Ratings: []core.Rating{
			{UserID: "ana", Score: 5}, {UserID: "bob", Score: 2},
		}},
		{ID: "i2", Ratings: []core.Rating{{UserID: "bob", Score: 4}}},
		nil,
	}

	entries := FromRatedItems("ana", items)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry for ana, got %d", len(entries))
	}
	if entries[0].ItemID != "i1" || entries[0].Score != 5 {
		t.Errorf("entry = %+v", entries[0])
	}
}
