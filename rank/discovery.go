package rank

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/xemaha/watchkit/core"
	"github.com/xemaha/watchkit/pipeline"
	"github.com/xemaha/watchkit/pkg/utils"
)

// 基线权重：归一化评分为主信号，原始热度用小系数压制量纲，
// 投票数取对数作为可信度项（高票条目不被热度单独主导）。
const (
	baselineVoteWeight       = 0.6
	baselinePopularityWeight = 0.01
	baselineVoteCountWeight  = 0.3
)

// 各命中信号的加分。固定顺序：导演 → 演员 → 类型 → 关键词。
const (
	directorBoost = 5.0 // 整条命中
	actorBoost    = 0.8 // 每个命中演员
	genreBoost    = 2.0 // 每个命中类型
	keywordBoost  = 3.0 // 每个命中关键词
)

// ScoreCandidate 对单个候选按口味画像打综合分。
//
// 综合分 = 基线分 + 各命中信号加分，不做归一化/截断——
// 分数只用于相对排序，不作为绝对质量展示。
//
// 每个命中信号独立追加一条可读的 MatchReason（带 emoji 标记）
// 和一条 ScoreBreakdown（数值拆解）。没有任何信号命中时，
// 生成唯一的"高分热门"兜底原因，保证每个候选都有解释。
//
// 补全元数据可能部分缺失（详情拉取失败）：空字段只是对应信号
// 不加分，不是错误。匹配一律去空白、大小写不敏感。
func ScoreCandidate(c core.Candidate, profile core.TasteProfile) core.ScoredCandidate {
	baseline := c.VoteAverage*baselineVoteWeight +
		c.Popularity*baselinePopularityWeight +
		math.Log(1+float64(c.VoteCount))*baselineVoteCountWeight

	sc := core.ScoredCandidate{
		Candidate: c,
		Score:     baseline,
	}
	sc.ScoreBreakdown = append(sc.ScoreBreakdown, fmt.Sprintf(
		"baseline %.2f = rating %.1f×%.1f + popularity %.1f×%.2f + ln(1+%d)×%.1f",
		baseline, c.VoteAverage, baselineVoteWeight,
		c.Popularity, baselinePopularityWeight,
		c.VoteCount, baselineVoteCountWeight,
	))

	// 导演命中：整条加分
	if c.Director != "" && profile.HasDirector(c.Director) {
		sc.Score += directorBoost
		sc.MatchReasons = append(sc.MatchReasons,
			fmt.Sprintf("🎬 Directed by %s", strings.TrimSpace(c.Director)))
		sc.ScoreBreakdown = append(sc.ScoreBreakdown,
			fmt.Sprintf("director +%.1f (%s)", directorBoost, strings.TrimSpace(c.Director)))
	}

	// 演员命中：按命中个数加分
	if matched := matchNames(c.Actors, profile.HasActor); len(matched) > 0 {
		boost := actorBoost * float64(len(matched))
		sc.Score += boost
		sc.MatchReasons = append(sc.MatchReasons,
			fmt.Sprintf("⭐ Favorite actors: %s", strings.Join(matched, ", ")))
		sc.ScoreBreakdown = append(sc.ScoreBreakdown,
			fmt.Sprintf("actors +%.1f (%d × %.1f)", boost, len(matched), actorBoost))
	}

	// 类型命中：按命中个数加分
	if matched := matchNames(c.Genres, profile.HasGenre); len(matched) > 0 {
		boost := genreBoost * float64(len(matched))
		sc.Score += boost
		sc.MatchReasons = append(sc.MatchReasons,
			fmt.Sprintf("🎭 Genres you love: %s", strings.Join(matched, ", ")))
		sc.ScoreBreakdown = append(sc.ScoreBreakdown,
			fmt.Sprintf("genres +%.1f (%d × %.1f)", boost, len(matched), genreBoost))
	}

	// 关键词命中：按命中个数加分；频次只透传给 UI 做强调，不参与打分
	if matched := matchNames(c.Keywords, func(name string) bool {
		_, ok := profile.KeywordCount(name)
		return ok
	}); len(matched) > 0 {
		boost := keywordBoost * float64(len(matched))
		sc.Score += boost
		sc.MatchReasons = append(sc.MatchReasons,
			fmt.Sprintf("🔑 Matches your keywords: %s", strings.Join(matched, ", ")))
		sc.ScoreBreakdown = append(sc.ScoreBreakdown,
			fmt.Sprintf("keywords +%.1f (%d × %.1f)", boost, len(matched), keywordBoost))

		sc.KeywordFrequencies = make(map[string]int, len(matched))
		for _, kw := range matched {
			if freq, ok := profile.KeywordCount(kw); ok {
				sc.KeywordFrequencies[core.NormalizeName(kw)] = freq
			}
		}
	}

	// 兜底：没有任何信号命中也要给出一条解释
	if len(sc.MatchReasons) == 0 {
		sc.MatchReasons = append(sc.MatchReasons, fmt.Sprintf(
			"👍 Highly rated: %.1f/10 (%d votes)", c.VoteAverage, c.VoteCount))
	}

	sc.ScoreBreakdown = append(sc.ScoreBreakdown, fmt.Sprintf("total %.2f", sc.Score))

	return sc
}

// RankCandidates 对候选池逐个打分并按综合分降序排列。
// 稳定排序：同分候选保持输入顺序。空候选池返回空列表。
// 纯函数：相同输入必产出相同输出，整批调用与逐个增量调用结果一致。
func RankCandidates(candidates []core.Candidate, profile core.TasteProfile) []core.ScoredCandidate {
	out := make([]core.ScoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, ScoreCandidate(c, profile))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// matchNames 返回命中画像的名字（保留输入原文、去空白），顺序与输入一致。
func matchNames(names []string, has func(string) bool) []string {
	var matched []string
	for _, n := range names {
		trimmed := strings.TrimSpace(n)
		if trimmed == "" {
			continue
		}
		if has(trimmed) {
			matched = append(matched, trimmed)
		}
	}
	return matched
}

// DiscoveryNode 是口味打分的排序 Node：对带候选对象的 Item 打综合分，
// 把命中原因写入 labels，并按分数降序稳定排序。
// - 写入 labels：match_reason（多条以 '|' 合并）、rank_model
// - 写入 Meta["scored_candidate"]：完整的 ScoredCandidate
// 口味画像从 rctx.Profile 读取；未设置时按空画像处理（只有基线分）。
type DiscoveryNode struct{}

func (n *DiscoveryNode) Name() string        { return "rank.discovery" }
func (n *DiscoveryNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *DiscoveryNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}

	profile := core.TasteProfile{}
	if rctx != nil {
		profile = rctx.GetProfile()
	}

	for _, it := range items {
		if it == nil {
			continue
		}
		c := it.Candidate()
		if c == nil {
			continue // 非候选 Item（如协同过滤推荐）保持原分数
		}

		sc := ScoreCandidate(*c, profile)
		it.Score = sc.Score
		it.Meta["scored_candidate"] = &sc
		it.PutLabel("rank_model", utils.Label{Value: "discovery", Source: "rank"})
		for _, reason := range sc.MatchReasons {
			it.PutLabel("match_reason", utils.Label{Value: reason, Source: "rank"})
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i] == nil {
			return false
		}
		if items[j] == nil {
			return true
		}
		return items[i].Score > items[j].Score
	})
	return items, nil
}
