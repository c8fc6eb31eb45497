package recall

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

// maxContributors 是每条推荐最多展示的贡献用户数。
const maxContributors = 3

// UserCF 是基于用户的协同过滤召回源（User-based Collaborative Filtering）。
//
// 核心思想："口味相似的用户，喜欢相似的条目"
//
// 算法流程：
//  1. 从评分快照构建 用户 → (条目 → 评分) 向量
//  2. 在共同评分条目上计算 Pearson 相关系数
//  3. 保留弱正相关以上的相似用户
//  4. 对目标用户未评分的条目做加权平均预测，保留高分预测
//
// 工程特征：
//  - 纯函数：相同快照输入必产出相同结果，可任意重算
//  - 无状态：相似度按请求即算即弃，不落存储
//  - 可解释性：每条推荐带贡献用户列表
type UserCF struct {
	// Store 提供评分快照（Node/Source 形态使用；纯函数形态直接传入快照）
	Store SnapshotStore

	// MinCommonItems 两个用户至少需要共同评分多少个条目才计算相似度（默认 3）
	MinCommonItems int

	// SimilarityThreshold 保留相似用户的最低相关系数（默认 0.1，弱正相关线，
	// 过滤噪声和口味相反的用户）
	SimilarityThreshold float64

	// PredictionFloor 推荐结果的最低预测评分（默认 3.5，避免推荐平庸预测）
	PredictionFloor float64

	// MaxResults 最终返回的推荐条目数（默认 20）
	MaxResults int

	// Config 默认值来源（可选；零值字段从这里取，未设置时用 DefaultEngineConfig）
	Config core.EngineConfig
}

func (r *UserCF) Name() string        { return "recall.user_cf" }
func (r *UserCF) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall。
func (r *UserCF) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口：加载快照并把推荐结果封装为 Item。
func (r *UserCF) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Store == nil || rctx == nil || rctx.UserID == "" {
		return nil, nil
	}

	items, err := r.Store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	recs := r.GenerateRecommendations(rctx.UserID, items)

	out := make([]*core.Item, 0, len(recs))
	for i := range recs {
		rec := recs[i]
		it := core.NewItem(rec.Item.ID)
		it.Score = rec.PredictedScore
		it.Meta["recommendation"] = &recs[i]
		it.PutLabel("recall_source", utils.Label{Value: "user_cf", Source: "recall"})
		if len(rec.ContributingUsers) > 0 {
			names := make([]string, 0, len(rec.ContributingUsers))
			for _, u := range rec.ContributingUsers {
				names = append(names, u.UserName)
			}
			it.PutLabel("contributing_users", utils.Label{
				Value:  strings.Join(names, ","),
				Source: "recall",
			})
		}
		it.PutLabel("predicted_score", utils.Label{
			Value:  fmt.Sprintf("%.2f", rec.PredictedScore),
			Source: "recall",
		})
		out = append(out, it)
	}

	return out, nil
}

// FindSimilarUsers 计算与目标用户口味相似的用户，按相关系数降序返回。
//
// 规则：
//   - 目标用户没有任何评分时返回空列表（数据不足不是错误）
//   - 相关系数只在共同评分的条目向量上计算（均值也只在重叠上取）
//   - 共同条目数低于 MinCommonItems 的用户直接跳过
//   - 共同条目不足 2 个时系数按 0 处理（数值上无意义）
//   - 只保留系数严格大于 SimilarityThreshold 的用户
//   - 同分用户保持输入出现顺序（稳定排序）
func (r *UserCF) FindSimilarUsers(targetUserID string, items []*core.RatedItem) []core.UserSimilarity {
	minCommon, threshold, _, _ := r.defaults()

	scores, order, names := buildUserVectors(items)

	targetScores := scores[targetUserID]
	if len(targetScores) == 0 {
		return nil
	}

	similar := make([]core.UserSimilarity, 0)
	for _, userID := range order {
		if userID == targetUserID {
			continue
		}
		userScores := scores[userID]

		// 共同评分条目上的配对向量；按快照条目顺序遍历保证确定性
		var a, b []float64
		for _, it := range items {
			ts, ok1 := targetScores[it.ID]
			us, ok2 := userScores[it.ID]
			if ok1 && ok2 {
				a = append(a, ts)
				b = append(b, us)
			}
		}

		if len(a) < minCommon {
			continue
		}

		sim := pearsonCorrelation(a, b)
		if sim <= threshold {
			continue
		}

		similar = append(similar, core.UserSimilarity{
			UserID:      userID,
			UserName:    names[userID],
			Correlation: sim,
			CommonItems: len(a),
		})
	}

	sort.SliceStable(similar, func(i, j int) bool {
		return similar[i].Correlation > similar[j].Correlation
	})

	return similar
}

// GenerateRecommendations 为目标用户预测未评分条目的评分，返回排好序的推荐列表。
//
// 预测公式：predicted = Σ(rating_i × similarity_i) / Σ(similarity_i)，
// 只累加实际评过该条目的相似用户。没有任何相似用户评过的条目没有信号，跳过。
// 预测分低于 PredictionFloor 的条目不推荐。
// ContributingUsers 取按相似度排名前 3 个实际贡献评分的用户，
// 不按个体贡献权重重排。
func (r *UserCF) GenerateRecommendations(targetUserID string, items []*core.RatedItem) []core.Recommendation {
	_, _, floor, maxResults := r.defaults()

	similar := r.FindSimilarUsers(targetUserID, items)
	if len(similar) == 0 {
		return nil
	}

	// 排除目标用户已评分的条目
	rated := make(map[string]struct{})
	for _, it := range items {
		if _, ok := it.RatingBy(targetUserID); ok {
			rated[it.ID] = struct{}{}
		}
	}

	recs := make([]core.Recommendation, 0)
	for _, it := range items {
		if _, ok := rated[it.ID]; ok {
			continue
		}

		var num, den float64
		var contributors []core.UserSimilarity
		for _, su := range similar {
			score, ok := it.RatingBy(su.UserID)
			if !ok {
				continue
			}
			num += float64(score) * su.Correlation
			den += su.Correlation
			if len(contributors) < maxContributors {
				contributors = append(contributors, su)
			}
		}

		if den == 0 {
			continue // 没有相似用户评过，无信号
		}

		predicted := num / den
		if predicted < floor {
			continue
		}

		recs = append(recs, core.Recommendation{
			Item:              it,
			PredictedScore:    predicted,
			ContributingUsers: contributors,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].PredictedScore > recs[j].PredictedScore
	})
	if len(recs) > maxResults {
		recs = recs[:maxResults]
	}

	return recs
}

// defaults 解析配置：显式字段 → Config → DefaultEngineConfig。
func (r *UserCF) defaults() (minCommon int, threshold, floor float64, maxResults int) {
	cfg := r.Config
	if cfg == nil {
		cfg = &core.DefaultEngineConfig{}
	}

	minCommon = r.MinCommonItems
	if minCommon <= 0 {
		minCommon = cfg.DefaultMinCommonItems()
	}
	threshold = r.SimilarityThreshold
	if threshold <= 0 {
		threshold = cfg.DefaultSimilarityThreshold()
	}
	floor = r.PredictionFloor
	if floor <= 0 {
		floor = cfg.DefaultPredictionFloor()
	}
	maxResults = r.MaxResults
	if maxResults <= 0 {
		maxResults = cfg.DefaultMaxResults()
	}
	return minCommon, threshold, floor, maxResults
}

// FindSimilarUsers 是默认配置下的便捷入口。minCommonItems <= 0 时取默认值 3。
func FindSimilarUsers(targetUserID string, items []*core.RatedItem, minCommonItems int) []core.UserSimilarity {
	cf := &UserCF{MinCommonItems: minCommonItems}
	return cf.FindSimilarUsers(targetUserID, items)
}

// GenerateRecommendations 是默认配置下的便捷入口。maxResults <= 0 时取默认值 20。
func GenerateRecommendations(targetUserID string, items []*core.RatedItem, maxResults int) []core.Recommendation {
	cf := &UserCF{MaxResults: maxResults}
	return cf.GenerateRecommendations(targetUserID, items)
}

// buildUserVectors 从条目快照构建每个用户的 条目→评分 向量。
// order 记录用户在快照中的首次出现顺序，保证遍历确定性；
// names 记录用户展示名。
func buildUserVectors(items []*core.RatedItem) (scores map[string]map[string]float64, order []string, names map[string]string) {
	scores = make(map[string]map[string]float64)
	names = make(map[string]string)
	for _, it := range items {
		for _, rating := range it.Ratings {
			vec, ok := scores[rating.UserID]
			if !ok {
				vec = make(map[string]float64)
				scores[rating.UserID] = vec
				order = append(order, rating.UserID)
				names[rating.UserID] = rating.UserName
			}
			vec[it.ID] = float64(rating.Score)
		}
	}
	return scores, order, names
}

// pearsonCorrelation 计算皮尔逊相关系数。
// 向量长度不足 2 或任一方差为 0（退化向量，如全部同分）时按 0 处理，
// 避免除零，但这不是错误。
func pearsonCorrelation(x, y []float64) float64 {
	if len(x) != len(y) || len(x) < 2 {
		return 0
	}

	// 均值只在共同条目上取
	var meanX, meanY float64
	for i := range x {
		meanX += x[i]
		meanY += y[i]
	}
	meanX /= float64(len(x))
	meanY /= float64(len(y))

	// 协方差和方差
	var cov, varX, varY float64
	for i := range x {
		dx := x[i] - meanX
		dy := y[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}

	if varX == 0 || varY == 0 {
		return 0
	}

	return cov / math.Sqrt(varX*varY)
}
