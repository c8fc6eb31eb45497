package core

// MediaType 标记条目的媒介形态。外部片库的搜索结果也会带上此标记。
const (
	MediaFilm   = "film"
	MediaSeries = "series"
	MediaBook   = "book"
)

// Rating 是一条用户评分记录。分数为 1-5 的整数；
// (ItemID, UserID) 的唯一性由上游存储保证，这里不再校验。
type Rating struct {
	ItemID   string `json:"item_id"`
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
	Score    int    `json:"score"`
}

// RatedItem 是带全部评分的条目快照（影/剧/书）。
// 由存储层反范式化后整体提供，协同过滤只读不改。
type RatedItem struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	MediaType string   `json:"media_type"`
	Ratings   []Rating `json:"ratings"`
}

// RatingBy 返回指定用户对该条目的评分；未评分时 ok 为 false。
func (it *RatedItem) RatingBy(userID string) (int, bool) {
	for _, r := range it.Ratings {
		if r.UserID == userID {
			return r.Score, true
		}
	}
	return 0, false
}

// UserSimilarity 是派生的相似用户记录，按请求即算即弃，不落存储。
// Correlation 取值范围 [-1, 1]。
type UserSimilarity struct {
	UserID      string  `json:"user_id"`
	UserName    string  `json:"user_name"`
	Correlation float64 `json:"correlation"`
	CommonItems int     `json:"common_items"`
}

// Recommendation 是协同过滤的输出：条目、预测评分、
// 以及按相似度顺序贡献评分的用户（最多 3 个）。
type Recommendation struct {
	Item              *RatedItem       `json:"item"`
	PredictedScore    float64          `json:"predicted_score"`
	ContributingUsers []UserSimilarity `json:"contributing_users"`
}
