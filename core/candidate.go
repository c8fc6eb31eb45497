package core

// Candidate 是外部片库的候选条目：搜索接口给出基础投票统计，
// 详情接口补全导演/演员/类型/关键词。补全可能部分缺失（详情拉取失败），
// 打分算法必须容忍空字段，只是对应信号不加分。
type Candidate struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	MediaType   string  `json:"media_type"`
	VoteAverage float64 `json:"vote_average"`
	VoteCount   int     `json:"vote_count"`
	Popularity  float64 `json:"popularity"`

	// 补全元数据（可能为空）
	Director   string   `json:"director,omitempty"`
	Actors     []string `json:"actors,omitempty"`
	Genres     []string `json:"genres,omitempty"`
	Keywords   []string `json:"keywords,omitempty"`
	TrailerURL string   `json:"trailer_url,omitempty"`
}

// ScoredCandidate 是打分后的候选：综合分、可读的命中原因、
// 逐项的分数拆解，以及命中关键词的频次（仅透传给 UI，不参与打分）。
type ScoredCandidate struct {
	Candidate          Candidate      `json:"candidate"`
	Score              float64        `json:"score"`
	MatchReasons       []string       `json:"match_reasons"`
	ScoreBreakdown     []string       `json:"score_breakdown"`
	KeywordFrequencies map[string]int `json:"keyword_frequencies,omitempty"`
}
