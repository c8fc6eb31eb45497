package core

// EngineConfig 是协同过滤相关的配置接口，用于提供默认值。
// 0.1 的相似度阈值与 3.5 的预测下限没有经验证的最优取值，
// 因此作为可配置参数暴露，默认值沿用线上表现。
type EngineConfig interface {
	// DefaultMinCommonItems 返回计算相似度所需的最少共同评分条目数
	DefaultMinCommonItems() int

	// DefaultSimilarityThreshold 返回保留相似用户的最低相关系数（弱正相关线）
	DefaultSimilarityThreshold() float64

	// DefaultPredictionFloor 返回推荐结果的最低预测评分（质量下限）
	DefaultPredictionFloor() float64

	// DefaultMaxResults 返回默认的推荐条目数
	DefaultMaxResults() int
}

// DefaultEngineConfig 是默认的配置实现。
type DefaultEngineConfig struct{}

func (c *DefaultEngineConfig) DefaultMinCommonItems() int {
	return 3
}

func (c *DefaultEngineConfig) DefaultSimilarityThreshold() float64 {
	return 0.1
}

func (c *DefaultEngineConfig) DefaultPredictionFloor() float64 {
	return 3.5
}

func (c *DefaultEngineConfig) DefaultMaxResults() int {
	return 20
}
