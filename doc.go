// Package watchkit 是一个个人影音/书目追踪的推荐工具包。
//
// 设计要点：
// - Pipeline-first: 推荐逻辑通过 Node 串联（Recall → Filter → Rank → ReRank → PostProcess）
// - 双引擎: 协同过滤（recall.UserCF，基于共同评分的 Pearson 相关）
//   与口味发现（rank.DiscoveryNode，画像信号对候选加权）
// - Labels-first: labels 全链路透传与标准化 merge，推荐理由可解释
// - Node 可扩展: 自定义 Node 即可插拔扩展
package watchkit

import "github.com/xemaha/watchkit/pipeline"

// 轻量 facade：便于用户直接 import "watchkit" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall      = pipeline.KindRecall
	KindFilter      = pipeline.KindFilter
	KindRank        = pipeline.KindRank
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)
