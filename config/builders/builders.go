// Package builders 注册内置 Node 的配置构建器。
//
// 配置驱动入口处 import _ "github.com/xemaha/watchkit/config/builders" 即可。
// 需要外部依赖的 Node（评分快照存储、片库搜索、详情拉取）从配置只能构建出
// 参数部分，依赖本身由调用方在构建后注入。
package builders

import (
	"fmt"
	"time"

	"github.com/xemaha/watchkit/config"
	"github.com/xemaha/watchkit/enrich"
	"github.com/xemaha/watchkit/filter"
	"github.com/xemaha/watchkit/pipeline"
	"github.com/xemaha/watchkit/pkg/conv"
	"github.com/xemaha/watchkit/rank"
	"github.com/xemaha/watchkit/recall"
	"github.com/xemaha/watchkit/rerank"
)

func init() {
	config.Register("recall.user_cf", BuildUserCFNode)
	config.Register("recall.hot", BuildHotNode)
	config.Register("recall.fanout", BuildFanoutNode)
	config.Register("rank.discovery", BuildDiscoveryNode)
	config.Register("rerank.topn", BuildTopNNode)
	config.Register("filter", BuildFilterNode)
	config.Register("enrich.details", BuildEnrichNode)
}

// BuildUserCFNode 构建协同过滤召回。快照存储需构建后注入。
func BuildUserCFNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &recall.UserCF{
		MinCommonItems:      conv.ConfigGetInt(cfg, "min_common_items", 0),
		SimilarityThreshold: conv.ConfigGetFloat(cfg, "similarity_threshold", 0),
		PredictionFloor:     conv.ConfigGetFloat(cfg, "prediction_floor", 0),
		MaxResults:          conv.ConfigGetInt(cfg, "max_results", 0),
	}, nil
}

func BuildHotNode(cfg map[string]interface{}) (pipeline.Node, error) {
	ids := conv.SliceAnyToString(cfg["ids"])
	if ids == nil {
		ids = []string{}
	}
	return &recall.Hot{
		Key:  conv.ConfigGet(cfg, "key", ""),
		IDs:  ids,
		TopN: conv.ConfigGetInt(cfg, "top_n", 0),
	}, nil
}

func BuildFanoutNode(cfg map[string]interface{}) (pipeline.Node, error) {
	sourcesConfig, ok := cfg["sources"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("sources not found or invalid")
	}
	sources := make([]recall.Source, 0, len(sourcesConfig))
	for _, sc := range sourcesConfig {
		sourceMap, ok := sc.(map[string]interface{})
		if !ok {
			continue
		}
		sourceType := conv.ConfigGet(sourceMap, "type", "")
		switch sourceType {
		case "hot":
			ids := conv.SliceAnyToString(sourceMap["ids"])
			if ids == nil {
				ids = []string{}
			}
			sources = append(sources, &recall.Hot{
				Key:  conv.ConfigGet(sourceMap, "key", ""),
				IDs:  ids,
				TopN: conv.ConfigGetInt(sourceMap, "top_n", 0),
			})
		case "user_cf":
			node, err := BuildUserCFNode(sourceMap)
			if err != nil {
				return nil, err
			}
			sources = append(sources, node.(*recall.UserCF))
		default:
			return nil, fmt.Errorf("unknown source type: %s", sourceType)
		}
	}
	return &recall.Fanout{
		Sources:       sources,
		Dedup:         conv.ConfigGet(cfg, "dedup", true),
		Timeout:       time.Duration(conv.ConfigGetInt(cfg, "timeout", 0)) * time.Second,
		MaxConcurrent: conv.ConfigGetInt(cfg, "max_concurrent", 0),
		MergeStrategy: conv.ConfigGet(cfg, "merge_strategy", ""),
	}, nil
}

func BuildDiscoveryNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &rank.DiscoveryNode{}, nil
}

func BuildTopNNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &rerank.TopNNode{N: conv.ConfigGetInt(cfg, "n", 0)}, nil
}

func BuildFilterNode(cfg map[string]interface{}) (pipeline.Node, error) {
	filtersConfig, ok := cfg["filters"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("filters not found or invalid")
	}

	filters := make([]filter.Filter, 0, len(filtersConfig))
	for _, fc := range filtersConfig {
		filterMap, ok := fc.(map[string]interface{})
		if !ok {
			continue
		}
		filterType := conv.ConfigGet(filterMap, "type", "")
		switch filterType {
		case "rated":
			// 快照存储需构建后注入
			filters = append(filters, &filter.RatedFilter{})
		case "exclude":
			ids := conv.SliceAnyToString(filterMap["ids"])
			filters = append(filters, &filter.ExcludeIDFilter{IDs: ids})
		case "rule":
			filters = append(filters, &filter.RuleFilter{
				Expr: conv.ConfigGet(filterMap, "expr", ""),
			})
		default:
			return nil, fmt.Errorf("unknown filter type: %s", filterType)
		}
	}

	return &filter.FilterNode{Filters: filters}, nil
}

// BuildEnrichNode 构建元数据补全节点。Detailer 需构建后注入。
func BuildEnrichNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &enrich.EnrichNode{
		MaxConcurrent: conv.ConfigGetInt(cfg, "max_concurrent", 0),
		Timeout:       time.Duration(conv.ConfigGetInt(cfg, "timeout", 0)) * time.Second,
	}, nil
}
