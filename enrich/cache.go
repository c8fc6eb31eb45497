package enrich

import (
	"context"
	"encoding/json"

	"github.com/xemaha/watchkit/core"
)

// CachedDetailer 在 Detailer 前面加一层 KV 缓存：
// 详情接口是外部系统里最贵的调用，同一条目的元数据基本不变，
// 命中缓存可以省掉绝大部分外部请求。
//
// key 形态：{KeyPrefix}:{mediaType}:{id}
type CachedDetailer struct {
	Store core.Store
	Inner Detailer

	// KeyPrefix 缓存 key 前缀，默认 "details"
	KeyPrefix string

	// TTL 缓存过期时间（秒），0 表示不过期
	TTL int
}

// NewCachedDetailer 创建一个带缓存的详情拉取器。
func NewCachedDetailer(store core.Store, inner Detailer, ttl int) *CachedDetailer {
	return &CachedDetailer{
		Store:     store,
		Inner:     inner,
		KeyPrefix: "details",
		TTL:       ttl,
	}
}

func (d *CachedDetailer) Fetch(ctx context.Context, id, mediaType string) (Details, error) {
	key := d.key(id, mediaType)

	// 先查缓存；缓存故障不影响回源
	if d.Store != nil {
		if data, err := d.Store.Get(ctx, key); err == nil {
			var cached Details
			if json.Unmarshal(data, &cached) == nil {
				return cached, nil
			}
		}
	}

	if d.Inner == nil {
		return Details{}, core.NewDomainError(core.ModuleEnrich, core.ErrorCodeUnavailable, "enrich: no detailer configured")
	}

	details, err := d.Inner.Fetch(ctx, id, mediaType)
	if err != nil {
		return Details{}, err
	}

	// 回填缓存；写失败忽略（下次回源即可）
	if d.Store != nil {
		if data, err := json.Marshal(details); err == nil {
			_ = d.Store.Set(ctx, key, data, d.TTL)
		}
	}

	return details, nil
}

func (d *CachedDetailer) key(id, mediaType string) string {
	prefix := d.KeyPrefix
	if prefix == "" {
		prefix = "details"
	}
	return prefix + ":" + mediaType + ":" + id
}

var _ Detailer = (*CachedDetailer)(nil)
