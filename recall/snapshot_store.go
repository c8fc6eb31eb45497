package recall

import (
	"context"
	"encoding/json"

	"github.com/xemaha/watchkit/core"
)

// StoreSnapshotAdapter 是基于 core.Store 接口的评分快照适配器。
// 业务侧把反范式化的条目快照整体写入一个 key（JSON 数组），
// 协同过滤按请求读出。快照不存在时返回空列表，属于"无数据"而非错误。
type StoreSnapshotAdapter struct {
	store core.Store

	// Key 是快照的存储 key，默认 "ratings:snapshot"
	Key string
}

// NewStoreSnapshotAdapter 创建一个基于 core.Store 的快照适配器。
func NewStoreSnapshotAdapter(s core.Store, key string) *StoreSnapshotAdapter {
	if key == "" {
		key = "ratings:snapshot"
	}
	return &StoreSnapshotAdapter{store: s, Key: key}
}

func (a *StoreSnapshotAdapter) Snapshot(ctx context.Context) ([]*core.RatedItem, error) {
	data, err := a.store.Get(ctx, a.Key)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	var items []*core.RatedItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Save 把快照写回存储（ttl 单位秒，0 表示不过期）。
func (a *StoreSnapshotAdapter) Save(ctx context.Context, items []*core.RatedItem, ttl int) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return a.store.Set(ctx, a.Key, data, ttl)
}

var _ SnapshotStore = (*StoreSnapshotAdapter)(nil)
