// Package store 提供 core.Store / core.KeyValueStore 的具体实现。
//
// 注意：接口定义在 core 包，此包只包含实现。
//
// 用途：
//   - 评分快照（recall.StoreSnapshotAdapter 的底层存储）
//   - 热门榜单 zset（recall.Hot）
//   - 详情缓存（enrich.CachedDetailer）
//
// 示例：
//
//	var s core.Store = store.NewMemoryStore()
//	var kv core.KeyValueStore = store.NewMemoryStore()
package store
