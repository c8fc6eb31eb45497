package core

import "strings"

// TasteProfile 是用户的口味画像：偏好类型/导演/演员的集合，
// 加权的关键词集合（名称→频次），以及打分时要排除的条目 ID。
// 由外围系统基于用户自己的高分条目构建，打分算法把它当作只读输入。
//
// 画像是值语义：所有更新方法都是写时复制，返回新画像，
// 原画像不变。画像会被并发打分调用共享，避免别名修改。
type TasteProfile struct {
	Genres     map[string]struct{} `json:"genres,omitempty"`
	Directors  map[string]struct{} `json:"directors,omitempty"`
	Actors     map[string]struct{} `json:"actors,omitempty"`
	Keywords   map[string]int      `json:"keywords,omitempty"`
	ExcludeIDs map[string]struct{} `json:"exclude_ids,omitempty"`
}

// PreferenceEntry 是归一化后的偏好项。
// 外部输入可能是纯字符串，也可能是 {name, count} 记录；
// 在边界处统一解析一次，打分算法只见归一化形态。
type PreferenceEntry struct {
	Name  string
	Count int
}

// ResolvePreferenceEntry 将任意形态的偏好输入解析为 PreferenceEntry。
// 支持 string、PreferenceEntry、map[string]any{"name": ..., "count": ...}。
// 名称为空时返回 false。
func ResolvePreferenceEntry(v any) (PreferenceEntry, bool) {
	switch val := v.(type) {
	case string:
		name := strings.TrimSpace(val)
		if name == "" {
			return PreferenceEntry{}, false
		}
		return PreferenceEntry{Name: name, Count: 1}, true
	case PreferenceEntry:
		val.Name = strings.TrimSpace(val.Name)
		if val.Name == "" {
			return PreferenceEntry{}, false
		}
		if val.Count <= 0 {
			val.Count = 1
		}
		return val, true
	case map[string]any:
		name, _ := val["name"].(string)
		name = strings.TrimSpace(name)
		if name == "" {
			return PreferenceEntry{}, false
		}
		count := 1
		switch c := val["count"].(type) {
		case int:
			count = c
		case int64:
			count = int(c)
		case float64:
			count = int(c)
		}
		if count <= 0 {
			count = 1
		}
		return PreferenceEntry{Name: name, Count: count}, true
	default:
		return PreferenceEntry{}, false
	}
}

// NormalizeName 统一匹配口径：去首尾空白 + 小写。
func NormalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// WithGenres 返回加入偏好类型后的新画像。
func (p TasteProfile) WithGenres(names ...string) TasteProfile {
	out := p.clone()
	for _, n := range names {
		key := NormalizeName(n)
		if key == "" {
			continue
		}
		out.Genres[key] = struct{}{}
	}
	return out
}

// WithDirectors 返回加入偏好导演后的新画像。输入可为 string 或 {name,count}。
func (p TasteProfile) WithDirectors(entries ...any) TasteProfile {
	out := p.clone()
	for _, e := range entries {
		if pe, ok := ResolvePreferenceEntry(e); ok {
			out.Directors[NormalizeName(pe.Name)] = struct{}{}
		}
	}
	return out
}

// WithActors 返回加入偏好演员后的新画像。输入可为 string 或 {name,count}。
func (p TasteProfile) WithActors(entries ...any) TasteProfile {
	out := p.clone()
	for _, e := range entries {
		if pe, ok := ResolvePreferenceEntry(e); ok {
			out.Actors[NormalizeName(pe.Name)] = struct{}{}
		}
	}
	return out
}

// WithKeywords 返回加入偏好关键词后的新画像。
// 同名关键词的频次累加（频次只作为透传元数据，不参与打分）。
func (p TasteProfile) WithKeywords(entries ...any) TasteProfile {
	out := p.clone()
	for _, e := range entries {
		if pe, ok := ResolvePreferenceEntry(e); ok {
			out.Keywords[NormalizeName(pe.Name)] += pe.Count
		}
	}
	return out
}

// WithExcludeIDs 返回加入排除条目后的新画像。
func (p TasteProfile) WithExcludeIDs(ids ...string) TasteProfile {
	out := p.clone()
	for _, id := range ids {
		if id == "" {
			continue
		}
		out.ExcludeIDs[id] = struct{}{}
	}
	return out
}

// HasGenre 检查画像是否偏好该类型（大小写不敏感）。
func (p TasteProfile) HasGenre(name string) bool {
	if p.Genres == nil {
		return false
	}
	_, ok := p.Genres[NormalizeName(name)]
	return ok
}

// HasDirector 检查画像是否偏好该导演（大小写不敏感）。
func (p TasteProfile) HasDirector(name string) bool {
	if p.Directors == nil {
		return false
	}
	_, ok := p.Directors[NormalizeName(name)]
	return ok
}

// HasActor 检查画像是否偏好该演员（大小写不敏感）。
func (p TasteProfile) HasActor(name string) bool {
	if p.Actors == nil {
		return false
	}
	_, ok := p.Actors[NormalizeName(name)]
	return ok
}

// KeywordCount 返回偏好关键词的频次；未偏好时 ok 为 false。
func (p TasteProfile) KeywordCount(name string) (int, bool) {
	if p.Keywords == nil {
		return 0, false
	}
	c, ok := p.Keywords[NormalizeName(name)]
	return c, ok
}

// Excluded 检查条目是否在排除集中。
func (p TasteProfile) Excluded(id string) bool {
	if p.ExcludeIDs == nil {
		return false
	}
	_, ok := p.ExcludeIDs[id]
	return ok
}

// clone 深拷贝所有集合，保证写时复制语义。
func (p TasteProfile) clone() TasteProfile {
	out := TasteProfile{
		Genres:     make(map[string]struct{}, len(p.Genres)),
		Directors:  make(map[string]struct{}, len(p.Directors)),
		Actors:     make(map[string]struct{}, len(p.Actors)),
		Keywords:   make(map[string]int, len(p.Keywords)),
		ExcludeIDs: make(map[string]struct{}, len(p.ExcludeIDs)),
	}
	for k := range p.Genres {
		out.Genres[k] = struct{}{}
	}
	for k := range p.Directors {
		out.Directors[k] = struct{}{}
	}
	for k := range p.Actors {
		out.Actors[k] = struct{}{}
	}
	for k, v := range p.Keywords {
		out.Keywords[k] = v
	}
	for k := range p.ExcludeIDs {
		out.ExcludeIDs[k] = struct{}{}
	}
	return out
}
