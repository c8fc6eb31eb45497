package recall

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/xemaha/watchkit/core"
)

// HTTPCatalogSearcher 通过 HTTP 接口搜索外部片库（TMDB 类元数据服务）。
//
// 约定接口：GET {BaseURL}/search?query=...&media_type=...，
// 返回 {"results": [Candidate...]} 的 JSON。认证通过 api_key 查询参数传递（可选）。
type HTTPCatalogSearcher struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewHTTPCatalogSearcher 创建 HTTP 片库搜索器。
func NewHTTPCatalogSearcher(baseURL, apiKey string, timeout time.Duration) *HTTPCatalogSearcher {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &HTTPCatalogSearcher{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

func (s *HTTPCatalogSearcher) Search(ctx context.Context, query, mediaType string) ([]core.Candidate, error) {
	params := url.Values{}
	params.Set("query", query)
	if mediaType != "" {
		params.Set("media_type", mediaType)
	}
	if s.apiKey != "" {
		params.Set("api_key", s.apiKey)
	}
	endpoint := s.baseURL + "/search?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("catalog: build request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog: search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("catalog: search: status=%d, body=%s", resp.StatusCode, string(body))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("catalog: read response: %w", err)
	}

	var parsed struct {
		Results []core.Candidate `json:"results"`
	}
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("catalog: parse response: %w", err)
	}
	return parsed.Results, nil
}

var _ CatalogSearcher = (*HTTPCatalogSearcher)(nil)
