package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// HTTPDetailer 通过 HTTP 接口拉取条目详情（TMDB 类元数据服务）。
//
// 约定接口：GET {BaseURL}/{mediaType}/{id}，返回 Details 的 JSON。
// 认证通过 api_key 查询参数传递（可选）。
type HTTPDetailer struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewHTTPDetailer 创建 HTTP 详情拉取器。
//
// 用法：
//
//	detailer := enrich.NewHTTPDetailer("https://api.example.com/v1", key, 5*time.Second)
//	details, err := detailer.Fetch(ctx, "tt1375666", core.MediaFilm)
func NewHTTPDetailer(baseURL, apiKey string, timeout time.Duration) *HTTPDetailer {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &HTTPDetailer{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

// NewHTTPDetailerWithClient 使用自定义 HTTP 客户端创建（代理/重试等自行配置）。
func NewHTTPDetailerWithClient(baseURL, apiKey string, client *http.Client) *HTTPDetailer {
	return &HTTPDetailer{client: client, baseURL: baseURL, apiKey: apiKey}
}

func (d *HTTPDetailer) Fetch(ctx context.Context, id, mediaType string) (Details, error) {
	endpoint := fmt.Sprintf("%s/%s/%s", d.baseURL, url.PathEscape(mediaType), url.PathEscape(id))
	if d.apiKey != "" {
		endpoint += "?api_key=" + url.QueryEscape(d.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return Details{}, fmt.Errorf("enrich: build request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return Details{}, fmt.Errorf("enrich: fetch details: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return Details{}, fmt.Errorf("enrich: fetch details: status=%d, body=%s", resp.StatusCode, string(body))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Details{}, fmt.Errorf("enrich: read response: %w", err)
	}

	var details Details
	if err := json.Unmarshal(data, &details); err != nil {
		return Details{}, fmt.Errorf("enrich: parse details: %w", err)
	}
	return details, nil
}

var _ Detailer = (*HTTPDetailer)(nil)
