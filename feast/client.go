// Package feast 封装 Feast Feature Store 的在线特征访问。
//
// 口味画像的特征（偏好类型/导演/演员/关键词）可以物化到 Feast 在线存储，
// 推荐时按 user_id 实时拉取。本包只依赖官方 Go SDK 的在线特征接口。
//
// 参考：https://github.com/feast-dev/feast
package feast

import (
	"context"
	"time"
)

// Client 是在线特征客户端的领域接口。
// 基础设施实现见 GrpcClient；测试可以自行实现此接口。
type Client interface {
	// GetOnlineFeatures 按实体行拉取在线特征
	GetOnlineFeatures(ctx context.Context, req *GetOnlineFeaturesRequest) (*GetOnlineFeaturesResponse, error)

	// Close 关闭客户端连接
	Close() error
}

// GetOnlineFeaturesRequest 在线特征请求。
type GetOnlineFeaturesRequest struct {
	// Features 特征名称列表，例如 ["taste_profile:genres", "taste_profile:directors"]
	Features []string

	// EntityRows 实体行，例如 [{"user_id": "alice"}]
	EntityRows []map[string]interface{}

	// Project 项目名称（可选，为空时用客户端默认）
	Project string
}

// GetOnlineFeaturesResponse 在线特征响应。
type GetOnlineFeaturesResponse struct {
	// FeatureVectors 特征向量列表，与请求的实体行一一对应
	FeatureVectors []FeatureVector
}

// FeatureVector 单个实体的特征向量。
type FeatureVector struct {
	// Values 特征值，key 为特征名称
	Values map[string]interface{}

	// EntityRow 对应的实体行
	EntityRow map[string]interface{}
}

// ClientOption 客户端配置选项
type ClientOption func(*ClientConfig)

// ClientConfig 客户端配置
type ClientConfig struct {
	Timeout time.Duration
	Auth    *AuthConfig
}

// AuthConfig 认证配置。Type 目前支持 "static"（gRPC 静态 Token）。
type AuthConfig struct {
	Type  string
	Token string
}

// WithTimeout 配置选项：设置超时时间
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *ClientConfig) {
		c.Timeout = timeout
	}
}

// WithAuth 配置选项：设置认证信息
func WithAuth(auth *AuthConfig) ClientOption {
	return func(c *ClientConfig) {
		c.Auth = auth
	}
}
