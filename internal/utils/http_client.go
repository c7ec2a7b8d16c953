package utils

import (
	"net/http"
	"time"
)

// NewHTTPClient 带超时和连接池配置的 HTTP 客户端，供发布器和 Telegram 调用使用
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}
