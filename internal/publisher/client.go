package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"mcpmyapi-backend/internal/utils"
	"mcpmyapi-backend/pkg/logger"
)

// PublishResult 发布端点返回的展示地址和 ID
type PublishResult struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	Message string `json:"message,omitempty"`
}

// Client 把最终 HTML 文档 POST 到 UI 存储端点
type Client struct {
	endpoint   string
	httpClient *http.Client
}

func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint:   endpoint,
		httpClient: utils.NewHTTPClient(timeout),
	}
}

// Publish 存储文档，任何非创建成功的响应都视为硬失败
func (c *Client) Publish(ctx context.Context, content string) (*PublishResult, error) {
	payload, err := json.Marshal(map[string]string{"content": content})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal publish payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create publish request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	logger.Infof("📤 Publishing UI component to %s", c.endpoint)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to post to endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("publish failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result PublishResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode publish response: %w", err)
	}

	logger.Infof("✅ UI component stored, id=%s url=%s", result.ID, result.URL)
	return &result, nil
}
