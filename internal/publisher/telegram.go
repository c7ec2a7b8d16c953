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

// TelegramNotifier 发布完成后向 Telegram 渠道回推结果，尽力而为
type TelegramNotifier struct {
	botToken   string
	httpClient *http.Client
}

func NewTelegramNotifier(botToken string, timeout time.Duration) *TelegramNotifier {
	return &TelegramNotifier{
		botToken:   botToken,
		httpClient: utils.NewHTTPClient(timeout),
	}
}

// Enabled 未配置 bot token 时通知整体关闭
func (t *TelegramNotifier) Enabled() bool {
	return t != nil && t.botToken != ""
}

// SendMessage 调用 Bot API sendMessage，失败只记日志不上抛
func (t *TelegramNotifier) SendMessage(ctx context.Context, chatID, text string) error {
	if !t.Enabled() {
		return nil
	}

	payload, err := json.Marshal(map[string]string{
		"chat_id":    chatID,
		"text":       text,
		"parse_mode": "HTML",
	})
	if err != nil {
		return fmt.Errorf("failed to marshal telegram payload: %w", err)
	}

	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", t.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("failed to create telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call telegram: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("telegram sendMessage failed with status %d: %s", resp.StatusCode, string(body))
	}

	logger.Infof("📨 Sent telegram notification to chat %s", chatID)
	return nil
}
