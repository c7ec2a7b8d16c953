package model

import "time"

// Role 消息角色的标记类型，避免运行时类型判断
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message 会话中的一条消息，追加后不可修改
type Message struct {
	Role      Role   `json:"role" bson:"role"`
	Content   string `json:"content" bson:"content"`
	Timestamp string `json:"timestamp" bson:"timestamp"` // ISO-8601 格式
	TaskID    string `json:"task_id,omitempty" bson:"task_id,omitempty"`
}

// Conversation 一个会话文档，按 ID 或 Telegram ID 查找
type Conversation struct {
	ID         string    `json:"id" bson:"_id"`
	Messages   []Message `json:"messages" bson:"messages"`
	TelegramID string    `json:"telegram_id,omitempty" bson:"telegram_id,omitempty"`
	IsActive   bool      `json:"is_active" bson:"is_active"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" bson:"updated_at"`
}
