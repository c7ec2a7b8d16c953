package model

// ChatRequest 通用聊天请求，agent 字段决定分发到哪个智能体
type ChatRequest struct {
	Message        string `json:"message" binding:"required"`
	Agent          string `json:"agent"`
	ConversationID string `json:"conversation_id"`
	UserID         string `json:"user_id"`
	UserTimezone   string `json:"user_timezone"`
}

// ConversationAgentRequest 会话智能体请求，chat_id 用于 Telegram 渠道关联
type ConversationAgentRequest struct {
	Message        string `json:"message" binding:"required"`
	ConversationID string `json:"conversation_id"`
	ChatID         string `json:"chat_id"`
	UserID         string `json:"user_id"`
	UserTimezone   string `json:"user_timezone"`
}
