package storage

import (
	"context"

	"mcpmyapi-backend/internal/model"
)

// Store 会话持久化接口，生产环境用 MongoDB，测试用内存实现
type Store interface {
	// 会话管理
	CreateConversation(ctx context.Context, conv *model.Conversation) error
	GetConversation(ctx context.Context, conversationID string) (*model.Conversation, error)
	// GetConversationByTelegramID 返回该 Telegram ID 下最近更新的活跃会话
	GetConversationByTelegramID(ctx context.Context, telegramID string) (*model.Conversation, error)
	UpdateConversation(ctx context.Context, conv *model.Conversation) error

	// 消息追加，同时刷新 updated_at
	AddMessage(ctx context.Context, conversationID string, msg model.Message) (*model.Conversation, error)

	// 存储管理
	Init(ctx context.Context) error
	Close(ctx context.Context) error
}
