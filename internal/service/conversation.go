package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"

	"mcpmyapi-backend/internal/model"
	"mcpmyapi-backend/internal/storage"
	"mcpmyapi-backend/pkg/logger"
)

// ConversationService 会话状态机：按 ID 或 Telegram ID 解析会话，维护追加式消息日志
type ConversationService struct {
	store storage.Store
}

func NewConversationService(store storage.Store) *ConversationService {
	return &ConversationService{store: store}
}

// GetOrCreate 解析顺序：精确 ID -> Telegram ID 下最近的活跃会话 -> 新建。
// 查询阶段的存储错误按未找到处理，不向上抛
func (s *ConversationService) GetOrCreate(ctx context.Context, conversationID, telegramID string) (*model.Conversation, error) {
	if conversationID != "" {
		conv, err := s.store.GetConversation(ctx, conversationID)
		if err == nil {
			logger.Infof("📖 Found conversation: %s with %d messages", conversationID, len(conv.Messages))
			return conv, nil
		}
		if err != storage.ErrConversationNotFound {
			logger.Errorf("Error retrieving conversation %s: %v", conversationID, err)
		}
	}

	if conversationID == "" && telegramID != "" {
		conv, err := s.store.GetConversationByTelegramID(ctx, telegramID)
		if err == nil {
			logger.Infof("🔄 Using existing conversation %s for telegram_id: %s", conv.ID, telegramID)
			return conv, nil
		}
		if err != storage.ErrConversationNotFound {
			logger.Errorf("Error retrieving conversation by telegram id %s: %v", telegramID, err)
		}
	}

	if conversationID == "" {
		conversationID = uuid.New().String()
	}

	now := time.Now()
	conv := &model.Conversation{
		ID:         conversationID,
		Messages:   []model.Message{},
		TelegramID: telegramID,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.store.CreateConversation(ctx, conv); err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}

	logger.Infof("🆕 Created new conversation: %s", conversationID)
	return conv, nil
}

// Append 追加一条消息并刷新 updated_at，消息追加后不再修改
func (s *ConversationService) Append(ctx context.Context, conversationID string, role model.Role, content, telegramID string) (*model.Conversation, error) {
	conv, err := s.GetOrCreate(ctx, conversationID, telegramID)
	if err != nil {
		return nil, err
	}

	msg := model.Message{
		Role:      role,
		Content:   content,
		Timestamp: time.Now().Format(time.RFC3339),
	}

	updated, err := s.store.AddMessage(ctx, conv.ID, msg)
	if err != nil {
		return nil, fmt.Errorf("failed to add message: %w", err)
	}

	logger.Infof("💾 Added %s message to conversation %s (%d messages)", role, conv.ID, len(updated.Messages))
	return updated, nil
}

// History 未知会话返回空列表而不是错误
func (s *ConversationService) History(ctx context.Context, conversationID string) []model.Message {
	conv, err := s.store.GetConversation(ctx, conversationID)
	if err != nil {
		return []model.Message{}
	}
	return conv.Messages
}

// Recent 截取最近 max 条消息，max<=0 表示不截取
func Recent(messages []model.Message, max int) []model.Message {
	if max > 0 && len(messages) > max {
		return messages[len(messages)-max:]
	}
	return messages
}

// AsChatMessages 转换为模型调用格式，非 user/assistant 角色跳过
func AsChatMessages(messages []model.Message) []openai.ChatCompletionMessage {
	result := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case model.RoleUser:
			result = append(result, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: msg.Content})
		case model.RoleAssistant:
			result = append(result, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: msg.Content})
		}
	}
	return result
}
