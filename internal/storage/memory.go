package storage

import (
	"context"
	"sync"
	"time"

	"mcpmyapi-backend/internal/model"
)

// MemoryStore 内存实现，用于本地开发和测试
type MemoryStore struct {
	conversations map[string]*model.Conversation
	mu            sync.RWMutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		conversations: make(map[string]*model.Conversation),
	}
}

func (m *MemoryStore) Init(ctx context.Context) error {
	return nil
}

func (m *MemoryStore) Close(ctx context.Context) error {
	return nil
}

func (m *MemoryStore) CreateConversation(ctx context.Context, conv *model.Conversation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *conv
	m.conversations[conv.ID] = &cp
	return nil
}

func (m *MemoryStore) GetConversation(ctx context.Context, conversationID string) (*model.Conversation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	conv, exists := m.conversations[conversationID]
	if !exists {
		return nil, ErrConversationNotFound
	}

	cp := *conv
	cp.Messages = append([]model.Message(nil), conv.Messages...)
	return &cp, nil
}

func (m *MemoryStore) GetConversationByTelegramID(ctx context.Context, telegramID string) (*model.Conversation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var latest *model.Conversation
	for _, conv := range m.conversations {
		if conv.TelegramID != telegramID || !conv.IsActive {
			continue
		}
		if latest == nil || conv.UpdatedAt.After(latest.UpdatedAt) {
			latest = conv
		}
	}

	if latest == nil {
		return nil, ErrConversationNotFound
	}

	cp := *latest
	cp.Messages = append([]model.Message(nil), latest.Messages...)
	return &cp, nil
}

func (m *MemoryStore) UpdateConversation(ctx context.Context, conv *model.Conversation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.conversations[conv.ID]; !exists {
		return ErrConversationNotFound
	}

	cp := *conv
	m.conversations[conv.ID] = &cp
	return nil
}

func (m *MemoryStore) AddMessage(ctx context.Context, conversationID string, msg model.Message) (*model.Conversation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	conv, exists := m.conversations[conversationID]
	if !exists {
		return nil, ErrConversationNotFound
	}

	conv.Messages = append(conv.Messages, msg)
	conv.UpdatedAt = time.Now()

	cp := *conv
	cp.Messages = append([]model.Message(nil), conv.Messages...)
	return &cp, nil
}
