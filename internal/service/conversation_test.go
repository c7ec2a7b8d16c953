package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcpmyapi-backend/internal/model"
	"mcpmyapi-backend/internal/storage"
)

func TestGetOrCreate(t *testing.T) {
	t.Parallel()

	t.Run("creates with generated id", func(t *testing.T) {
		t.Parallel()
		svc := NewConversationService(storage.NewMemoryStore())

		conv, err := svc.GetOrCreate(context.Background(), "", "")
		require.NoError(t, err)
		assert.NotEmpty(t, conv.ID)
		assert.True(t, conv.IsActive)
		assert.Empty(t, conv.Messages)
	})

	t.Run("keeps supplied id for new conversation", func(t *testing.T) {
		t.Parallel()
		svc := NewConversationService(storage.NewMemoryStore())

		conv, err := svc.GetOrCreate(context.Background(), "conv-42", "")
		require.NoError(t, err)
		assert.Equal(t, "conv-42", conv.ID)
	})

	t.Run("is idempotent for the same id", func(t *testing.T) {
		t.Parallel()
		svc := NewConversationService(storage.NewMemoryStore())

		first, err := svc.GetOrCreate(context.Background(), "conv-1", "")
		require.NoError(t, err)
		second, err := svc.GetOrCreate(context.Background(), "conv-1", "")
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
	})

	t.Run("resolves most recent active conversation by telegram id", func(t *testing.T) {
		t.Parallel()
		store := storage.NewMemoryStore()
		svc := NewConversationService(store)

		older := &model.Conversation{ID: "old", TelegramID: "tg-1", IsActive: true, UpdatedAt: time.Now().Add(-time.Hour)}
		newer := &model.Conversation{ID: "new", TelegramID: "tg-1", IsActive: true, UpdatedAt: time.Now()}
		inactive := &model.Conversation{ID: "closed", TelegramID: "tg-1", IsActive: false, UpdatedAt: time.Now().Add(time.Hour)}
		require.NoError(t, store.CreateConversation(context.Background(), older))
		require.NoError(t, store.CreateConversation(context.Background(), newer))
		require.NoError(t, store.CreateConversation(context.Background(), inactive))

		conv, err := svc.GetOrCreate(context.Background(), "", "tg-1")
		require.NoError(t, err)
		assert.Equal(t, "new", conv.ID)
	})

	t.Run("explicit id wins over telegram id", func(t *testing.T) {
		t.Parallel()
		store := storage.NewMemoryStore()
		svc := NewConversationService(store)

		existing := &model.Conversation{ID: "tg-conv", TelegramID: "tg-2", IsActive: true, UpdatedAt: time.Now()}
		require.NoError(t, store.CreateConversation(context.Background(), existing))

		conv, err := svc.GetOrCreate(context.Background(), "fresh", "tg-2")
		require.NoError(t, err)
		assert.Equal(t, "fresh", conv.ID, "supplied conversation id must not be overridden by channel resolution")
	})
}

func TestAppend(t *testing.T) {
	t.Parallel()

	svc := NewConversationService(storage.NewMemoryStore())

	conv, err := svc.Append(context.Background(), "conv-a", model.RoleUser, "hello", "")
	require.NoError(t, err)
	conv, err = svc.Append(context.Background(), conv.ID, model.RoleAssistant, "hi there", "")
	require.NoError(t, err)

	require.Len(t, conv.Messages, 2)
	assert.Equal(t, model.RoleUser, conv.Messages[0].Role)
	assert.Equal(t, "hello", conv.Messages[0].Content)
	assert.Equal(t, model.RoleAssistant, conv.Messages[1].Role)

	// 时间戳是 RFC3339 格式
	_, err = time.Parse(time.RFC3339, conv.Messages[0].Timestamp)
	assert.NoError(t, err)
}

func TestHistoryUnknownConversation(t *testing.T) {
	t.Parallel()

	svc := NewConversationService(storage.NewMemoryStore())
	assert.Empty(t, svc.History(context.Background(), "nope"))
}

func TestRecent(t *testing.T) {
	t.Parallel()

	msgs := []model.Message{
		{Role: model.RoleUser, Content: "1"},
		{Role: model.RoleAssistant, Content: "2"},
		{Role: model.RoleUser, Content: "3"},
	}

	assert.Len(t, Recent(msgs, 2), 2)
	assert.Equal(t, "2", Recent(msgs, 2)[0].Content)
	assert.Len(t, Recent(msgs, 0), 3, "zero means unlimited")
	assert.Len(t, Recent(msgs, 10), 3)
}

func TestAsChatMessages(t *testing.T) {
	t.Parallel()

	msgs := []model.Message{
		{Role: model.RoleUser, Content: "q"},
		{Role: model.Role("tool"), Content: "ignored"},
		{Role: model.RoleAssistant, Content: "a"},
	}

	converted := AsChatMessages(msgs)
	require.Len(t, converted, 2)
	assert.Equal(t, "q", converted[0].Content)
	assert.Equal(t, "a", converted[1].Content)
}
