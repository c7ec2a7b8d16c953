package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcpmyapi-backend/internal/publisher"
	"mcpmyapi-backend/internal/service"
	"mcpmyapi-backend/internal/storage"
	"mcpmyapi-backend/internal/tools"
)

// stubLLM 固定回答的模型替身
type stubLLM struct {
	answer string
}

func (s *stubLLM) Complete(ctx context.Context, messages []openai.ChatCompletionMessage) (string, error) {
	return s.answer, nil
}

func (s *stubLLM) CompleteJSON(ctx context.Context, messages []openai.ChatCompletionMessage, schemaName string, schema json.RawMessage) (json.RawMessage, error) {
	return json.RawMessage(`{"suggestions":[],"case_description":""}`), nil
}

func (s *stubLLM) CompleteWithTools(ctx context.Context, messages []openai.ChatCompletionMessage, t []openai.Tool) (openai.ChatCompletionMessage, error) {
	return openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: s.answer}, nil
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"ui-1","url":"https://example.com/ui/ui-1"}`))
	}))
	t.Cleanup(srv.Close)

	client := &stubLLM{answer: "stub answer"}
	pub := publisher.NewClient(srv.URL, 5*time.Second)
	conversations := service.NewConversationService(storage.NewMemoryStore())
	agents := service.NewAgentService(
		conversations,
		service.NewQueryInterpreter(client),
		service.NewPipeline(client, pub),
		client,
		tools.NewRegistry(pub),
		publisher.NewTelegramNotifier("", time.Second),
		20,
		3,
	)

	chatHandler := NewChatHandler(agents)
	systemHandler := NewSystemHandler()

	router := gin.New()
	router.GET("/", systemHandler.Root)
	router.GET("/test", systemHandler.Test)
	router.GET("/health", systemHandler.Health)
	router.GET("/furniture/:type/:color", systemHandler.Furniture)
	router.POST("/chat", chatHandler.Chat)
	router.POST("/conversation_agent", chatHandler.ConversationAgent)
	return router
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestChatUnknownAgent(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	w := doJSON(router, http.MethodPost, "/chat", `{"message":"hi","agent":"time_traveler"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unknown agent")
}

func TestChatMissingMessage(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	w := doJSON(router, http.MethodPost, "/chat", `{"agent":"default"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatMalformedBody(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	w := doJSON(router, http.MethodPost, "/chat", `{not json`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatDefaultAgent(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	w := doJSON(router, http.MethodPost, "/chat", `{"message":"hello"}`)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success        bool   `json:"success"`
		Response       string `json:"response"`
		ConversationID string `json:"conversation_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "stub answer", body.Response)
	assert.NotEmpty(t, body.ConversationID)
}

func TestConversationAgentMissingMessage(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	w := doJSON(router, http.MethodPost, "/conversation_agent", `{"chat_id":"42"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConversationAgentEndpoint(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	w := doJSON(router, http.MethodPost, "/conversation_agent", `{"message":"I need furniture","chat_id":"42"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
}

func TestFurnitureEndpoint(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	t.Run("known combination", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/furniture/chair/blue", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Oslo Accent Chair")
	})

	t.Run("unknown combination returns 404", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/furniture/chair/red", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestSystemEndpoints(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	for _, path := range []string{"/", "/test", "/health"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}
