package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mcpmyapi-backend/internal/model"
	"mcpmyapi-backend/internal/service"
	"mcpmyapi-backend/pkg/logger"
)

// ChatHandler 聊天入口，按 agent 字段分发请求
type ChatHandler struct {
	agents *service.AgentService
}

func NewChatHandler(agents *service.AgentService) *ChatHandler {
	return &ChatHandler{agents: agents}
}

// Chat POST /chat，未知智能体返回 400，内部错误返回 500
func (h *ChatHandler) Chat(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	logger.Infof("📤 Chat request: agent=%s conversation=%s", req.Agent, req.ConversationID)

	result, err := h.agents.Dispatch(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrUnknownAgent) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Errorf("❌ Chat dispatch failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// ConversationAgent POST /conversation_agent，Telegram 渠道专用入口
func (h *ChatHandler) ConversationAgent(c *gin.Context) {
	var req model.ConversationAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	logger.Infof("📤 Conversation agent request: chat_id=%s conversation=%s", req.ChatID, req.ConversationID)

	result, err := h.agents.ConversationAgent(c.Request.Context(), req)
	if err != nil {
		logger.Errorf("❌ Conversation agent failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
