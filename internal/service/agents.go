package service

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"mcpmyapi-backend/internal/catalog"
	"mcpmyapi-backend/internal/llm"
	"mcpmyapi-backend/internal/model"
	"mcpmyapi-backend/internal/prompt"
	"mcpmyapi-backend/internal/publisher"
	"mcpmyapi-backend/internal/tools"
	"mcpmyapi-backend/pkg/logger"
)

// 可路由的智能体名称
const (
	AgentDefault      = "default"
	AgentUIGenerator  = "ui_generator"
	AgentConversation = "conversation_agent"
)

// 每张卡片唯一的主操作按钮文案
const primaryAffordance = "View details"

// ErrUnknownAgent 请求了未注册的智能体名称，处理层映射为 400
var ErrUnknownAgent = errors.New("unknown agent")

// loopState 默认智能体工具循环的显式状态
type loopState int

const (
	stateAwaitingModel loopState = iota
	stateExecutingTools
	stateDone
)

// AgentService 按名称分发聊天请求到对应智能体，并维护会话消息日志
type AgentService struct {
	conversations  *ConversationService
	interpreter    *QueryInterpreter
	pipeline       *Pipeline
	client         llm.Client
	registry       *tools.Registry
	notifier       *publisher.TelegramNotifier
	maxHistory     int
	recursionLimit int
}

func NewAgentService(
	conversations *ConversationService,
	interpreter *QueryInterpreter,
	pipeline *Pipeline,
	client llm.Client,
	registry *tools.Registry,
	notifier *publisher.TelegramNotifier,
	maxHistory int,
	recursionLimit int,
) *AgentService {
	if recursionLimit <= 0 {
		recursionLimit = 3
	}
	return &AgentService{
		conversations:  conversations,
		interpreter:    interpreter,
		pipeline:       pipeline,
		client:         client,
		registry:       registry,
		notifier:       notifier,
		maxHistory:     maxHistory,
		recursionLimit: recursionLimit,
	}
}

// Dispatch 按请求里的智能体名称路由，空名称走默认智能体
func (s *AgentService) Dispatch(ctx context.Context, req model.ChatRequest) (model.AgentResult, error) {
	switch req.Agent {
	case "", AgentDefault:
		return s.runDefault(ctx, req)
	case AgentUIGenerator:
		return s.runUIGenerator(ctx, req)
	case AgentConversation:
		return s.ConversationAgent(ctx, model.ConversationAgentRequest{
			Message:        req.Message,
			ConversationID: req.ConversationID,
			UserID:         req.UserID,
			UserTimezone:   req.UserTimezone,
		})
	default:
		return model.AgentResult{}, fmt.Errorf("%w: %s", ErrUnknownAgent, req.Agent)
	}
}

// runDefault 默认智能体：带工具的对话循环，显式状态机 + 轮数上限
func (s *AgentService) runDefault(ctx context.Context, req model.ChatRequest) (model.AgentResult, error) {
	conv, err := s.conversations.Append(ctx, req.ConversationID, model.RoleUser, req.Message, "")
	if err != nil {
		return model.AgentResult{}, err
	}

	messages := make([]openai.ChatCompletionMessage, 0, s.maxHistory+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: prompt.DefaultAgentSystemPrompt,
	})
	messages = append(messages, AsChatMessages(Recent(conv.Messages, s.maxHistory))...)

	var (
		state  = stateAwaitingModel
		answer string
		rounds int
	)

	for state != stateDone {
		switch state {
		case stateAwaitingModel:
			if rounds >= s.recursionLimit {
				// 超过轮数上限后收尾：不再提供工具，强制模型直接作答
				logger.Warnf("⚠️ Tool loop hit recursion limit (%d), forcing final answer", s.recursionLimit)
				answer, err = s.client.Complete(ctx, messages)
				if err != nil {
					return model.AgentResult{}, fmt.Errorf("failed to get final response: %w", err)
				}
				state = stateDone
				continue
			}

			reply, err := s.client.CompleteWithTools(ctx, messages, s.registry.Definitions())
			if err != nil {
				return model.AgentResult{}, fmt.Errorf("failed to call model: %w", err)
			}
			rounds++
			messages = append(messages, reply)

			if len(reply.ToolCalls) > 0 {
				state = stateExecutingTools
			} else {
				answer = reply.Content
				state = stateDone
			}

		case stateExecutingTools:
			last := messages[len(messages)-1]
			for _, call := range last.ToolCalls {
				logger.Infof("🔧 Executing tool: %s", call.Function.Name)
				output, err := s.registry.Execute(ctx, call.Function.Name, call.Function.Arguments)
				if err != nil {
					// 工具失败作为结果文本回传给模型，循环继续
					output = fmt.Sprintf("Tool execution failed: %v", err)
					logger.Errorf("❌ Tool %s failed: %v", call.Function.Name, err)
				}
				messages = append(messages, openai.ChatCompletionMessage{
					Role:       openai.ChatMessageRoleTool,
					Content:    output,
					ToolCallID: call.ID,
				})
			}
			state = stateAwaitingModel
		}
	}

	if _, err := s.conversations.Append(ctx, conv.ID, model.RoleAssistant, answer, ""); err != nil {
		logger.Errorf("Error saving assistant message: %v", err)
	}

	return model.AgentResult{
		Success:        true,
		Response:       answer,
		ConversationID: conv.ID,
	}, nil
}

// runUIGenerator 直接从用户描述生成并发布页面，不注入目录数据
func (s *AgentService) runUIGenerator(ctx context.Context, req model.ChatRequest) (model.AgentResult, error) {
	conv, err := s.conversations.Append(ctx, req.ConversationID, model.RoleUser, req.Message, "")
	if err != nil {
		return model.AgentResult{}, err
	}

	// 历史不含刚追加的这条消息，流水线会把它包进生成提示词
	history := Recent(conv.Messages[:len(conv.Messages)-1], s.maxHistory)

	result := s.pipeline.Run(ctx, model.PipelineRequest{
		UserMessage: req.Message,
		History:     history,
	})
	if !result.Success {
		return model.AgentResult{
			Success:        false,
			ConversationID: conv.ID,
			Error:          result.Error,
		}, nil
	}

	response := fmt.Sprintf("I created your page. View it here: %s", result.PublishURL)
	if _, err := s.conversations.Append(ctx, conv.ID, model.RoleAssistant, response, ""); err != nil {
		logger.Errorf("Error saving assistant message: %v", err)
	}

	return model.AgentResult{
		Success:        true,
		Response:       response,
		ConversationID: conv.ID,
		UIID:           result.PublishID,
		URL:            result.PublishURL,
		Preview:        result.Preview,
	}, nil
}

// ConversationAgent 家具会话智能体：解释查询 -> 查目录 -> 生成页面 -> 可选 Telegram 回推
func (s *AgentService) ConversationAgent(ctx context.Context, req model.ConversationAgentRequest) (model.AgentResult, error) {
	conv, err := s.conversations.Append(ctx, req.ConversationID, model.RoleUser, req.Message, req.ChatID)
	if err != nil {
		return model.AgentResult{}, err
	}

	query := s.interpreter.Interpret(ctx, Recent(conv.Messages, s.maxHistory))
	items := catalog.Lookup(query.Items)

	// 没有可展示的条目时退回普通对话，请求澄清
	if len(items) == 0 {
		logger.Infof("💬 No catalog matches for conversation %s, replying conversationally", conv.ID)
		return s.clarify(ctx, conv)
	}

	logger.Infof("🛋️ Found %d catalog items for conversation %s", len(items), conv.ID)

	synthesized := prompt.SynthesizedRequest(query.CaseDescription, len(items), primaryAffordance)
	result := s.pipeline.Run(ctx, model.PipelineRequest{
		UserMessage: synthesized,
		Context:     catalog.ContextData(items),
	})
	if !result.Success {
		return model.AgentResult{
			Success:         false,
			ConversationID:  conv.ID,
			Items:           items,
			CaseDescription: query.CaseDescription,
			Error:           result.Error,
		}, nil
	}

	response := fmt.Sprintf("I found %d matching items and created a page for you: %s", len(items), result.PublishURL)
	if _, err := s.conversations.Append(ctx, conv.ID, model.RoleAssistant, response, req.ChatID); err != nil {
		logger.Errorf("Error saving assistant message: %v", err)
	}

	if req.ChatID != "" && s.notifier.Enabled() {
		if err := s.notifier.SendMessage(ctx, req.ChatID, response); err != nil {
			logger.Errorf("Error sending telegram notification: %v", err)
		}
	}

	return model.AgentResult{
		Success:         true,
		Response:        response,
		ConversationID:  conv.ID,
		Items:           items,
		CaseDescription: query.CaseDescription,
		UIID:            result.PublishID,
		URL:             result.PublishURL,
		Preview:         result.Preview,
	}, nil
}

// clarify 用普通补全请求用户补充类型或颜色信息
func (s *AgentService) clarify(ctx context.Context, conv *model.Conversation) (model.AgentResult, error) {
	messages := make([]openai.ChatCompletionMessage, 0, s.maxHistory+1)
	messages = append(messages, openai.ChatCompletionMessage{
		Role: openai.ChatMessageRoleSystem,
		Content: "You are a furniture shopping assistant. The catalog covers chairs, sofas, loveseats, sleeper sofas and sectionals in blue, yellow and green. " +
			"The user's request did not match anything yet. Ask a short clarifying question to pin down the furniture type and color they want.",
	})
	messages = append(messages, AsChatMessages(Recent(conv.Messages, s.maxHistory))...)

	answer, err := s.client.Complete(ctx, messages)
	if err != nil {
		return model.AgentResult{}, fmt.Errorf("failed to get clarification response: %w", err)
	}

	if _, err := s.conversations.Append(ctx, conv.ID, model.RoleAssistant, answer, conv.TelegramID); err != nil {
		logger.Errorf("Error saving assistant message: %v", err)
	}

	return model.AgentResult{
		Success:        true,
		Response:       answer,
		ConversationID: conv.ID,
	}, nil
}
