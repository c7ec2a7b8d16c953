package service

import (
	"context"
	"encoding/json"

	openai "github.com/sashabaranov/go-openai"

	"mcpmyapi-backend/internal/llm"
	"mcpmyapi-backend/internal/model"
	"mcpmyapi-backend/internal/prompt"
	"mcpmyapi-backend/pkg/logger"
)

// QueryInterpreter 单次调用的查询解释器：自由文本 + 会话历史 -> 结构化检索参数。
// 只调用一次模型、只解析一次，任何失败都降级为空结果
type QueryInterpreter struct {
	client llm.Client
}

func NewQueryInterpreter(client llm.Client) *QueryInterpreter {
	return &QueryInterpreter{client: client}
}

// Interpret 空 Items 表示"没有匹配"，调用方不应视为错误
func (q *QueryInterpreter) Interpret(ctx context.Context, history []model.Message) model.InterpretedQuery {
	empty := model.InterpretedQuery{Items: []string{}, CaseDescription: ""}

	messages := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: prompt.InterpreterSystemPrompt,
	})
	messages = append(messages, AsChatMessages(history)...)

	raw, err := q.client.CompleteJSON(ctx, messages, "suggestions_list", json.RawMessage(prompt.InterpreterSchema))
	if err != nil {
		logger.Errorf("Query interpreter call failed: %v", err)
		return empty
	}

	var parsed struct {
		Suggestions     []string `json:"suggestions"`
		CaseDescription string   `json:"case_description"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		logger.Errorf("Error parsing interpreter JSON response: %v", err)
		return empty
	}

	if parsed.Suggestions == nil {
		parsed.Suggestions = []string{}
	}

	logger.Infof("🔍 Interpreted query: %d suggestions, case=%q", len(parsed.Suggestions), parsed.CaseDescription)
	return model.InterpretedQuery{
		Items:           parsed.Suggestions,
		CaseDescription: parsed.CaseDescription,
	}
}
