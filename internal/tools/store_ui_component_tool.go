package tools

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"mcpmyapi-backend/internal/publisher"
)

// StoreUIComponentTool 把生成好的 HTML 存入 UI 端点并返回展示链接
type StoreUIComponentTool struct {
	publisher *publisher.Client
}

func (t *StoreUIComponentTool) Definition() openai.Tool {
	return openai.Tool{
		Type: openai.ToolTypeFunction,
		Function: &openai.FunctionDefinition{
			Name:        "store_ui_component",
			Description: "Stores a UI component in the database and returns the display URL. Use this after generating complete HTML content with inline CSS and JavaScript.",
			Parameters: json.RawMessage(`{
				"type": "object",
				"properties": {
					"content": {
						"type": "string",
						"description": "Complete HTML content with inline CSS and JavaScript"
					}
				},
				"required": ["content"]
			}`),
		},
	}
}

func (t *StoreUIComponentTool) Execute(ctx context.Context, argumentsInJSON string) (string, error) {
	var params struct {
		Content string `json:"content"`
	}
	if err := json.Unmarshal([]byte(argumentsInJSON), &params); err != nil {
		return "", fmt.Errorf("failed to parse arguments: %w", err)
	}
	if params.Content == "" {
		return "", fmt.Errorf("content is required")
	}

	result, err := t.publisher.Publish(ctx, params.Content)
	if err != nil {
		// 工具失败以文本形式反馈给模型，让它决定下一步
		return fmt.Sprintf("Failed to store UI component: %v", err), nil
	}

	return fmt.Sprintf("UI component stored successfully!\n\nView your component here: %s\nComponent ID: %s", result.URL, result.ID), nil
}
