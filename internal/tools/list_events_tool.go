package tools

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"mcpmyapi-backend/internal/catalog"
)

// ListEventsTool 列出活动样例数据
type ListEventsTool struct{}

func (t *ListEventsTool) Definition() openai.Tool {
	return openai.Tool{
		Type: openai.ToolTypeFunction,
		Function: &openai.FunctionDefinition{
			Name:        "list_events",
			Description: "Lists upcoming showroom events, optionally filtered by category (market, workshop, talk, open-house).",
			Parameters: json.RawMessage(`{
				"type": "object",
				"properties": {
					"category": {
						"type": "string",
						"description": "Event category, empty for all"
					}
				}
			}`),
		},
	}
}

func (t *ListEventsTool) Execute(ctx context.Context, argumentsInJSON string) (string, error) {
	var params struct {
		Category string `json:"category"`
	}
	if err := json.Unmarshal([]byte(argumentsInJSON), &params); err != nil {
		return "", fmt.Errorf("failed to parse arguments: %w", err)
	}

	events := catalog.Events(params.Category)
	if len(events) == 0 {
		return "No events found.", nil
	}

	data, err := json.Marshal(events)
	if err != nil {
		return "", fmt.Errorf("failed to marshal events: %w", err)
	}
	return string(data), nil
}
