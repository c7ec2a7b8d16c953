package tools

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"mcpmyapi-backend/internal/catalog"
)

// SearchFurnitureTool 按类型和颜色检索家具目录
type SearchFurnitureTool struct{}

func (t *SearchFurnitureTool) Definition() openai.Tool {
	return openai.Tool{
		Type: openai.ToolTypeFunction,
		Function: &openai.FunctionDefinition{
			Name:        "search_furniture",
			Description: "Searches the furniture catalog by type and color. Types: chair, sofa, loveseat, sleeper-sofa, sectional. Colors: blue, yellow, green.",
			Parameters: json.RawMessage(`{
				"type": "object",
				"properties": {
					"type": {
						"type": "string",
						"description": "Furniture type, empty for any"
					},
					"color": {
						"type": "string",
						"description": "Furniture color, empty for any"
					}
				}
			}`),
		},
	}
}

func (t *SearchFurnitureTool) Execute(ctx context.Context, argumentsInJSON string) (string, error) {
	var params struct {
		Type  string `json:"type"`
		Color string `json:"color"`
	}
	if err := json.Unmarshal([]byte(argumentsInJSON), &params); err != nil {
		return "", fmt.Errorf("failed to parse arguments: %w", err)
	}

	items := catalog.Filter(params.Type, params.Color)
	if len(items) == 0 {
		return "No matching furniture found.", nil
	}

	data, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("failed to marshal catalog items: %w", err)
	}
	return string(data), nil
}
