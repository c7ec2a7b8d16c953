package llm

import (
	"context"
	"encoding/json"

	openai "github.com/sashabaranov/go-openai"
)

// Client 模型调用的抽象接口，由调用方注入，测试时可替换为假实现
type Client interface {
	// Complete 普通文本补全，返回生成内容
	Complete(ctx context.Context, messages []openai.ChatCompletionMessage) (string, error)

	// CompleteJSON 结构化输出补全，强制模型按 JSON Schema 返回
	CompleteJSON(ctx context.Context, messages []openai.ChatCompletionMessage, schemaName string, schema json.RawMessage) (json.RawMessage, error)

	// CompleteWithTools 带工具定义的补全，返回完整消息以便读取工具调用
	CompleteWithTools(ctx context.Context, messages []openai.ChatCompletionMessage, tools []openai.Tool) (openai.ChatCompletionMessage, error)
}
