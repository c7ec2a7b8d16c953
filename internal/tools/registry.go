package tools

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"mcpmyapi-backend/internal/publisher"
)

// Tool 默认智能体可调用的单个工具
type Tool interface {
	Definition() openai.Tool
	Execute(ctx context.Context, argumentsInJSON string) (string, error)
}

// Registry 工具注册表，按名称分发调用
type Registry struct {
	tools map[string]Tool
}

func NewRegistry(pub *publisher.Client) *Registry {
	r := &Registry{tools: make(map[string]Tool)}
	r.register(&StoreUIComponentTool{publisher: pub})
	r.register(&SearchFurnitureTool{})
	r.register(&ListEventsTool{})
	return r
}

func (r *Registry) register(t Tool) {
	r.tools[t.Definition().Function.Name] = t
}

// Definitions 返回全部工具定义，用于绑定到模型请求
func (r *Registry) Definitions() []openai.Tool {
	defs := make([]openai.Tool, 0, len(r.tools))
	for _, t := range r.tools {
		defs = append(defs, t.Definition())
	}
	return defs
}

// Execute 执行指定工具，未知工具名返回错误文本而不是中断流程
func (r *Registry) Execute(ctx context.Context, name, argumentsInJSON string) (string, error) {
	t, ok := r.tools[name]
	if !ok {
		return "", fmt.Errorf("unknown tool: %s", name)
	}
	return t.Execute(ctx, argumentsInJSON)
}
