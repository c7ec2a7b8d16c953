package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	openai "github.com/sashabaranov/go-openai"
)

// fakeLLM 测试用的模型客户端替身，按调用序号返回预设结果
type fakeLLM struct {
	mu sync.Mutex

	completeFn func(call int, messages []openai.ChatCompletionMessage) (string, error)
	jsonFn     func(messages []openai.ChatCompletionMessage, schemaName string, schema json.RawMessage) (json.RawMessage, error)
	toolsFn    func(call int, messages []openai.ChatCompletionMessage) (openai.ChatCompletionMessage, error)

	completeCalls int
	jsonCalls     int
	toolCalls     int

	// 每次 CompleteWithTools 收到的完整消息列表，用于断言工具结果回传
	toolMessages [][]openai.ChatCompletionMessage
}

func (f *fakeLLM) Complete(ctx context.Context, messages []openai.ChatCompletionMessage) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.completeCalls++
	if f.completeFn == nil {
		return "", errors.New("fakeLLM: Complete not configured")
	}
	return f.completeFn(f.completeCalls, messages)
}

func (f *fakeLLM) CompleteJSON(ctx context.Context, messages []openai.ChatCompletionMessage, schemaName string, schema json.RawMessage) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.jsonCalls++
	if f.jsonFn == nil {
		return nil, errors.New("fakeLLM: CompleteJSON not configured")
	}
	return f.jsonFn(messages, schemaName, schema)
}

func (f *fakeLLM) CompleteWithTools(ctx context.Context, messages []openai.ChatCompletionMessage, tools []openai.Tool) (openai.ChatCompletionMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.toolCalls++
	f.toolMessages = append(f.toolMessages, append([]openai.ChatCompletionMessage(nil), messages...))
	if f.toolsFn == nil {
		return openai.ChatCompletionMessage{}, errors.New("fakeLLM: CompleteWithTools not configured")
	}
	return f.toolsFn(f.toolCalls, messages)
}
