package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"mcpmyapi-backend/internal/llm"
	"mcpmyapi-backend/internal/model"
	"mcpmyapi-backend/internal/prompt"
	"mcpmyapi-backend/internal/publisher"
	"mcpmyapi-backend/pkg/logger"
)

const previewLength = 200

// HandlerCheck 注入后的回归检查：判断哪些交互处理函数定义丢失了。
// 当前实现是字符串启发式，不是 DOM 级校验，接口化便于日后替换
type HandlerCheck interface {
	Missing(original, modified string) []string
}

var (
	onclickPattern  = regexp.MustCompile(`onclick\s*=\s*"([A-Za-z_][A-Za-z0-9_]*)\s*\(`)
	functionPattern = "function %s"
)

// SubstringHandlerCheck 扫描 onclick 引用的函数名，检查 "function 名字" 是否仍然存在。
// 只能发现函数定义整体丢失，发现不了语义性破坏
type SubstringHandlerCheck struct{}

func (SubstringHandlerCheck) Missing(original, modified string) []string {
	seen := make(map[string]bool)
	var missing []string

	for _, match := range onclickPattern.FindAllStringSubmatch(original, -1) {
		name := match[1]
		if seen[name] {
			continue
		}
		seen[name] = true

		def := fmt.Sprintf(functionPattern, name)
		// 只检查第一步输出里确实定义过的函数
		if !strings.Contains(original, def) {
			continue
		}
		if !strings.Contains(modified, def) {
			missing = append(missing, name)
		}
	}

	return missing
}

// Pipeline 生成 -> 注入 -> 校验修复 -> 发布 的三段式流水线。
// 第一步和发布失败是硬失败，注入和修复失败降级到上一步的输出
type Pipeline struct {
	client    llm.Client
	publisher *publisher.Client
	check     HandlerCheck
}

func NewPipeline(client llm.Client, pub *publisher.Client) *Pipeline {
	return &Pipeline{
		client:    client,
		publisher: pub,
		check:     SubstringHandlerCheck{},
	}
}

// Run 执行完整流水线，返回统一结果，不向调用方抛错
func (p *Pipeline) Run(ctx context.Context, req model.PipelineRequest) model.PipelineResult {
	html, err := p.generate(ctx, req)
	if err != nil {
		logger.Errorf("❌ UI generation failed: %v", err)
		return model.PipelineResult{Success: false, Error: fmt.Sprintf("failed to generate UI code: %v", err)}
	}

	if !req.Context.Empty() {
		html = p.injectAndRepair(ctx, html, req.Context)
	}

	published, err := p.publisher.Publish(ctx, html)
	if err != nil {
		logger.Errorf("❌ Publish failed: %v", err)
		return model.PipelineResult{Success: false, HTML: html, Preview: preview(html), Error: fmt.Sprintf("failed to post to endpoint: %v", err)}
	}

	return model.PipelineResult{
		Success:    true,
		HTML:       html,
		Preview:    preview(html),
		PublishID:  published.ID,
		PublishURL: published.URL,
	}
}

// generate 第一步：结构生成，失败中止整个流水线
func (p *Pipeline) generate(ctx context.Context, req model.PipelineRequest) (string, error) {
	messages := AsChatMessages(req.History)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt.UIGeneration(req.UserMessage),
	})

	logger.Infof("🎨 Generating UI structure (%d context messages)", len(messages)-1)

	content, err := p.client.Complete(ctx, messages)
	if err != nil {
		return "", err
	}

	html := strings.TrimSpace(content)
	if html == "" {
		return "", fmt.Errorf("model returned empty document")
	}
	return html, nil
}

// injectAndRepair 第二、三步：尽力而为的数据注入，必要时做一次修复
func (p *Pipeline) injectAndRepair(ctx context.Context, html string, data *model.ContextData) string {
	injected, err := p.client.Complete(ctx, []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleUser, Content: prompt.DataInjection(html, data)},
	})
	if err != nil {
		// 注入失败降级到占位内容，不影响整体成功
		logger.Warnf("⚠️ Data injection failed, falling back to placeholder content: %v", err)
		return html
	}

	injected = strings.TrimSpace(injected)
	if injected == "" {
		logger.Warnf("⚠️ Data injection returned empty document, keeping original")
		return html
	}

	missing := p.check.Missing(html, injected)
	if len(missing) == 0 {
		return injected
	}

	logger.Warnf("🔧 Handlers lost during injection (%s), running repair pass", strings.Join(missing, ", "))

	repaired, err := p.client.Complete(ctx, []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleUser, Content: prompt.ValidationRepair(injected, data)},
	})
	if err != nil {
		logger.Warnf("⚠️ Repair pass failed, keeping injected document: %v", err)
		return injected
	}

	repaired = strings.TrimSpace(repaired)
	if repaired == "" {
		return injected
	}
	return repaired
}

// preview 日志和响应用的截断预览
func preview(html string) string {
	if len(html) > previewLength {
		return html[:previewLength] + "..."
	}
	return html
}
