package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcpmyapi-backend/internal/model"
	"mcpmyapi-backend/internal/publisher"
)

const testDocument = `<!DOCTYPE html>
<html>
<body>
<button onclick="addToCart(1)">Add</button>
<script>
function addToCart(id) { saveState({cart: id}); }
</script>
</body>
</html>`

// newTestPublisher 返回指向本地假端点的发布客户端
func newTestPublisher(t *testing.T, status int, body string) (*publisher.Client, *int) {
	t.Helper()

	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return publisher.NewClient(srv.URL, 5*time.Second), &hits
}

func TestPipelineNoContextSingleCall(t *testing.T) {
	t.Parallel()

	client := &fakeLLM{
		completeFn: func(call int, _ []openai.ChatCompletionMessage) (string, error) {
			return testDocument, nil
		},
	}
	pub, hits := newTestPublisher(t, http.StatusCreated, `{"id":"ui-1","url":"https://example.com/ui/ui-1"}`)

	p := NewPipeline(client, pub)
	result := p.Run(context.Background(), model.PipelineRequest{UserMessage: "build a counter app"})

	require.True(t, result.Success)
	assert.Equal(t, 1, client.completeCalls, "no context data means generation only")
	assert.Equal(t, 1, *hits)
	assert.Equal(t, "ui-1", result.PublishID)
	assert.Equal(t, "https://example.com/ui/ui-1", result.PublishURL)
	assert.Equal(t, testDocument, result.HTML)
}

func TestPipelinePreviewTruncation(t *testing.T) {
	t.Parallel()

	long := "<html>" + strings.Repeat("x", 400) + "</html>"
	client := &fakeLLM{
		completeFn: func(call int, _ []openai.ChatCompletionMessage) (string, error) {
			return long, nil
		},
	}
	pub, _ := newTestPublisher(t, http.StatusCreated, `{"id":"ui-2","url":"u"}`)

	result := NewPipeline(client, pub).Run(context.Background(), model.PipelineRequest{UserMessage: "m"})

	require.True(t, result.Success)
	assert.Len(t, result.Preview, 203)
	assert.True(t, strings.HasSuffix(result.Preview, "..."))
	assert.Equal(t, long[:200], result.Preview[:200])
}

func TestPipelineGenerationFailureIsFatal(t *testing.T) {
	t.Parallel()

	client := &fakeLLM{
		completeFn: func(call int, _ []openai.ChatCompletionMessage) (string, error) {
			return "", errors.New("model unavailable")
		},
	}
	pub, hits := newTestPublisher(t, http.StatusCreated, `{}`)

	result := NewPipeline(client, pub).Run(context.Background(), model.PipelineRequest{UserMessage: "m"})

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "failed to generate UI code")
	assert.Equal(t, 0, *hits, "nothing published on generation failure")
}

func TestPipelineInjectionFailureFallsBack(t *testing.T) {
	t.Parallel()

	client := &fakeLLM{
		completeFn: func(call int, _ []openai.ChatCompletionMessage) (string, error) {
			if call == 1 {
				return testDocument, nil
			}
			return "", errors.New("injection exploded")
		},
	}
	pub, _ := newTestPublisher(t, http.StatusCreated, `{"id":"ui-3","url":"u"}`)

	data := &model.ContextData{ImageURLs: []string{"img"}, Descriptions: []string{"d"}, Locations: []string{"l"}}
	result := NewPipeline(client, pub).Run(context.Background(), model.PipelineRequest{UserMessage: "m", Context: data})

	require.True(t, result.Success, "injection failure degrades, does not abort")
	assert.Equal(t, 2, client.completeCalls)
	assert.Equal(t, testDocument, result.HTML, "falls back to the generated document")
}

func TestPipelineRepairRunsWhenHandlerLost(t *testing.T) {
	t.Parallel()

	injected := strings.ReplaceAll(testDocument, "function addToCart(id) { saveState({cart: id}); }", "")
	repaired := strings.ReplaceAll(testDocument, "Add", "Add item")

	client := &fakeLLM{
		completeFn: func(call int, _ []openai.ChatCompletionMessage) (string, error) {
			switch call {
			case 1:
				return testDocument, nil
			case 2:
				return injected, nil
			default:
				return repaired, nil
			}
		},
	}
	pub, _ := newTestPublisher(t, http.StatusCreated, `{"id":"ui-4","url":"u"}`)

	data := &model.ContextData{ImageURLs: []string{"img"}, Descriptions: []string{"d"}, Locations: []string{"l"}}
	result := NewPipeline(client, pub).Run(context.Background(), model.PipelineRequest{UserMessage: "m", Context: data})

	require.True(t, result.Success)
	assert.Equal(t, 3, client.completeCalls, "repair pass runs exactly once")
	assert.Equal(t, repaired, result.HTML)
}

func TestPipelineRepairSkippedWhenHandlersSurvive(t *testing.T) {
	t.Parallel()

	injected := strings.ReplaceAll(testDocument, "Add", "Add to cart")
	client := &fakeLLM{
		completeFn: func(call int, _ []openai.ChatCompletionMessage) (string, error) {
			if call == 1 {
				return testDocument, nil
			}
			return injected, nil
		},
	}
	pub, _ := newTestPublisher(t, http.StatusCreated, `{"id":"ui-5","url":"u"}`)

	data := &model.ContextData{ImageURLs: []string{"img"}}
	result := NewPipeline(client, pub).Run(context.Background(), model.PipelineRequest{UserMessage: "m", Context: data})

	require.True(t, result.Success)
	assert.Equal(t, 2, client.completeCalls, "no repair when handler definitions survive")
	assert.Equal(t, injected, result.HTML)
}

func TestPipelinePublishFailure(t *testing.T) {
	t.Parallel()

	client := &fakeLLM{
		completeFn: func(call int, _ []openai.ChatCompletionMessage) (string, error) {
			return testDocument, nil
		},
	}
	pub, _ := newTestPublisher(t, http.StatusInternalServerError, `boom`)

	result := NewPipeline(client, pub).Run(context.Background(), model.PipelineRequest{UserMessage: "m"})

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "failed to post to endpoint")
	assert.Equal(t, testDocument, result.HTML, "generated document still reported for debugging")
}

func TestSubstringHandlerCheck(t *testing.T) {
	t.Parallel()

	check := SubstringHandlerCheck{}

	t.Run("reports lost handler", func(t *testing.T) {
		t.Parallel()
		modified := strings.ReplaceAll(testDocument, "function addToCart", "function renamed")
		assert.Equal(t, []string{"addToCart"}, check.Missing(testDocument, modified))
	})

	t.Run("no report when handler survives", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, check.Missing(testDocument, testDocument))
	})

	t.Run("ignores handlers never defined", func(t *testing.T) {
		t.Parallel()
		original := `<button onclick="ghost()">x</button>`
		assert.Empty(t, check.Missing(original, "<html></html>"))
	})

	t.Run("deduplicates repeated references", func(t *testing.T) {
		t.Parallel()
		original := `<a onclick="go(1)"></a><a onclick="go(2)"></a><script>function go(n){}</script>`
		assert.Equal(t, []string{"go"}, check.Missing(original, "<html></html>"))
	})
}
