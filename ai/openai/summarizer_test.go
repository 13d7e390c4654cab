package openai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/journalrank/ai"
	"github.com/poiesic/journalrank/core"
)

func testResults() []*core.ScoredResult {
	return []*core.ScoredResult{
		{
			Entry: &core.Entry{Date: "2024-01-03", Day: "Wednesday", Text: "Running again, longer this time"},
			Kind:  core.ScoreHybrid,
			Score: 1,
		},
		{
			Entry: &core.Entry{Date: "2024-01-01", Day: "Monday", Text: "I went running this morning"},
			Kind:  core.ScoreHybrid,
			Score: 0.9,
		},
	}
}

func TestBuildUserPrompt(t *testing.T) {
	prompt := buildUserPrompt("  when did I run? ", testResults())

	assert.Contains(t, prompt, "## Journal Entries")
	assert.Contains(t, prompt, `1. 2024-01-03 (Wednesday) — 100% — "Running again, longer this time"`)
	assert.Contains(t, prompt, `2. 2024-01-01 (Monday) — 90% — "I went running this morning"`)
	assert.Contains(t, prompt, "## Question\nwhen did I run?\n")
	assert.True(t, strings.HasSuffix(prompt, "## Answer\n"))
}

func TestBuildUserPrompt_NoResults(t *testing.T) {
	prompt := buildUserPrompt("anything", nil)
	assert.Contains(t, prompt, "(no matching entries)")
}

// chatServer serves canned OpenAI chat completion responses.
func chatServer(t *testing.T, status int, content string) (*httptest.Server, *[]string) {
	t.Helper()
	var bodies []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		bodies = append(bodies, string(body))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":{"message":"unavailable","type":"server_error"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1700000000,
			"model":   "test-model",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": "stop",
			}},
			"usage": map[string]any{"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15},
		})
	}))
	t.Cleanup(server.Close)
	return server, &bodies
}

func TestSummarizer_Summarize(t *testing.T) {
	server, bodies := chatServer(t, http.StatusOK, "  You ran on Monday and Wednesday.  ")

	summarizer, err := NewSummarizer(ai.NewConfig(ai.WithHost(server.URL), ai.WithModel("test-model")))
	require.NoError(t, err)

	answer, err := summarizer.Summarize(context.Background(), "when did I run?", testResults())
	require.NoError(t, err)
	assert.Equal(t, "You ran on Monday and Wednesday.", answer)

	require.Len(t, *bodies, 1)
	assert.Contains(t, (*bodies)[0], "test-model")
	assert.Contains(t, (*bodies)[0], "Running again, longer this time")
}

func TestSummarizer_EmptyAnswer(t *testing.T) {
	server, _ := chatServer(t, http.StatusOK, "   ")

	summarizer, err := NewSummarizer(ai.NewConfig(ai.WithHost(server.URL)))
	require.NoError(t, err)

	_, err = summarizer.Summarize(context.Background(), "q", nil)
	assert.ErrorIs(t, err, ErrEmptyAnswer)
}

func TestSummarizer_ServerError(t *testing.T) {
	server, _ := chatServer(t, http.StatusInternalServerError, "")

	summarizer, err := NewSummarizer(ai.NewConfig(ai.WithHost(server.URL)))
	require.NoError(t, err)

	_, err = summarizer.Summarize(context.Background(), "q", testResults())
	assert.Error(t, err)
}

func TestNewProvider(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		provider, err := NewProvider(ai.DefaultConfig())
		require.NoError(t, err)
		defer provider.Close()
		assert.NotNil(t, provider.Summarizer())
	})

	t.Run("nil config uses defaults", func(t *testing.T) {
		provider, err := NewProvider(nil)
		require.NoError(t, err)
		assert.NoError(t, provider.Close())
	})

	t.Run("invalid config", func(t *testing.T) {
		_, err := NewProvider(ai.NewConfig(ai.WithModel("")))
		assert.Error(t, err)
	})
}
