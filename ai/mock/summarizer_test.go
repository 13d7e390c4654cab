package mock

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/journalrank/core"
)

func TestMockSummarizer_Default(t *testing.T) {
	m := NewMockSummarizer()
	ctx := context.Background()

	answer, err := m.Summarize(ctx, "running", nil)
	require.NoError(t, err)
	assert.Equal(t, `No entries about "running".`, answer)

	results := []*core.ScoredResult{{Entry: &core.Entry{Date: "2024-01-01", Day: "Monday", Text: "ran"}}}
	answer, err = m.Summarize(ctx, "running", results)
	require.NoError(t, err)
	assert.Contains(t, answer, "2024-01-01 (Monday)")
	assert.Equal(t, 2, m.CallCount())
}

func TestMockSummarizer_CustomFunc(t *testing.T) {
	boom := errors.New("boom")
	m := NewMockSummarizer().WithSummarizeFunc(func(context.Context, string, []*core.ScoredResult) (string, error) {
		return "", boom
	})

	_, err := m.Summarize(context.Background(), "q", nil)
	assert.ErrorIs(t, err, boom)

	m.Reset()
	assert.Equal(t, 0, m.CallCount())
	_, err = m.Summarize(context.Background(), "q", nil)
	assert.NoError(t, err)
}

func TestMockProvider(t *testing.T) {
	provider := NewMockProvider()
	mp := provider.(*MockProvider)

	assert.Same(t, mp.GetMockSummarizer(), provider.Summarizer())
	require.NoError(t, provider.Close())
	assert.True(t, mp.Closed())
}
