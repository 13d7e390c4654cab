package journalrank

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/journalrank/ai"
	"github.com/poiesic/journalrank/ai/mock"
	"github.com/poiesic/journalrank/core"
	"github.com/poiesic/journalrank/ingestion"
	"github.com/poiesic/journalrank/search"
)

func TestOpen(t *testing.T) {
	t.Run("create new journal", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "test_db")
		j, err := Open(dir)
		require.NoError(t, err)
		require.NotNil(t, j)
		defer j.Close()

		assert.NotNil(t, j.EntryRepository())
		assert.NotNil(t, j.backend)
		assert.NotNil(t, j.logger)
	})

	t.Run("error with invalid path", func(t *testing.T) {
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		require.NoError(t, os.WriteFile(tmpFile, []byte("test"), 0644))

		j, err := Open(tmpFile)
		assert.Error(t, err)
		assert.Nil(t, j)
	})

	t.Run("error with invalid ai config", func(t *testing.T) {
		j, err := Open("", WithInMemory(), WithAIConfig(ai.NewConfig(ai.WithModel(""))))
		assert.Error(t, err)
		assert.Nil(t, j)
	})
}

func TestJournal_Close(t *testing.T) {
	provider := mock.NewMockProvider()
	j, err := Open("", WithInMemory(), WithAIProvider(provider))
	require.NoError(t, err)

	require.NoError(t, j.Close())
	assert.True(t, provider.(*mock.MockProvider).Closed())
	assert.True(t, j.backend.IsClosed())
}

func TestJournal_EndToEnd(t *testing.T) {
	provider := mock.NewMockProvider()
	j, err := Open("", WithInMemory(), WithAIProvider(provider))
	require.NoError(t, err)
	defer j.Close()
	ctx := context.Background()

	pipeline, err := j.NewIngestionPipeline(ingestion.WithPoolSize(2))
	require.NoError(t, err)
	defer pipeline.Release()

	report, err := pipeline.Ingest(ctx, "alice", []ingestion.Draft{
		{Date: "2024-01-01", Text: "I went running in the park"},
		{Date: "2024-01-02", Text: "Cooked pasta for dinner"},
		{Date: "2024-01-03", Text: "Morning running with the dog"},
	})
	require.NoError(t, err)
	require.NoError(t, report.Err())
	assert.Equal(t, 3, report.Stored)

	searcher, err := j.NewSearcher()
	require.NoError(t, err)
	results, err := searcher.Search(ctx, "alice", "running", search.Request{Mode: search.ModeKeyword})
	require.NoError(t, err)
	require.Len(t, results, 2)

	generator, err := j.NewGenerator()
	require.NoError(t, err)
	ans, err := generator.Answer(ctx, "running", results)
	require.NoError(t, err)
	assert.False(t, ans.Fallback)
	assert.Equal(t, 1, provider.(*mock.MockProvider).GetMockSummarizer().CallCount())
}

func TestJournal_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	j, err := Open("", WithInMemory(), WithAIProvider(mock.NewMockProvider()), WithMetrics(reg))
	require.NoError(t, err)
	defer j.Close()
	ctx := context.Background()

	_, err = j.EntryRepository().AddEntries(ctx, &core.Entry{
		UserID: "alice", Date: "2024-01-01", Day: "Monday", Text: "I went running in the park",
	})
	require.NoError(t, err)

	searcher, err := j.NewSearcher()
	require.NoError(t, err)
	_, err = searcher.Search(ctx, "alice", "running", search.Request{Mode: search.ModeKeyword})
	require.NoError(t, err)
	_, err = searcher.Search(ctx, "alice", "running", search.Request{})
	require.NoError(t, err)

	assert.Equal(t, 2, must(testutil.GatherAndCount(reg, "journalrank_search_requests_total")))

	// Registering the same metrics twice fails.
	_, err = Open("", WithInMemory(), WithAIProvider(mock.NewMockProvider()), WithMetrics(reg))
	assert.Error(t, err)
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
