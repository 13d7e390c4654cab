package mock

import (
	"context"
	"fmt"
	"sync"

	"github.com/poiesic/journalrank/ai"
	"github.com/poiesic/journalrank/core"
)

// MockSummarizer is a test double for ai.Summarizer.
// It allows custom behavior injection via function fields.
type MockSummarizer struct {
	// SummarizeFunc is called by Summarize if set.
	// If nil, returns a one-line summary naming the best entry.
	SummarizeFunc func(ctx context.Context, query string, results []*core.ScoredResult) (string, error)

	mu        sync.Mutex
	callCount int
}

var _ ai.Summarizer = (*MockSummarizer)(nil)

// NewMockSummarizer creates a mock summarizer with default behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockSummarizer() *MockSummarizer {
	return &MockSummarizer{}
}

// WithSummarizeFunc sets custom behavior and returns the mock for chaining.
func (m *MockSummarizer) WithSummarizeFunc(fn func(ctx context.Context, query string, results []*core.ScoredResult) (string, error)) *MockSummarizer {
	m.SummarizeFunc = fn
	return m
}

// Summarize returns a deterministic answer.
func (m *MockSummarizer) Summarize(ctx context.Context, query string, results []*core.ScoredResult) (string, error) {
	m.mu.Lock()
	m.callCount++
	fn := m.SummarizeFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, query, results)
	}
	if len(results) == 0 {
		return fmt.Sprintf("No entries about %q.", query), nil
	}
	best := results[0].Entry
	return fmt.Sprintf("Your best match for %q is from %s (%s).", query, best.Date, best.Day), nil
}

// CallCount returns the number of times Summarize was called.
func (m *MockSummarizer) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockSummarizer) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.SummarizeFunc = nil
}
