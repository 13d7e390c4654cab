package ai

import (
	"context"

	"github.com/poiesic/journalrank/core"
)

// Summarizer writes a natural-language answer to a query from ranked journal entries.
// Implementations must be thread-safe for concurrent use.
type Summarizer interface {
	// Summarize answers query using results as context.
	// results are ordered best first and may be empty.
	// Returns an error if the answer could not be generated.
	Summarize(ctx context.Context, query string, results []*core.ScoredResult) (string, error)
}

// AIProvider aggregates AI services for convenient initialization and lifecycle management.
type AIProvider interface {
	// Summarizer returns the answer-generation service.
	// The returned Summarizer is safe for concurrent use.
	Summarizer() Summarizer

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
