// Package mock provides test double implementations of AI service interfaces.
//
// The mocks let tests run without an external model and give deterministic,
// controllable behavior.
//
// # Usage in Tests
//
//	mockProvider := mock.NewMockProvider()
//	answer, err := mockProvider.Summarizer().Summarize(ctx, "query", results)
//
//	// Custom behavior injection
//	failing := mock.NewMockSummarizer().
//	    WithSummarizeFunc(func(ctx context.Context, query string, results []*core.ScoredResult) (string, error) {
//	        return "", errors.New("model unavailable")
//	    })
//
//	// Check call counts
//	count := failing.CallCount()
package mock
