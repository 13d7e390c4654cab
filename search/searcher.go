package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/journalrank/core"
	"github.com/poiesic/journalrank/storage"
)

// Request describes one search.
// Zero values select the defaults: hybrid mode, DefaultTopK and DefaultAlpha.
type Request struct {
	Mode  Mode
	TopK  int
	Alpha *float64
}

// Searcher ranks a user's stored entries.
type Searcher struct {
	entryRepository storage.EntryRepository
	monitor         SearchMonitor
	lexical         Lexical
	k1, b           float64
	logger          *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithMonitor attaches a SearchMonitor to every search.
func WithMonitor(monitor SearchMonitor) Option {
	return func(s *Searcher) error {
		if monitor == nil {
			monitor = &noopMonitor{}
		}
		s.monitor = monitor
		return nil
	}
}

// WithHybridLexical selects the lexical ranking blended into hybrid results.
func WithHybridLexical(lexical Lexical) Option {
	return func(s *Searcher) error {
		if lexical != LexicalKeyword && lexical != LexicalBM25 {
			return fmt.Errorf("unknown lexical ranking %d", lexical)
		}
		s.lexical = lexical
		return nil
	}
}

// WithBM25 overrides the BM25 parameters k1 and b.
func WithBM25(k1, b float64) Option {
	return func(s *Searcher) error {
		if k1 <= 0 || b < 0 || b > 1 {
			return fmt.Errorf("invalid bm25 parameters k1=%v b=%v", k1, b)
		}
		s.k1, s.b = k1, b
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(entryRepository storage.EntryRepository, opts ...Option) (*Searcher, error) {
	if entryRepository == nil {
		return nil, ErrEntryRepositoryRequired
	}

	s := &Searcher{
		entryRepository: entryRepository,
		monitor:         &noopMonitor{},
		lexical:         LexicalKeyword,
		k1:              DefaultK1,
		b:               DefaultB,
		logger:          slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	s.logger = s.logger.With("component", "searcher")

	return s, nil
}

// Search loads userID's entries and ranks them against query.
func (s *Searcher) Search(ctx context.Context, userID string, query string, req Request) ([]*core.ScoredResult, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrUserRequired
	}
	mode, err := ParseMode(string(req.Mode))
	if err != nil {
		return nil, err
	}

	corpus, err := s.entryRepository.GetEntriesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries for %s: %w", userID, err)
	}
	s.logger.Debug("loaded corpus", "user", userID, "entries", len(corpus), "mode", mode)

	engine := s.Engine(corpus)
	switch mode {
	case ModeSemantic:
		return engine.SemanticSearch(query, req.TopK), nil
	case ModeKeyword:
		return engine.KeywordSearch(query, req.TopK), nil
	case ModeBM25:
		return engine.BM25Search(query, req.TopK), nil
	case ModeCombined:
		return engine.CombinedSearch(query, req.TopK), nil
	default:
		alpha := DefaultAlpha
		if req.Alpha != nil {
			alpha = *req.Alpha
		}
		return engine.HybridSearch(query, req.TopK, alpha), nil
	}
}

// Engine builds an engine over corpus carrying the searcher's settings.
func (s *Searcher) Engine(corpus []*core.Entry) *Engine {
	return NewEngine(corpus,
		WithEngineLogger(s.logger),
		WithEngineMonitor(s.monitor),
		WithLexical(s.lexical),
		WithBM25Params(s.k1, s.b),
	)
}
