package search

import (
	"log/slog"
	"math"
	"slices"
	"time"

	"github.com/poiesic/journalrank/core"
)

const (
	// DefaultTopK is the number of results returned when the caller asks for none.
	DefaultTopK = 5
	// DefaultAlpha weights semantic and lexical scores equally.
	DefaultAlpha = 0.5
	// DefaultK1 is the BM25 term-frequency saturation parameter.
	DefaultK1 = 1.5
	// DefaultB is the BM25 length-normalization parameter.
	DefaultB = 0.75
)

// Lexical selects the lexical ranking blended into hybrid results.
type Lexical int

const (
	// LexicalKeyword uses raw keyword counts.
	LexicalKeyword Lexical = iota
	// LexicalBM25 uses Okapi BM25 scores.
	LexicalBM25
)

// Engine ranks a fixed corpus of journal entries.
// An Engine is safe for concurrent use; it never mutates its corpus.
type Engine struct {
	corpus    []*core.Entry
	positions map[*core.Entry]int
	k1        float64
	b         float64
	lexical   Lexical
	monitor   SearchMonitor
	logger    *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithEngineLogger sets the engine's logger.
// Default is slog.Default().
func WithEngineLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
	}
}

// WithEngineMonitor attaches a SearchMonitor to every ranking call.
func WithEngineMonitor(monitor SearchMonitor) EngineOption {
	return func(e *Engine) {
		if monitor == nil {
			monitor = &noopMonitor{}
		}
		e.monitor = monitor
	}
}

// WithBM25Params overrides k1 and b. Non-positive k1 or b outside [0, 1] are ignored.
func WithBM25Params(k1, b float64) EngineOption {
	return func(e *Engine) {
		if k1 > 0 {
			e.k1 = k1
		}
		if b >= 0 && b <= 1 {
			e.b = b
		}
	}
}

// WithLexical selects the lexical ranking used by HybridSearch.
func WithLexical(lexical Lexical) EngineOption {
	return func(e *Engine) {
		e.lexical = lexical
	}
}

// NewEngine creates an engine over corpus. Nil entries are skipped.
// The slice is copied; the entries themselves are shared and must not be
// modified while the engine is in use.
func NewEngine(corpus []*core.Entry, opts ...EngineOption) *Engine {
	e := &Engine{
		corpus:  make([]*core.Entry, 0, len(corpus)),
		k1:      DefaultK1,
		b:       DefaultB,
		lexical: LexicalKeyword,
		monitor: &noopMonitor{},
		logger:  slog.Default(),
	}
	for _, entry := range corpus {
		if entry != nil {
			e.corpus = append(e.corpus, entry)
		}
	}
	e.positions = make(map[*core.Entry]int, len(e.corpus))
	for i, entry := range e.corpus {
		e.positions[entry] = i
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With("component", "engine")
	return e
}

// Len returns the number of entries in the corpus.
func (e *Engine) Len() int {
	return len(e.corpus)
}

// SemanticSearch ranks the corpus by TF-IDF cosine similarity to query.
func (e *Engine) SemanticSearch(query string, topK int) []*core.ScoredResult {
	start := time.Now()
	e.monitor.Start(query, ModeSemantic)
	results := e.semantic(query, normalizeTopK(topK))
	e.monitor.AfterSemanticSearch(results)
	e.finish(ModeSemantic, results, start)
	return results
}

// KeywordSearch ranks the corpus by query-term occurrence counts.
func (e *Engine) KeywordSearch(query string, topK int) []*core.ScoredResult {
	start := time.Now()
	e.monitor.Start(query, ModeKeyword)
	results := e.keyword(query, normalizeTopK(topK))
	e.monitor.AfterLexicalSearch(results)
	e.finish(ModeKeyword, results, start)
	return results
}

// BM25Search ranks the corpus by Okapi BM25.
func (e *Engine) BM25Search(query string, topK int) []*core.ScoredResult {
	start := time.Now()
	e.monitor.Start(query, ModeBM25)
	results := e.bm25(query, normalizeTopK(topK))
	e.monitor.AfterLexicalSearch(results)
	e.finish(ModeBM25, results, start)
	return results
}

// HybridSearch blends semantic and lexical rankings.
// alpha weights the semantic side and is clamped to [0, 1].
func (e *Engine) HybridSearch(query string, topK int, alpha float64) []*core.ScoredResult {
	start := time.Now()
	e.monitor.Start(query, ModeHybrid)
	results := e.hybrid(query, normalizeTopK(topK), normalizeAlpha(alpha))
	e.finish(ModeHybrid, results, start)
	return results
}

// CombinedSearch runs the semantic and keyword rankings and merges them with Combine.
func (e *Engine) CombinedSearch(query string, topK int) []*core.ScoredResult {
	start := time.Now()
	e.monitor.Start(query, ModeCombined)
	topK = normalizeTopK(topK)
	semantic, keyword := e.parallel(query, topK, e.keyword)
	e.monitor.AfterSemanticSearch(semantic)
	e.monitor.AfterLexicalSearch(keyword)
	results := Combine(semantic, keyword)
	e.monitor.AfterMerge(len(results))
	e.finish(ModeCombined, results, start)
	return results
}

func (e *Engine) finish(mode Mode, results []*core.ScoredResult, start time.Time) {
	elapsed := time.Since(start)
	e.logger.Debug("search finished", "mode", mode, "corpus", len(e.corpus), "results", len(results), "elapsed", elapsed)
	e.monitor.Finish(mode, results, elapsed)
}

// rankResults sorts by score descending. Ties keep their input order.
func rankResults(results []*core.ScoredResult) {
	slices.SortStableFunc(results, func(a, b *core.ScoredResult) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})
}

// truncate keeps the first topK results. A negative topK keeps everything.
func truncate(results []*core.ScoredResult, topK int) []*core.ScoredResult {
	if topK < 0 || len(results) <= topK {
		return results
	}
	return results[:topK]
}

func normalizeTopK(topK int) int {
	if topK <= 0 {
		return DefaultTopK
	}
	return topK
}

func normalizeAlpha(alpha float64) float64 {
	switch {
	case math.IsNaN(alpha):
		return DefaultAlpha
	case alpha < 0:
		return 0
	case alpha > 1:
		return 1
	default:
		return alpha
	}
}

// corpusTokens tokenizes every entry in corpus order.
func (e *Engine) corpusTokens() [][]string {
	docs := make([][]string, len(e.corpus))
	for i, entry := range e.corpus {
		docs[i] = Tokenize(entry.Text)
	}
	return docs
}
