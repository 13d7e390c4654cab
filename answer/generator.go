// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package answer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/journalrank/ai"
	"github.com/poiesic/journalrank/core"
)

const (
	DefaultMaxAttempts = 3
	DefaultBaseDelay   = 500 * time.Millisecond
)

// Answer is the response to a question over journal entries.
type Answer struct {
	Text     string
	Fallback bool // True when Text came from FallbackSummary
	Results  []*core.ScoredResult
}

// Generator turns ranked results into a prose answer.
type Generator struct {
	summarizer  ai.Summarizer
	maxAttempts int
	baseDelay   time.Duration
	logger      *slog.Logger
}

type Option func(*Generator) error

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) error {
		if logger == nil {
			logger = slog.Default()
		}
		g.logger = logger.With("component", "answer-generator")
		return nil
	}
}

// WithMaxAttempts sets how many times the summarizer is tried.
func WithMaxAttempts(n int) Option {
	return func(g *Generator) error {
		if n <= 0 {
			return ErrInvalidMaxAttempts
		}
		g.maxAttempts = n
		return nil
	}
}

// WithBaseDelay sets the delay before the first retry.
func WithBaseDelay(d time.Duration) Option {
	return func(g *Generator) error {
		if d < 0 {
			return fmt.Errorf("base delay must be non-negative: %v", d)
		}
		g.baseDelay = d
		return nil
	}
}

// NewGenerator creates a Generator around summarizer.
func NewGenerator(summarizer ai.Summarizer, opts ...Option) (*Generator, error) {
	if summarizer == nil {
		return nil, ErrSummarizerRequired
	}
	g := &Generator{
		summarizer:  summarizer,
		maxAttempts: DefaultMaxAttempts,
		baseDelay:   DefaultBaseDelay,
		logger:      slog.Default().With("component", "answer-generator"),
	}
	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Answer asks the summarizer about results and falls back to FallbackSummary
// when every attempt fails. An error is only returned if ctx is done.
func (g *Generator) Answer(ctx context.Context, query string, results []*core.ScoredResult) (*Answer, error) {
	if len(results) == 0 {
		return &Answer{Text: NoEntriesAnswer, Fallback: true, Results: results}, nil
	}

	var text string
	err := RetryWithBackoff(ctx, g.logger, func(ctx context.Context) error {
		var err error
		text, err = g.summarizer.Summarize(ctx, query, results)
		return err
	}, g.maxAttempts, g.baseDelay)
	if err == nil {
		return &Answer{Text: text, Results: results}, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}

	g.logger.Warn("summarizer unavailable, using fallback", "attempts", g.maxAttempts, "error", err)
	return &Answer{Text: FallbackSummary(query, results), Fallback: true, Results: results}, nil
}
