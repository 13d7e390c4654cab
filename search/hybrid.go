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


package search

import (
	"math"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/poiesic/journalrank/core"
)

type rankFunc func(query string, topK int) []*core.ScoredResult

// parallel runs the semantic ranking and lexical concurrently and waits for both.
func (e *Engine) parallel(query string, topK int, lexical rankFunc) (semantic, lex []*core.ScoredResult) {
	var g errgroup.Group
	g.Go(func() error {
		semantic = e.semantic(query, topK)
		return nil
	})
	g.Go(func() error {
		lex = lexical(query, topK)
		return nil
	})
	_ = g.Wait() // rankers never fail
	return semantic, lex
}

func (e *Engine) lexicalRanker() rankFunc {
	if e.lexical == LexicalBM25 {
		return e.bm25
	}
	return e.keyword
}

// candidateCount is the number of results fetched from each ranking before
// merging: twice topK, saturating at math.MaxInt.
func candidateCount(topK int) int {
	if topK > math.MaxInt/2 {
		return math.MaxInt
	}
	return topK * 2
}

// hybrid merges the two rankings by HybridKey. Only the first occurrence of a
// key in each list contributes; later duplicates are ignored.
func (e *Engine) hybrid(query string, topK int, alpha float64) []*core.ScoredResult {
	semantic, lexical := e.parallel(query, candidateCount(topK), e.lexicalRanker())
	e.monitor.AfterSemanticSearch(semantic)
	e.monitor.AfterLexicalSearch(lexical)

	maxSemantic := maxScore(semantic)
	maxLexical := maxScore(lexical)

	merged := make(map[core.EntryKey]*core.ScoredResult, len(semantic)+len(lexical))
	results := make([]*core.ScoredResult, 0, len(semantic)+len(lexical))

	for _, r := range semantic {
		key := core.HybridKey(r.Entry)
		if _, ok := merged[key]; ok {
			continue
		}
		hr := &core.ScoredResult{
			Entry:      r.Entry,
			Kind:       core.ScoreHybrid,
			Score:      alpha * normalize(r.Score, maxSemantic),
			Components: &core.HybridComponents{Similarity: r.Score},
		}
		merged[key] = hr
		results = append(results, hr)
	}

	seen := make(map[core.EntryKey]bool, len(lexical))
	for _, r := range lexical {
		key := core.HybridKey(r.Entry)
		if seen[key] {
			continue
		}
		seen[key] = true

		lexicalPart := (1 - alpha) * normalize(r.Score, maxLexical)
		if hr, ok := merged[key]; ok {
			hr.Score = alpha*normalize(hr.Components.Similarity, maxSemantic) + lexicalPart
			hr.Components.Keyword = r.Score
			continue
		}
		hr := &core.ScoredResult{
			Entry:      r.Entry,
			Kind:       core.ScoreHybrid,
			Score:      lexicalPart,
			Components: &core.HybridComponents{Keyword: r.Score},
		}
		merged[key] = hr
		results = append(results, hr)
	}
	e.monitor.AfterMerge(len(results))

	slices.SortStableFunc(results, func(a, b *core.ScoredResult) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		}
		return e.positions[a.Entry] - e.positions[b.Entry]
	})
	return truncate(results, topK)
}

// normalize divides score by max, or returns 0 when max is not positive.
func normalize(score, max float64) float64 {
	if max <= 0 {
		return 0
	}
	return score / max
}

func maxScore(results []*core.ScoredResult) float64 {
	m := 0.0
	for _, r := range results {
		if r.Score > m {
			m = r.Score
		}
	}
	return m
}
