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

	"github.com/poiesic/journalrank/core"
)

// bm25Index holds the corpus statistics BM25 needs.
type bm25Index struct {
	tfs   []map[string]int
	lens  []int
	df    map[string]int
	avgdl float64
	n     int
}

func newBM25Index(docs [][]string) *bm25Index {
	idx := &bm25Index{
		tfs:  make([]map[string]int, len(docs)),
		lens: make([]int, len(docs)),
		df:   make(map[string]int),
		n:    len(docs),
	}
	total := 0
	for i, tokens := range docs {
		idx.tfs[i] = termCounts(tokens)
		idx.lens[i] = len(tokens)
		total += len(tokens)
		for term := range idx.tfs[i] {
			idx.df[term]++
		}
	}
	if idx.n > 0 {
		idx.avgdl = float64(total) / float64(idx.n)
	}
	return idx
}

// idf is ln((N - df + 0.5) / (df + 0.5)). It is negative for terms in more
// than half the documents.
func (idx *bm25Index) idf(term string) float64 {
	df := float64(idx.df[term])
	return math.Log((float64(idx.n) - df + 0.5) / (df + 0.5))
}

// score sums the BM25 contribution of each query token for document i.
// Repeated query tokens contribute repeatedly.
func (idx *bm25Index) score(query []string, i int, k1, b float64) float64 {
	if idx.avgdl == 0 {
		return 0
	}
	dl := float64(idx.lens[i])
	score := 0.0
	for _, term := range query {
		tf := float64(idx.tfs[i][term])
		if tf == 0 {
			continue
		}
		score += idx.idf(term) * (tf * (k1 + 1)) / (tf + k1*(1-b+b*dl/idx.avgdl))
	}
	return score
}

func (e *Engine) bm25(query string, topK int) []*core.ScoredResult {
	if len(e.corpus) == 0 {
		return []*core.ScoredResult{}
	}

	queryTokens := Tokenize(query)
	if len(queryTokens) == 0 {
		return []*core.ScoredResult{}
	}

	idx := newBM25Index(e.corpusTokens())
	results := make([]*core.ScoredResult, 0)
	for i, entry := range e.corpus {
		score := idx.score(queryTokens, i, e.k1, e.b)
		if score > 0 {
			results = append(results, &core.ScoredResult{
				Entry: entry,
				Kind:  core.ScoreBM25,
				Score: score,
			})
		}
	}

	rankResults(results)
	return truncate(results, topK)
}
