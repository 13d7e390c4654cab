package search

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/poiesic/journalrank/core"
)

// vocabulary maps each distinct term to a vector dimension in first-seen order.
type vocabulary struct {
	index map[string]int
	terms []string
}

func newVocabulary(docs [][]string, query []string) *vocabulary {
	v := &vocabulary{index: make(map[string]int)}
	for _, tokens := range docs {
		v.addAll(tokens)
	}
	v.addAll(query)
	return v
}

func (v *vocabulary) addAll(tokens []string) {
	for _, t := range tokens {
		if _, ok := v.index[t]; !ok {
			v.index[t] = len(v.terms)
			v.terms = append(v.terms, t)
		}
	}
}

// documentFrequencies counts, per term, how many documents contain it.
func documentFrequencies(docs [][]string) map[string]int {
	df := make(map[string]int)
	for _, tokens := range docs {
		for term := range termCounts(tokens) {
			df[term]++
		}
	}
	return df
}

// smoothedIDF is ln(N/df + 1). Terms absent from the corpus count as df = 1.
func smoothedIDF(n, df int) float64 {
	if df < 1 {
		df = 1
	}
	return math.Log(float64(n)/float64(df) + 1)
}

// tfidfVector builds the TF-IDF vector of tokens over v.
// An empty token list yields the zero vector.
func tfidfVector(tokens []string, v *vocabulary, idf []float64) []float64 {
	vec := make([]float64, len(v.terms))
	if len(tokens) == 0 {
		return vec
	}
	total := float64(len(tokens))
	for term, count := range termCounts(tokens) {
		i := v.index[term]
		vec[i] = float64(count) / total * idf[i]
	}
	return vec
}

// cosineSimilarity returns a·b / (|a||b|), or 0 when either vector is zero.
func cosineSimilarity(a, b []float64) float64 {
	na := floats.Norm(a, 2)
	nb := floats.Norm(b, 2)
	if na == 0 || nb == 0 {
		return 0
	}
	sim := floats.Dot(a, b) / (na * nb)
	return math.Max(0, math.Min(1, sim))
}

func (e *Engine) semantic(query string, topK int) []*core.ScoredResult {
	if len(e.corpus) == 0 {
		return []*core.ScoredResult{}
	}

	docs := e.corpusTokens()
	queryTokens := Tokenize(query)
	vocab := newVocabulary(docs, queryTokens)
	df := documentFrequencies(docs)

	idf := make([]float64, len(vocab.terms))
	for i, term := range vocab.terms {
		idf[i] = smoothedIDF(len(docs), df[term])
	}

	queryVec := tfidfVector(queryTokens, vocab, idf)
	results := make([]*core.ScoredResult, len(docs))
	for i, tokens := range docs {
		results[i] = &core.ScoredResult{
			Entry: e.corpus[i],
			Kind:  core.ScoreSimilarity,
			Score: cosineSimilarity(tfidfVector(tokens, vocab, idf), queryVec),
		}
	}

	rankResults(results)
	return truncate(results, topK)
}
