package search

import (
	"fmt"
	"strings"
	"testing"

	"pgregory.net/rapid"

	"github.com/poiesic/journalrank/core"
)

var vocabularyWords = []string{
	"run", "running", "coffee", "friend", "garden", "rain", "work",
	"tired", "happy", "walk", "dog", "a", "to", "the",
}

func genText() *rapid.Generator[string] {
	return rapid.Custom(func(t *rapid.T) string {
		words := rapid.SliceOfN(rapid.SampledFrom(vocabularyWords), 0, 12).Draw(t, "words")
		sep := rapid.SampledFrom([]string{" ", ", ", "! "}).Draw(t, "sep")
		return strings.Join(words, sep)
	})
}

func genCorpus() *rapid.Generator[[]*core.Entry] {
	return rapid.Custom(func(t *rapid.T) []*core.Entry {
		texts := rapid.SliceOfN(genText(), 0, 10).Draw(t, "texts")
		corpus := make([]*core.Entry, len(texts))
		for i, text := range texts {
			// Distinct dates keep every entry a distinct merge identity.
			corpus[i] = entry(fmt.Sprintf("2024-01-%02d", i+1), "Monday", text)
		}
		return corpus
	})
}

func TestProperty_SimilarityInUnitInterval(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		engine := NewEngine(genCorpus().Draw(t, "corpus"))
		query := genText().Draw(t, "query")

		for _, r := range engine.SemanticSearch(query, 10) {
			if r.Score < 0 || r.Score > 1 {
				t.Fatalf("similarity %v outside [0, 1]", r.Score)
			}
		}
	})
}

func TestProperty_HybridInUnitInterval(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		engine := NewEngine(genCorpus().Draw(t, "corpus"))
		query := genText().Draw(t, "query")
		alpha := rapid.Float64Range(0, 1).Draw(t, "alpha")

		for _, r := range engine.HybridSearch(query, 5, alpha) {
			if r.Score < 0 || r.Score > 1+1e-12 {
				t.Fatalf("hybrid score %v outside [0, 1] for alpha %v", r.Score, alpha)
			}
		}
	})
}

func TestProperty_KeywordResultsContainQueryTokens(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		engine := NewEngine(genCorpus().Draw(t, "corpus"))
		query := genText().Draw(t, "query")
		tokens := Tokenize(query)

		for _, r := range engine.KeywordSearch(query, 10) {
			text := strings.ToLower(r.Entry.Text)
			found := false
			for _, tok := range tokens {
				if strings.Contains(text, tok) {
					found = true
					break
				}
			}
			if !found {
				t.Fatalf("entry %q matched none of %v", r.Entry.Text, tokens)
			}
		}
	})
}

func TestProperty_BM25MonotoneInTermFrequency(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 50).Draw(t, "n")
		df := rapid.IntRange(0, n).Draw(t, "df")
		dl := rapid.IntRange(1, 100).Draw(t, "dl")
		avgdl := rapid.Float64Range(0.5, 100).Draw(t, "avgdl")
		tf := rapid.IntRange(0, dl-1).Draw(t, "tf")

		idx := &bm25Index{
			tfs:   []map[string]int{{"term": tf}, {"term": tf + 1}},
			lens:  []int{dl, dl},
			df:    map[string]int{"term": df},
			avgdl: avgdl,
			n:     n,
		}
		lower := idx.score([]string{"term"}, 0, DefaultK1, DefaultB)
		higher := idx.score([]string{"term"}, 1, DefaultK1, DefaultB)

		if idx.idf("term") >= 0 && higher < lower {
			t.Fatalf("score decreased from %v to %v as tf grew from %d", lower, higher, tf)
		}
		if idx.idf("term") < 0 && higher > lower {
			t.Fatalf("negative idf score increased from %v to %v", lower, higher)
		}
	})
}

func TestProperty_Deterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		corpus := genCorpus().Draw(t, "corpus")
		query := genText().Draw(t, "query")

		first := RenderResults(NewEngine(corpus).HybridSearch(query, 5, 0.5))
		second := RenderResults(NewEngine(corpus).HybridSearch(query, 5, 0.5))
		if first != second {
			t.Fatalf("rankings differ:\n%s\n%s", first, second)
		}
	})
}

func TestProperty_AlphaOneMatchesSemantic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		engine := NewEngine(genCorpus().Draw(t, "corpus"))
		query := genText().Draw(t, "query")

		semantic := engine.SemanticSearch(query, 3)
		hybrid := engine.HybridSearch(query, 3, 1)

		// Entries with a positive semantic score lead in the same order.
		for i, r := range semantic {
			if r.Score == 0 {
				break
			}
			if hybrid[i].Entry != r.Entry {
				t.Fatalf("position %d: hybrid %s, semantic %s", i, hybrid[i].Entry.Date, r.Entry.Date)
			}
		}
	})
}

func TestProperty_EmptyCorpus(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		engine := NewEngine(nil)
		query := rapid.String().Draw(t, "query")

		if len(engine.SemanticSearch(query, 5))+len(engine.KeywordSearch(query, 5))+
			len(engine.BM25Search(query, 5))+len(engine.HybridSearch(query, 5, 0.5)) != 0 {
			t.Fatalf("non-empty result for empty corpus")
		}
	})
}
