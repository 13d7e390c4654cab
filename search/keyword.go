package search

import (
	"strings"

	"github.com/poiesic/journalrank/core"
)

func (e *Engine) keyword(query string, topK int) []*core.ScoredResult {
	if len(e.corpus) == 0 {
		return []*core.ScoredResult{}
	}

	tokens := Tokenize(query)
	phrase := strings.ToLower(query)

	results := make([]*core.ScoredResult, 0)
	for _, entry := range e.corpus {
		score := keywordScore(strings.ToLower(entry.Text), tokens, phrase)
		if score > 0 {
			results = append(results, &core.ScoredResult{
				Entry: entry,
				Kind:  core.ScoreKeyword,
				Score: float64(score),
			})
		}
	}

	rankResults(results)
	return truncate(results, topK)
}

// keywordScore counts non-overlapping substring occurrences of every token in
// text, plus one point per token when text contains the whole phrase.
// Without tokens the score is 0.
func keywordScore(text string, tokens []string, phrase string) int {
	if len(tokens) == 0 {
		return 0
	}
	score := 0
	for _, token := range tokens {
		score += strings.Count(text, token)
	}
	if strings.Contains(text, phrase) {
		score += len(tokens)
	}
	return score
}
