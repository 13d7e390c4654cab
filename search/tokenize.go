package search

import (
	"regexp"
	"strings"
)

// nonWordRegex matches everything that is neither a word character nor whitespace.
var nonWordRegex = regexp.MustCompile(`[^\w\s]`)

// minTokenLen is the shortest token kept by Tokenize.
const minTokenLen = 3

// Tokenize lowercases text, turns punctuation into spaces, splits on whitespace
// and drops tokens shorter than three characters.
// The result is never nil.
func Tokenize(text string) []string {
	cleaned := nonWordRegex.ReplaceAllString(strings.ToLower(text), " ")
	words := strings.Fields(cleaned)

	tokens := make([]string, 0, len(words))
	for _, word := range words {
		if len(word) >= minTokenLen {
			tokens = append(tokens, word)
		}
	}
	return tokens
}

// termCounts counts occurrences of each token.
func termCounts(tokens []string) map[string]int {
	counts := make(map[string]int, len(tokens))
	for _, t := range tokens {
		counts[t]++
	}
	return counts
}
