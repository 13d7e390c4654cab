package answer

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/poiesic/journalrank/core"
	"github.com/poiesic/journalrank/search"
)

const (
	snippetLen = 120
	maxThemes  = 3
)

// NoEntriesAnswer is the fallback text when nothing matched the question.
const NoEntriesAnswer = "I couldn't find any journal entries related to that question."

// Common words that never count as a theme.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "be": true, "is": true, "are": true,
	"was": true, "to": true, "of": true, "and": true, "in": true, "that": true,
	"have": true, "it": true, "for": true, "not": true, "on": true, "with": true,
	"as": true, "you": true, "do": true, "at": true, "this": true, "but": true,
	"by": true, "from": true, "had": true, "has": true, "were": true, "been": true,
	"then": true, "than": true, "they": true, "them": true, "she": true, "him": true,
	"her": true, "his": true, "our": true, "out": true, "very": true, "just": true,
	"about": true, "after": true, "before": true, "today": true, "went": true,
}

// FallbackSummary builds a deterministic answer from ranked results without a model.
// The first result is taken as the best match.
func FallbackSummary(query string, results []*core.ScoredResult) string {
	results = slices.DeleteFunc(slices.Clone(results), func(r *core.ScoredResult) bool {
		return r == nil || r.Entry == nil
	})
	if len(results) == 0 {
		return NoEntriesAnswer
	}

	var b strings.Builder
	noun := "entries"
	if len(results) == 1 {
		noun = "entry"
	}
	fmt.Fprintf(&b, "Found %d %s related to %q.", len(results), noun, query)

	best := results[0]
	fmt.Fprintf(&b, " The closest match is from %s (%s): %q.", best.Entry.Date, best.Entry.Day, snippet(best.Entry.Text))

	if themes := recurringThemes(results); len(themes) > 0 {
		fmt.Fprintf(&b, " Recurring themes: %s.", strings.Join(themes, ", "))
	}
	return b.String()
}

func snippet(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= snippetLen {
		return text
	}
	return strings.TrimSpace(string(runes[:snippetLen-3])) + "..."
}

// recurringThemes returns the most frequent non-stop-word tokens across
// results that appear more than once. Ties sort alphabetically.
func recurringThemes(results []*core.ScoredResult) []string {
	counts := make(map[string]int)
	for _, r := range results {
		for _, tok := range search.Tokenize(r.Entry.Text) {
			if !stopWords[tok] {
				counts[tok]++
			}
		}
	}

	type theme struct {
		word  string
		count int
	}
	themes := make([]theme, 0, len(counts))
	for w, c := range counts {
		if c > 1 {
			themes = append(themes, theme{w, c})
		}
	}
	slices.SortFunc(themes, func(a, b theme) int {
		if c := cmp.Compare(b.count, a.count); c != 0 {
			return c
		}
		return strings.Compare(a.word, b.word)
	})

	out := make([]string, 0, maxThemes)
	for i := 0; i < len(themes) && i < maxThemes; i++ {
		out = append(out, themes[i].word)
	}
	return out
}
