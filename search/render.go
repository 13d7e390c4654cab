package search

import (
	"fmt"
	"strings"

	"github.com/poiesic/journalrank/core"
)

// RenderResults formats results as a numbered list, one line each:
//
//	1. 2024-01-01 (Monday) — 87% — "I went running..."
func RenderResults(results []*core.ScoredResult) string {
	var b strings.Builder
	for i, r := range results {
		fmt.Fprintf(&b, "%d. %s (%s) — %d%% — \"%s\"\n",
			i+1, r.Entry.Date, r.Entry.Day, r.Relevance(), r.Entry.Text)
	}
	return b.String()
}
