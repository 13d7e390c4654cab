package search

import "github.com/poiesic/journalrank/core"

// MaxCombinedResults caps the output of Combine.
const MaxCombinedResults = 5

// Combine merges a semantic and a keyword ranking. Semantic results come
// first; keyword results fill in entries not already present, identified by
// core.DedupKey. Each output is a tagged copy; the inputs are not modified.
func Combine(semantic, keyword []*core.ScoredResult) []*core.ScoredResult {
	seen := make(map[core.EntryKey]bool, len(semantic)+len(keyword))
	combined := make([]*core.ScoredResult, 0, MaxCombinedResults)

	add := func(results []*core.ScoredResult, tag core.SearchType) {
		for _, r := range results {
			if len(combined) == MaxCombinedResults {
				return
			}
			if r == nil || r.Entry == nil {
				continue
			}
			key := core.DedupKey(r.Entry)
			if seen[key] {
				continue
			}
			seen[key] = true
			c := *r
			c.SearchType = tag
			combined = append(combined, &c)
		}
	}

	add(semantic, core.SearchTypeSemantic)
	add(keyword, core.SearchTypeKeyword)
	return combined
}
