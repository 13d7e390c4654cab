package search

import (
	"time"

	"github.com/poiesic/journalrank/core"
)

// SearchMonitor provides hooks to observe a ranking call.
// Hooks run on the calling goroutine, never concurrently for one call,
// but a monitor shared between engines must tolerate concurrent calls.
type SearchMonitor interface {
	Start(query string, mode Mode)
	AfterSemanticSearch(results []*core.ScoredResult)
	AfterLexicalSearch(results []*core.ScoredResult)
	AfterMerge(merged int)
	Finish(mode Mode, results []*core.ScoredResult, elapsed time.Duration)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string, _ Mode)                                 {}
func (n *noopMonitor) AfterSemanticSearch(_ []*core.ScoredResult)             {}
func (n *noopMonitor) AfterLexicalSearch(_ []*core.ScoredResult)              {}
func (n *noopMonitor) AfterMerge(_ int)                                       {}
func (n *noopMonitor) Finish(_ Mode, _ []*core.ScoredResult, _ time.Duration) {}
