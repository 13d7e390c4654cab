package search

import (
	"fmt"
	"strings"
)

// Mode selects a ranking strategy.
type Mode string

const (
	ModeHybrid   Mode = "hybrid"
	ModeSemantic Mode = "semantic"
	ModeKeyword  Mode = "keyword"
	ModeBM25     Mode = "bm25"
	ModeCombined Mode = "combined"
)

// Modes lists every supported mode.
var Modes = []Mode{ModeHybrid, ModeSemantic, ModeKeyword, ModeBM25, ModeCombined}

// ParseMode parses a mode name, case-insensitively. An empty name is ModeHybrid.
func ParseMode(name string) (Mode, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ModeHybrid, nil
	}
	for _, m := range Modes {
		if string(m) == name {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMode, name)
}

// String returns the configuration name of the lexical ranking.
func (l Lexical) String() string {
	switch l {
	case LexicalKeyword:
		return "keyword"
	case LexicalBM25:
		return "bm25"
	default:
		return fmt.Sprintf("lexical(%d)", int(l))
	}
}

// ParseLexical parses a lexical ranking name. An empty name is LexicalKeyword.
func ParseLexical(name string) (Lexical, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "keyword":
		return LexicalKeyword, nil
	case "bm25":
		return LexicalBM25, nil
	default:
		return 0, fmt.Errorf("unknown lexical ranking %q", name)
	}
}
