package core

import (
	"encoding/binary"
	"math"
	"time"
	"unicode/utf8"

	"github.com/go-crypt/x/blake2b"
)

// DateLayout is the calendar-date format of Entry.Date.
const DateLayout = "2006-01-02"

// dedupPrefixLen is the number of text characters that take part in DedupKey.
const dedupPrefixLen = 50

// ID is a unique identifier for domain entities.
// Entry IDs are content hashes, so identical entries collapse to one ID.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// EntryID returns the content ID of an entry owned by userID.
func EntryID(userID, date, text string) ID {
	return IDFromContent(userID + "\x00" + date + "\x00" + text)
}

// Entry is a single journal record.
type Entry struct {
	Id         ID
	UserID     string
	Date       string    // Calendar date, DateLayout
	Day        string    // Weekday name, e.g. "Monday"
	Text       string
	Timestamp  time.Time // When the entry was written (optional)
	InsertedAt time.Time // When the entry was inserted into the database
}

// EntryKey identifies "the same entry" when two ranked lists are merged.
type EntryKey struct {
	Date string
	Part string
}

// HybridKey is the merge identity used by the hybrid combiner: (date, day).
func HybridKey(e *Entry) EntryKey {
	return EntryKey{Date: e.Date, Part: e.Day}
}

// DedupKey is the merge identity used by the result deduplicator:
// (date, first 50 characters of text).
func DedupKey(e *Entry) EntryKey {
	return EntryKey{Date: e.Date, Part: prefixRunes(e.Text, dedupPrefixLen)}
}

func prefixRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// ScoreKind tags which ranking strategy produced a score.
type ScoreKind int

const (
	// ScoreSimilarity is a TF-IDF cosine similarity in [0, 1].
	ScoreSimilarity ScoreKind = iota + 1
	// ScoreKeyword is a raw keyword occurrence count with phrase bonus.
	ScoreKeyword
	// ScoreBM25 is an Okapi BM25 score.
	ScoreBM25
	// ScoreHybrid is a blend of normalized similarity and keyword scores in [0, 1].
	ScoreHybrid
)

// String returns the wire name of the score kind.
func (k ScoreKind) String() string {
	switch k {
	case ScoreSimilarity:
		return "similarity"
	case ScoreKeyword:
		return "keyword"
	case ScoreBM25:
		return "bm25"
	case ScoreHybrid:
		return "hybrid"
	default:
		return "unknown"
	}
}

// SearchType records which ranking a deduplicated result came from.
type SearchType string

const (
	SearchTypeSemantic SearchType = "semantic"
	SearchTypeKeyword  SearchType = "keyword"
)

// HybridComponents keeps the raw scores that went into a hybrid score.
type HybridComponents struct {
	Similarity float64 // Raw cosine similarity, 0 if not found by the vector scorer
	Keyword    float64 // Raw keyword score, 0 if not found by the lexical scorer
}

// ScoredResult is an entry together with the score a ranking assigned it.
// Score is authoritative for Kind; Components is only set for ScoreHybrid.
type ScoredResult struct {
	Entry      *Entry
	Kind       ScoreKind
	Score      float64
	Components *HybridComponents
	SearchType SearchType // Set by the deduplicator only
}

// Relevance returns the score as a rounded percentage.
func (r *ScoredResult) Relevance() int {
	return int(math.Round(r.Score * 100))
}
