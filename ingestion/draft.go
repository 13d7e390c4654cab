package ingestion

import (
	"errors"
	"fmt"
	"time"
)

// Draft is a journal entry as supplied by a user, before normalization.
type Draft struct {
	Date      string    `json:"date" yaml:"date"`
	Day       string    `json:"day,omitempty" yaml:"day,omitempty"`
	Text      string    `json:"text" yaml:"text"`
	Timestamp time.Time `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
}

// Rejection records why the draft at Index was not stored.
type Rejection struct {
	Index int
	Err   error
}

func (r Rejection) Error() string {
	return fmt.Sprintf("draft %d: %v", r.Index, r.Err)
}

func (r Rejection) Unwrap() error {
	return r.Err
}

// Report summarizes one Ingest call.
type Report struct {
	Stored   int         // Entries written, including ones already present
	Existing int         // Stored entries that were already in the repository or repeated in the batch
	Rejected []Rejection // Drafts that failed normalization, in input order
	Elapsed  time.Duration
}

// Err joins all rejections, or returns nil when every draft was stored.
func (r *Report) Err() error {
	if len(r.Rejected) == 0 {
		return nil
	}
	errs := make([]error, len(r.Rejected))
	for i, rej := range r.Rejected {
		errs[i] = rej
	}
	return errors.Join(errs...)
}
