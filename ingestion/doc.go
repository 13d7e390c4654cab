// Package ingestion turns raw journal drafts into stored entries.
//
// The Pipeline normalizes each Draft on a worker pool:
//   - Dates are parsed as 2006-01-02 or as RFC 3339 timestamps
//   - A missing weekday is derived from the date; a wrong one is rejected
//   - Text is trimmed and the entry is validated
//
// Valid entries are written with a single repository call. Rejected drafts
// are reported by index and do not fail the batch.
package ingestion
