// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ingestion

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/poiesic/journalrank/core"
)

// processor turns a draft into a validated entry.
type processor interface {
	process(ctx context.Context, userID string, draft Draft) (*core.Entry, error)
}

// draftNormalizer is the default processor.
type draftNormalizer struct{}

var _ processor = draftNormalizer{}

func (draftNormalizer) process(ctx context.Context, userID string, draft Draft) (*core.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	date, timestamp, err := parseDraftDate(draft.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDraftRejected, err)
	}
	if !draft.Timestamp.IsZero() {
		timestamp = draft.Timestamp.UTC()
	}

	day, err := resolveDay(date, draft.Day)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDraftRejected, err)
	}

	entry := &core.Entry{
		UserID:    userID,
		Date:      date.Format(core.DateLayout),
		Day:       day,
		Text:      strings.TrimSpace(draft.Text),
		Timestamp: timestamp,
	}
	if err := core.ValidateEntry(entry); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDraftRejected, err)
	}
	return entry, nil
}

// parseDraftDate accepts a calendar date or an RFC 3339 timestamp.
// A timestamp also becomes the entry's Timestamp.
func parseDraftDate(value string) (time.Time, time.Time, error) {
	value = strings.TrimSpace(value)
	if date, err := core.ParseDate(value); err == nil {
		return date, time.Time{}, nil
	}
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %q", core.ErrInvalidDate, value)
	}
	date := time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
	return date, ts.UTC(), nil
}

// resolveDay returns the canonical weekday name for date. A supplied day
// must name the same weekday, in any letter case.
func resolveDay(date time.Time, day string) (string, error) {
	weekday := date.Weekday().String()
	day = strings.TrimSpace(day)
	if day == "" || strings.EqualFold(day, weekday) {
		return weekday, nil
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(day, d.String()) {
			return "", fmt.Errorf("%w: %s is a %s, not %s",
				core.ErrDayMismatch, date.Format(core.DateLayout), weekday, d)
		}
	}
	return "", fmt.Errorf("%w: %q", core.ErrInvalidDay, day)
}
