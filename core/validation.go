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


package core

import (
	"fmt"
	"strings"
	"time"
)

// ValidateEntry validates an Entry according to domain rules.
//
// Validation rules:
//   - UserID must not be empty and must not contain NUL
//   - Text must not be empty
//   - Date must be a DateLayout calendar date
//   - Day must be the weekday of Date
//   - Timestamp, when set, must not be in the future
//
// NOT validated:
//   - ID (derived from content by the repository)
//   - InsertedAt (set by the repository)
func ValidateEntry(entry *Entry) error {
	if entry == nil {
		return fmt.Errorf("%w: entry is nil", ErrInvalidEntry)
	}

	if err := ValidateUserID(entry.UserID); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEntry, err)
	}

	if strings.TrimSpace(entry.Text) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidEntry, ErrEmptyText)
	}

	date, err := ParseDate(entry.Date)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEntry, err)
	}

	if err := ValidateDay(entry.Day); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEntry, err)
	}
	if date.Weekday().String() != entry.Day {
		return fmt.Errorf("%w: %w: %s is a %s, not %s",
			ErrInvalidEntry, ErrDayMismatch, entry.Date, date.Weekday(), entry.Day)
	}

	if !IsValidTimestamp(entry.Timestamp) {
		return fmt.Errorf("%w: %w", ErrInvalidEntry, ErrInvalidTimestamp)
	}

	return nil
}

// ValidateUserID validates that a user ID can be used as a storage key.
func ValidateUserID(userID string) error {
	if userID == "" {
		return ErrEmptyUser
	}
	if strings.ContainsRune(userID, 0) {
		return ErrInvalidUser
	}
	return nil
}

// ParseDate parses a DateLayout calendar date.
func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return t, nil
}

// ValidateDay validates that day is an English weekday name.
func ValidateDay(day string) error {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if d.String() == day {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrInvalidDay, day)
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
