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

import "errors"

// Domain validation errors
var (
	// ErrInvalidEntry indicates an Entry failed validation.
	ErrInvalidEntry = errors.New("invalid entry")

	// ErrInvalidTimestamp indicates a timestamp is in the future.
	ErrInvalidTimestamp = errors.New("timestamp cannot be in the future")

	// ErrEmptyText indicates the Text field is empty.
	ErrEmptyText = errors.New("text cannot be empty")

	// ErrEmptyUser indicates the UserID field is empty.
	ErrEmptyUser = errors.New("user id cannot be empty")

	// ErrInvalidUser indicates the UserID contains a reserved character.
	ErrInvalidUser = errors.New("user id contains reserved characters")

	// ErrInvalidDate indicates the Date field is not a calendar date.
	ErrInvalidDate = errors.New("invalid calendar date")

	// ErrInvalidDay indicates the Day field is not a weekday name.
	ErrInvalidDay = errors.New("invalid weekday name")

	// ErrDayMismatch indicates the Day field does not match the Date.
	ErrDayMismatch = errors.New("weekday does not match date")
)
