package storage

import (
	"context"

	"github.com/poiesic/journalrank/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// EntryRepository provides operations for managing journal entries.
type EntryRepository interface {
	Repository
	// AddEntries adds one or more entries to storage.
	// IDs are derived from (UserID, Date, Text), so adding an identical
	// entry twice stores it once. Sets InsertedAt if not already set.
	// Returns the entries with IDs and timestamps populated.
	AddEntries(ctx context.Context, entries ...*core.Entry) ([]*core.Entry, error)

	// DeleteEntries removes entries by their IDs, along with their index keys.
	// Returns ErrNotFound if any entry doesn't exist.
	DeleteEntries(ctx context.Context, ids ...core.ID) error

	// GetEntry retrieves a single entry by ID.
	// Returns ErrNotFound if the entry doesn't exist.
	GetEntry(ctx context.Context, id core.ID) (*core.Entry, error)

	// GetEntries retrieves multiple entries by their IDs.
	// Returns only the entries that exist (no error for missing entries).
	GetEntries(ctx context.Context, ids ...core.ID) ([]*core.Entry, error)

	// GetEntriesByUser retrieves all entries of a user, ordered by date then ID.
	GetEntriesByUser(ctx context.Context, userID string) ([]*core.Entry, error)

	// GetEntriesByDateRange retrieves a user's entries with start <= Date <= end.
	// Dates use core.DateLayout. Returns ErrInvalidQuery if start is after end.
	GetEntriesByDateRange(ctx context.Context, userID, start, end string) ([]*core.Entry, error)

	// CountEntries returns the number of entries stored for a user.
	CountEntries(ctx context.Context, userID string) (int, error)
}
