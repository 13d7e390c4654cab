package badger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/journalrank/core"
	"github.com/poiesic/journalrank/storage"
)

func newEntry(user, date, day, text string) *core.Entry {
	return &core.Entry{UserID: user, Date: date, Day: day, Text: text}
}

func entryDates(entries []*core.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Date
	}
	return out
}

func TestEntryBasics(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()

	entry := newEntry("alice", "2024-01-01", "Monday", "I went running this morning")
	added, err := repo.AddEntries(ctx, entry)
	require.NoError(t, err)
	require.Len(t, added, 1)

	assert.Equal(t, core.EntryID("alice", "2024-01-01", "I went running this morning"), added[0].Id)
	assert.False(t, added[0].InsertedAt.IsZero())

	retrieved, err := repo.GetEntry(ctx, added[0].Id)
	require.NoError(t, err)
	assert.Equal(t, "I went running this morning", retrieved.Text)
	assert.Equal(t, "Monday", retrieved.Day)
	assert.True(t, added[0].InsertedAt.Truncate(time.Microsecond).Equal(retrieved.InsertedAt))
}

func TestAddEntries_Idempotent(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()

	first, err := repo.AddEntries(ctx, newEntry("alice", "2024-01-01", "Monday", "same words"))
	require.NoError(t, err)
	insertedAt := first[0].InsertedAt

	second, err := repo.AddEntries(ctx, newEntry("alice", "2024-01-01", "Monday", "same words"))
	require.NoError(t, err)
	assert.Equal(t, first[0].Id, second[0].Id)
	assert.True(t, insertedAt.Truncate(time.Microsecond).Equal(second[0].InsertedAt))

	count, err := repo.CountEntries(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestAddEntries_Invalid(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()

	tests := []struct {
		name  string
		entry *core.Entry
	}{
		{"empty text", newEntry("alice", "2024-01-01", "Monday", "  ")},
		{"bad date", newEntry("alice", "2024-13-01", "Monday", "text")},
		{"wrong day", newEntry("alice", "2024-01-01", "Friday", "text")},
		{"no user", newEntry("", "2024-01-01", "Monday", "text")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.AddEntries(ctx, newEntry("alice", "2024-01-02", "Tuesday", "valid"), tt.entry)
			assert.ErrorIs(t, err, core.ErrInvalidEntry)
		})
	}

	// Nothing from the rejected batches was stored.
	count, err := repo.CountEntries(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestGetEntriesByUser(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()

	_, err = repo.AddEntries(ctx,
		newEntry("alice", "2024-01-03", "Wednesday", "third"),
		newEntry("alice", "2024-01-01", "Monday", "first"),
		newEntry("bob", "2024-01-02", "Tuesday", "not alice"),
		newEntry("alice", "2024-01-02", "Tuesday", "second"),
		newEntry("alicia", "2024-01-01", "Monday", "prefix sharing user"),
	)
	require.NoError(t, err)

	entries, err := repo.GetEntriesByUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-01-01", "2024-01-02", "2024-01-03"}, entryDates(entries))
	for _, e := range entries {
		assert.Equal(t, "alice", e.UserID)
	}

	entries, err = repo.GetEntriesByUser(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = repo.GetEntriesByUser(ctx, "")
	assert.ErrorIs(t, err, storage.ErrInvalidQuery)
}

func TestGetEntriesByUser_SameDateOrderedByID(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()
	added, err := repo.AddEntries(ctx,
		newEntry("alice", "2024-01-01", "Monday", "morning"),
		newEntry("alice", "2024-01-01", "Monday", "evening"),
	)
	require.NoError(t, err)

	entries, err := repo.GetEntriesByUser(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	lo, hi := added[0].Id, added[1].Id
	if lo > hi {
		lo, hi = hi, lo
	}
	assert.Equal(t, lo, entries[0].Id)
	assert.Equal(t, hi, entries[1].Id)
}

func TestGetEntriesByDateRange(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()
	_, err = repo.AddEntries(ctx,
		newEntry("alice", "2023-12-31", "Sunday", "new year's eve"),
		newEntry("alice", "2024-01-01", "Monday", "new year"),
		newEntry("alice", "2024-01-15", "Monday", "mid month"),
		newEntry("alice", "2024-01-31", "Wednesday", "end of month"),
		newEntry("alice", "2024-02-01", "Thursday", "february"),
	)
	require.NoError(t, err)

	tests := []struct {
		name       string
		start, end string
		want       []string
	}{
		{"inclusive bounds", "2024-01-01", "2024-01-31", []string{"2024-01-01", "2024-01-15", "2024-01-31"}},
		{"single day", "2024-01-15", "2024-01-15", []string{"2024-01-15"}},
		{"empty range", "2024-01-02", "2024-01-14", []string{}},
		{"everything", "2000-01-01", "2100-01-01", []string{"2023-12-31", "2024-01-01", "2024-01-15", "2024-01-31", "2024-02-01"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := repo.GetEntriesByDateRange(ctx, "alice", tt.start, tt.end)
			require.NoError(t, err)
			assert.Equal(t, tt.want, entryDates(entries))
		})
	}

	t.Run("start after end", func(t *testing.T) {
		_, err := repo.GetEntriesByDateRange(ctx, "alice", "2024-02-01", "2024-01-01")
		assert.ErrorIs(t, err, storage.ErrInvalidQuery)
	})

	t.Run("malformed date", func(t *testing.T) {
		_, err := repo.GetEntriesByDateRange(ctx, "alice", "January", "2024-01-01")
		assert.ErrorIs(t, err, storage.ErrInvalidQuery)
	})
}

func TestGetEntries(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()
	added, err := repo.AddEntries(ctx,
		newEntry("alice", "2024-01-01", "Monday", "one"),
		newEntry("alice", "2024-01-02", "Tuesday", "two"),
	)
	require.NoError(t, err)

	entries, err := repo.GetEntries(ctx, added[1].Id, core.ID(12345), added[0].Id)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-01-02", "2024-01-01"}, entryDates(entries))

	_, err = repo.GetEntry(ctx, core.ID(12345))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDeleteEntries(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()
	added, err := repo.AddEntries(ctx,
		newEntry("alice", "2024-01-01", "Monday", "keep"),
		newEntry("alice", "2024-01-02", "Tuesday", "remove"),
	)
	require.NoError(t, err)

	require.NoError(t, repo.DeleteEntries(ctx, added[1].Id))

	entries, err := repo.GetEntriesByUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-01-01"}, entryDates(entries))

	_, err = repo.GetEntry(ctx, added[1].Id)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	err = repo.DeleteEntries(ctx, added[1].Id)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
