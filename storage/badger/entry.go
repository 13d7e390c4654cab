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


package badger

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/poiesic/journalrank/core"
	"github.com/poiesic/journalrank/storage"
)

// EntryRepository implements storage.EntryRepository for BadgerDB.
type EntryRepository struct {
	backend *Backend
}

var _ storage.EntryRepository = (*EntryRepository)(nil)

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(backend *Backend) (*EntryRepository, error) {
	if backend == nil {
		return nil, fmt.Errorf("badger backend required")
	}
	return &EntryRepository{backend: backend}, nil
}

// Close is a no-op; the backend is closed by its owner.
func (r *EntryRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *EntryRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddEntries adds one or more entries to storage.
func (r *EntryRepository) AddEntries(ctx context.Context, entries ...*core.Entry) ([]*core.Entry, error) {
	for _, entry := range entries {
		if err := core.ValidateEntry(entry); err != nil {
			return nil, err
		}
	}

	err := r.backend.update(ctx, func(tx *badger.Txn) error {
		for _, entry := range entries {
			entry.Id = core.EntryID(entry.UserID, entry.Date, entry.Text)
			key := makeEntryKey(entry.Id)

			existing, err := readEntry(tx, key)
			if err != nil {
				return err
			}
			switch {
			case existing != nil:
				entry.InsertedAt = existing.InsertedAt
			case entry.InsertedAt.IsZero():
				entry.InsertedAt = time.Now().UTC()
			}

			// Store primary record
			if err := tx.Set(key, storage.MarshalEntry(entry)); err != nil {
				return err
			}

			// Update user date index
			indexKey := makeUserDateKey(entry.UserID, entry.Date, entry.Id)
			if err := tx.Set(indexKey, storage.MarshalID(entry.Id)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// DeleteEntries removes entries by their IDs.
func (r *EntryRepository) DeleteEntries(ctx context.Context, ids ...core.ID) error {
	return r.backend.update(ctx, func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeEntryKey(id)

			// Read entry to get metadata for index cleanup
			entry, err := readEntry(tx, key)
			if err != nil {
				return err
			}
			if entry == nil {
				return fmt.Errorf("%w: entry %d", storage.ErrNotFound, id)
			}

			if err := tx.Delete(makeUserDateKey(entry.UserID, entry.Date, entry.Id)); err != nil {
				return err
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetEntry retrieves a single entry by ID.
func (r *EntryRepository) GetEntry(ctx context.Context, id core.ID) (*core.Entry, error) {
	var result *core.Entry
	err := r.backend.view(ctx, func(tx *badger.Txn) error {
		var err error
		result, err = readEntry(tx, makeEntryKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	})
	return result, err
}

// GetEntries retrieves multiple entries by their IDs.
func (r *EntryRepository) GetEntries(ctx context.Context, ids ...core.ID) ([]*core.Entry, error) {
	var result []*core.Entry
	err := r.backend.view(ctx, func(tx *badger.Txn) error {
		for _, id := range ids {
			entry, err := readEntry(tx, makeEntryKey(id))
			if err != nil {
				return err
			}
			if entry != nil {
				result = append(result, entry)
			}
		}
		return nil
	})
	return result, err
}

// GetEntriesByUser retrieves all entries of a user, ordered by date then ID.
func (r *EntryRepository) GetEntriesByUser(ctx context.Context, userID string) ([]*core.Entry, error) {
	if err := core.ValidateUserID(userID); err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrInvalidQuery, err)
	}
	prefix := makeUserPrefix(userID)
	return r.scanIndex(ctx, prefix, prefix, func(key []byte) bool {
		return bytes.HasPrefix(key, prefix)
	})
}

// GetEntriesByDateRange retrieves a user's entries with start <= Date <= end.
func (r *EntryRepository) GetEntriesByDateRange(ctx context.Context, userID, start, end string) ([]*core.Entry, error) {
	if err := core.ValidateUserID(userID); err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrInvalidQuery, err)
	}
	startDate, err := core.ParseDate(start)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrInvalidQuery, err)
	}
	endDate, err := core.ParseDate(end)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrInvalidQuery, err)
	}
	if startDate.After(endDate) {
		return nil, fmt.Errorf("%w: start %s is after end %s", storage.ErrInvalidQuery, start, end)
	}

	prefix := makeUserPrefix(userID)
	startKey := makePartialUserDateKey(userID, start)
	endKey := makePartialUserDateKey(userID, end)
	return r.scanIndex(ctx, prefix, startKey, func(key []byte) bool {
		// Index keys carry the date right after the user prefix.
		return bytes.Compare(key[:len(endKey)], endKey) <= 0
	})
}

// CountEntries returns the number of entries stored for a user.
func (r *EntryRepository) CountEntries(ctx context.Context, userID string) (int, error) {
	if err := core.ValidateUserID(userID); err != nil {
		return 0, fmt.Errorf("%w: %w", storage.ErrInvalidQuery, err)
	}

	count := 0
	err := r.backend.view(ctx, func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = makeUserPrefix(userID)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// scanIndex walks the user date index from seek while more(key) holds and
// loads the referenced entries.
func (r *EntryRepository) scanIndex(ctx context.Context, prefix, seek []byte, more func(key []byte) bool) ([]*core.Entry, error) {
	results := make([]*core.Entry, 0)
	err := r.backend.view(ctx, func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Seek(seek); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			if !more(iter.Item().Key()) {
				break
			}

			// Read the ID from the index
			var entryID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				entryID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			// Look up the full entry
			entry, err := readEntry(tx, makeEntryKey(entryID))
			if err != nil {
				return err
			}
			if entry != nil {
				results = append(results, entry)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// readEntry reads an entry, returning nil without error when the key is absent.
func readEntry(tx *badger.Txn, key []byte) (*core.Entry, error) {
	item, err := tx.Get(key)
	if err == badger.ErrKeyNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var entry *core.Entry
	err = item.Value(func(val []byte) error {
		var err error
		entry, err = storage.UnmarshalEntry(val)
		return err
	})
	return entry, err
}
