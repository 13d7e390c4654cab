package badger

import (
	"encoding/binary"

	"github.com/poiesic/journalrank/core"
)

// Key prefixes for different data types
const (
	entryPrefix     = "jent:"
	entryUserPrefix = "jentu:"
)

// userSeparator ends the user ID inside index keys. User IDs never contain NUL.
const userSeparator = 0x00

// makeEntryKey generates a key for an entry by ID.
// Format: prefix + id
func makeEntryKey(id core.ID) []byte {
	buf := make([]byte, len(entryPrefix)+8)
	offset := copy(buf, entryPrefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makeUserPrefix generates the index prefix shared by all entries of a user.
// Format: prefix + userID + NUL
func makeUserPrefix(userID string) []byte {
	buf := make([]byte, 0, len(entryUserPrefix)+len(userID)+1)
	buf = append(buf, entryUserPrefix...)
	buf = append(buf, userID...)
	return append(buf, userSeparator)
}

// makePartialUserDateKey generates a partial index key for date range queries.
// Format: prefix + userID + NUL + date
func makePartialUserDateKey(userID, date string) []byte {
	return append(makeUserPrefix(userID), date...)
}

// makeUserDateKey generates a composite key for the per-user date index.
// Dates are fixed width, so keys sort by date and then by ID.
// Format: prefix + userID + NUL + date + id
func makeUserDateKey(userID, date string, id core.ID) []byte {
	buf := makePartialUserDateKey(userID, date)
	offset := len(buf)
	buf = append(buf, make([]byte, 8)...)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}
