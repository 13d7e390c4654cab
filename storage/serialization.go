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


package storage

import (
	"fmt"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"

	"github.com/poiesic/journalrank/core"
)

// entryMUS encodes a core.Entry field by field in declaration order.
// Timestamps are stored as UnixMicro, with 0 standing for the zero time.
type entryMUS struct{}

var entrySer = entryMUS{}

func (entryMUS) Marshal(v core.Entry, bs []byte) (n int) {
	n = varint.Uint64.Marshal(uint64(v.Id), bs)
	n += ord.String.Marshal(v.UserID, bs[n:])
	n += ord.String.Marshal(v.Date, bs[n:])
	n += ord.String.Marshal(v.Day, bs[n:])
	n += ord.String.Marshal(v.Text, bs[n:])
	n += varint.Int64.Marshal(timeToMicros(v.Timestamp), bs[n:])
	n += varint.Int64.Marshal(timeToMicros(v.InsertedAt), bs[n:])
	return n
}

func (entryMUS) Unmarshal(bs []byte) (v core.Entry, n int, err error) {
	id, n, err := varint.Uint64.Unmarshal(bs)
	if err != nil {
		return
	}
	v.Id = core.ID(id)

	var n1 int
	for _, field := range []*string{&v.UserID, &v.Date, &v.Day, &v.Text} {
		*field, n1, err = ord.String.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}

	var micros int64
	micros, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Timestamp = microsToTime(micros)

	micros, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.InsertedAt = microsToTime(micros)
	return
}

func (entryMUS) Size(v core.Entry) (size int) {
	size = varint.Uint64.Size(uint64(v.Id))
	size += ord.String.Size(v.UserID)
	size += ord.String.Size(v.Date)
	size += ord.String.Size(v.Day)
	size += ord.String.Size(v.Text)
	size += varint.Int64.Size(timeToMicros(v.Timestamp))
	return size + varint.Int64.Size(timeToMicros(v.InsertedAt))
}

func timeToMicros(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMicro()
}

func microsToTime(micros int64) time.Time {
	if micros == 0 {
		return time.Time{}
	}
	return time.UnixMicro(micros).UTC()
}

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, varint.Uint64.Size(uint64(id)))
	varint.Uint64.Marshal(uint64(id), buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := varint.Uint64.Unmarshal(data)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return core.ID(id), nil
}

// MarshalEntry serializes an Entry to bytes.
func MarshalEntry(entry *core.Entry) []byte {
	buf := make([]byte, entrySer.Size(*entry))
	entrySer.Marshal(*entry, buf)
	return buf
}

// UnmarshalEntry deserializes an Entry from bytes.
// Trailing bytes are rejected as ErrTruncatedData.
func UnmarshalEntry(data []byte) (*core.Entry, error) {
	entry, n, err := entrySer.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	if n != len(data) {
		return nil, fmt.Errorf("%w: %d of %d bytes consumed", ErrTruncatedData, n, len(data))
	}
	return &entry, nil
}
