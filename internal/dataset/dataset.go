// Package dataset provides integer-indexable example providers for episodic
// tasks. A provider exposes a question field and an answer field per record;
// the answer may embed the final numeric answer after a delimiter.
package dataset

import (
	"errors"
	"fmt"
)

// Record is one dataset example.
type Record struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Provider is an integer-indexable source of records.
type Provider interface {
	// Len returns the number of records available.
	Len() int
	// Get returns the record at index. Returns an error wrapping
	// ErrIndexOutOfRange when index is outside [0, Len).
	Get(index int) (Record, error)
}

// ErrIndexOutOfRange indicates an index outside the provider's range.
var ErrIndexOutOfRange = errors.New("dataset index out of range")

// Slice is an in-memory Provider backed by a record slice.
type Slice []Record

// Len returns the number of records.
func (s Slice) Len() int {
	return len(s)
}

// Get returns the record at index.
func (s Slice) Get(index int) (Record, error) {
	if index < 0 || index >= len(s) {
		return Record{}, fmt.Errorf("%w: %d (length %d)", ErrIndexOutOfRange, index, len(s))
	}
	return s[index], nil
}
