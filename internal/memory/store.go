// Package memory provides the append-only, key-partitioned log of values
// produced during an episode. Tasks and the episode controller write entries;
// templates read them back during prompt assembly.
package memory

import "fmt"

// Store is an append-only log partitioned by Key. Entries are immutable once
// written and a key may accumulate multiple entries over a run. The store is
// owned by a single controller/task pair and accessed from one goroutine, so
// it carries no locking.
type Store struct {
	entries [numKeys][]string
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{}
}

// Write appends value under key. It never overwrites. Writing under an
// invalid key panics: the key set is closed at compile time, so an
// out-of-range key is a bug in the caller.
func (s *Store) Write(key Key, value string) {
	if !key.Valid() {
		panic(fmt.Sprintf("memory: write with invalid key %d", int(key)))
	}
	s.entries[key] = append(s.entries[key], value)
}

// Retrieve returns all values written under key in insertion order, or an
// empty slice when none exist. The result is a copy: repeated calls are
// read-only views over the log and never consume state.
func (s *Store) Retrieve(key Key) []string {
	if !key.Valid() {
		panic(fmt.Sprintf("memory: retrieve with invalid key %d", int(key)))
	}
	values := make([]string, len(s.entries[key]))
	copy(values, s.entries[key])
	return values
}

// Latest returns the most recently written value under key. The second
// return value is false when the key has no entries.
func (s *Store) Latest(key Key) (string, bool) {
	if !key.Valid() {
		panic(fmt.Sprintf("memory: latest with invalid key %d", int(key)))
	}
	values := s.entries[key]
	if len(values) == 0 {
		return "", false
	}
	return values[len(values)-1], true
}

// Len returns the number of entries written under key.
func (s *Store) Len(key Key) int {
	if !key.Valid() {
		panic(fmt.Sprintf("memory: len with invalid key %d", int(key)))
	}
	return len(s.entries[key])
}
