package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_WriteRetrieveOrder(t *testing.T) {
	t.Parallel()

	s := NewStore()
	s.Write(KeyObservation, "first")
	s.Write(KeyObservation, "second")
	s.Write(KeyAction, "42")

	assert.Equal(t, []string{"first", "second"}, s.Retrieve(KeyObservation))
	assert.Equal(t, []string{"42"}, s.Retrieve(KeyAction))
}

func TestStore_RetrieveEmptyKey(t *testing.T) {
	t.Parallel()

	s := NewStore()
	assert.Empty(t, s.Retrieve(KeyResponse))
	assert.Equal(t, 0, s.Len(KeyResponse))
}

func TestStore_RetrieveIsRestartable(t *testing.T) {
	t.Parallel()

	s := NewStore()
	s.Write(KeyObservation, "obs")

	first := s.Retrieve(KeyObservation)
	second := s.Retrieve(KeyObservation)
	assert.Equal(t, first, second)

	// Mutating a returned slice must not leak into the log.
	first[0] = "mutated"
	assert.Equal(t, []string{"obs"}, s.Retrieve(KeyObservation))
}

func TestStore_Latest(t *testing.T) {
	t.Parallel()

	s := NewStore()

	_, ok := s.Latest(KeyAction)
	assert.False(t, ok)

	s.Write(KeyAction, "1")
	s.Write(KeyAction, "2")
	latest, ok := s.Latest(KeyAction)
	require.True(t, ok)
	assert.Equal(t, "2", latest)
}

func TestStore_InvalidKeyPanics(t *testing.T) {
	t.Parallel()

	s := NewStore()
	assert.Panics(t, func() { s.Write(Key(99), "value") })
	assert.Panics(t, func() { s.Retrieve(Key(-1)) })
}

func TestParseKey(t *testing.T) {
	t.Parallel()

	for _, key := range Keys() {
		parsed, err := ParseKey(key.String())
		require.NoError(t, err)
		assert.Equal(t, key, parsed)
	}

	_, err := ParseKey("no-such-key")
	assert.Error(t, err)
}

func TestKeyNames_ClosedSet(t *testing.T) {
	t.Parallel()

	names := KeyNames()
	assert.Equal(t, []string{"observation", "action", "response", "reward"}, names)
	assert.Len(t, Keys(), len(names))
}

func TestKey_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "observation", KeyObservation.String())
	assert.Equal(t, "Key(99)", Key(99).String())
	assert.False(t, Key(99).Valid())
}
