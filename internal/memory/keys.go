package memory

import "fmt"

// Key identifies a semantic role in the episode log. The key set is closed:
// tasks and the controller write under these roles and templates read them
// back by name. An unknown key is a programming error, not configuration.
type Key int

const (
	// KeyObservation holds task observations (the problem text).
	KeyObservation Key = iota
	// KeyAction holds parsed actions proposed by the model.
	KeyAction
	// KeyResponse holds raw model responses before parsing.
	KeyResponse
	// KeyReward holds formatted per-episode reward values.
	KeyReward

	numKeys // sentinel, keep last
)

var keyNames = [numKeys]string{
	KeyObservation: "observation",
	KeyAction:      "action",
	KeyResponse:    "response",
	KeyReward:      "reward",
}

// String returns the template-facing name of the key.
func (k Key) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Key(%d)", int(k))
	}
	return keyNames[k]
}

// Valid reports whether k is a member of the closed key set.
func (k Key) Valid() bool {
	return k >= 0 && k < numKeys
}

// Keys returns all valid keys in declaration order.
func Keys() []Key {
	keys := make([]Key, numKeys)
	for i := range keys {
		keys[i] = Key(i)
	}
	return keys
}

// KeyNames returns the template-facing names of all valid keys in
// declaration order.
func KeyNames() []string {
	names := make([]string, numKeys)
	copy(names, keyNames[:])
	return names
}

// ParseKey maps a template-facing name to its Key. Template files are
// configuration rather than code, so a bad name here is reported as an
// error instead of a panic.
func ParseKey(name string) (Key, error) {
	for i, n := range keyNames {
		if n == name {
			return Key(i), nil
		}
	}
	return 0, fmt.Errorf("unknown memory key: %q", name)
}
