// Package task defines the episodic environment contract: reset, step, and
// answer extraction, specialized per problem domain. Concrete tasks are
// registered by name and constructed from the run configuration at startup.
package task

import (
	"context"
	"errors"

	"github.com/epirun/epirun/internal/memory"
)

// ErrDatasetOutOfBounds is returned by Reset when the episode counter runs
// past the available dataset. The controller treats it as a graceful end of
// the run, not a failure.
var ErrDatasetOutOfBounds = errors.New("dataset out of bounds")

// Observation is the text payload a task emits to the controller. The Key
// names the semantic role it should be written under in the memory store.
type Observation struct {
	Key  memory.Key
	Text string
}

// Task is the episodic environment contract.
//
// A Task instance holds mutable episode-local state (the episode counter,
// the current ground-truth answer) with a single owner: the controller/task
// pair. It must not be shared across goroutines.
type Task interface {
	// Reset begins a new episode. When next >= 0 the episode counter is
	// seeked to that index first; next < 0 continues from the current
	// counter. Returns an error wrapping ErrDatasetOutOfBounds when the
	// counter has run past the dataset. On success the task loads the
	// target example, derives and stores its ground-truth answer, and
	// returns the initial Observation.
	Reset(ctx context.Context, next int) (Observation, error)

	// AnswerParser extracts the proposed answer from free-form model
	// output. It never fails: when no candidate exists it returns the
	// empty string.
	AnswerParser(raw string) string

	// Step scores action against the current ground truth and advances
	// the episode counter. Parse and comparison failures yield reward 0
	// rather than an error; the returned reward is in {0, 1}. done
	// reports whether the episode is terminal.
	Step(action string) (obs Observation, reward float64, done bool)
}
