package task

import (
	"fmt"
	"sort"

	"github.com/epirun/epirun/internal/dataset"
)

// Config carries task construction parameters from the run configuration.
type Config struct {
	// Provider is the dataset backing the task.
	Provider dataset.Provider
	// Split names the dataset split, informational for tasks that care.
	Split string
	// Subtask is the starting episode index.
	Subtask int
	// Version selects a task variant when an implementation has several.
	Version string
}

// Constructor builds a Task from its configuration.
type Constructor func(cfg Config) (Task, error)

var registry = map[string]Constructor{}

// Register adds a named task constructor. It panics on a duplicate name:
// registration happens in init functions, so a collision is a wiring bug.
func Register(name string, ctor Constructor) {
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("task: duplicate registration for %q", name))
	}
	registry[name] = ctor
}

// New constructs the task registered under name.
func New(name string, cfg Config) (Task, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown task %q (registered: %v)", name, Names())
	}
	return ctor(cfg)
}

// Names returns all registered task names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
