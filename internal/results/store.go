// Package results handles local run-result storage. A run directory holds
// run.yaml (run metadata and final status) and rewards.json (one record per
// completed episode). Recording is a supplement to the episode loop: the
// core contract does not require persistence, so callers treat failures
// here as non-fatal.
package results

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Run status values for RunInfo.Status.
const (
	StatusRunning   = "running"
	StatusBudgetMet = "budget_met"
	StatusExhausted = "exhausted"
	StatusFailed    = "failed"
)

// RunInfo is the run.yaml payload.
type RunInfo struct {
	Name        string    `yaml:"name"`
	Task        string    `yaml:"task"`
	Method      string    `yaml:"method"`
	MaxEpisodes int       `yaml:"max_episodes"`
	StartedAt   time.Time `yaml:"started_at"`
	Status      string    `yaml:"status"`
}

// RewardRecord is one rewards.json entry.
type RewardRecord struct {
	Episode int     `json:"episode"`
	Action  string  `json:"action"`
	Reward  float64 `json:"reward"`
}

// Store handles storage for a single run under <basePath>/<name>/.
type Store struct {
	basePath string
	name     string
}

// NewStore creates a Store for the run called name under basePath. The name
// is sanitized for use as a directory component.
func NewStore(basePath, name string) *Store {
	return &Store{basePath: basePath, name: sanitizeName(name)}
}

// Name returns the sanitized run name.
func (s *Store) Name() string {
	return s.name
}

// runDir returns the directory holding this run's files.
func (s *Store) runDir() string {
	return filepath.Join(s.basePath, s.name)
}

// sanitizeName replaces path separators so a run name is a single
// directory component.
func sanitizeName(name string) string {
	result := make([]byte, len(name))
	for i := 0; i < len(name); i++ {
		if name[i] == '/' || name[i] == '\\' {
			result[i] = '-'
		} else {
			result[i] = name[i]
		}
	}
	return string(result)
}

// CreateRun creates the run directory and writes the initial run.yaml.
func (s *Store) CreateRun(info RunInfo) error {
	if err := os.MkdirAll(s.runDir(), 0o755); err != nil {
		return fmt.Errorf("failed to create run directory: %w", err)
	}

	info.Name = s.name
	if info.Status == "" {
		info.Status = StatusRunning
	}
	return s.writeRun(info)
}

// GetRun reads run.yaml.
func (s *Store) GetRun() (RunInfo, error) {
	data, err := os.ReadFile(filepath.Join(s.runDir(), "run.yaml"))
	if err != nil {
		if os.IsNotExist(err) {
			return RunInfo{}, fmt.Errorf("run not found: %s", s.name)
		}
		return RunInfo{}, fmt.Errorf("failed to read run file: %w", err)
	}

	var info RunInfo
	if err := yaml.Unmarshal(data, &info); err != nil {
		return RunInfo{}, fmt.Errorf("failed to parse run file: %w", err)
	}
	return info, nil
}

// SetStatus updates the status field in run.yaml.
func (s *Store) SetStatus(status string) error {
	info, err := s.GetRun()
	if err != nil {
		return err
	}
	info.Status = status
	return s.writeRun(info)
}

func (s *Store) writeRun(info RunInfo) error {
	data, err := yaml.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal run info: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.runDir(), "run.yaml"), data, 0o644); err != nil {
		return fmt.Errorf("failed to write run file: %w", err)
	}
	return nil
}

// AppendReward appends a record to rewards.json.
func (s *Store) AppendReward(record RewardRecord) error {
	records, err := s.Rewards()
	if err != nil {
		return err
	}
	records = append(records, record)

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal rewards: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.runDir(), "rewards.json"), data, 0o644); err != nil {
		return fmt.Errorf("failed to write rewards file: %w", err)
	}
	return nil
}

// Rewards reads all recorded rewards in episode order. Returns an empty
// slice when none have been recorded yet.
func (s *Store) Rewards() ([]RewardRecord, error) {
	data, err := os.ReadFile(filepath.Join(s.runDir(), "rewards.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return []RewardRecord{}, nil
		}
		return nil, fmt.Errorf("failed to read rewards file: %w", err)
	}

	var records []RewardRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse rewards file: %w", err)
	}
	return records, nil
}
