package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default values for Config.
const (
	DefaultMaxEpisodes = 10
	DefaultSplit       = "train"
	DefaultMethod      = "direct"
	DefaultTier        = "default"
	DefaultAPIKeyEnv   = "OPENAI_API_KEY"
)

// DefaultConfig returns a Config with sensible default values. Fields
// without a meaningful default (task name, dataset path, template root,
// LLM endpoint) stay empty and are caught by validation.
func DefaultConfig() Config {
	return Config{
		Task: TaskConfig{
			Split:  DefaultSplit,
			Method: DefaultMethod,
		},
		Dataset: DatasetConfig{
			Source: SourceJSONL,
		},
		Templates: TemplatesConfig{
			Tiers: []string{DefaultTier},
		},
		Limits: Limits{
			MaxEpisodes: DefaultMaxEpisodes,
		},
		LLM: LLMConfig{
			APIKeyEnv: DefaultAPIKeyEnv,
		},
	}
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// LoadConfig reads and parses the run configuration at path, applying
// defaults for any missing fields.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ValidateConfig checks that all config values are valid.
func ValidateConfig(cfg *Config) error {
	if cfg.Task.Name == "" {
		return ValidationError{Field: "task.name", Message: "is required"}
	}
	if cfg.Task.Subtask < 0 {
		return ValidationError{Field: "task.subtask", Message: "must be non-negative"}
	}
	if cfg.Task.Method == "" {
		return ValidationError{Field: "task.method", Message: "is required"}
	}

	switch cfg.Dataset.Source {
	case SourceJSONL, SourceSQLite:
	default:
		return ValidationError{
			Field:   "dataset.source",
			Message: fmt.Sprintf("must be %q or %q", SourceJSONL, SourceSQLite),
		}
	}
	if cfg.Dataset.Path == "" {
		return ValidationError{Field: "dataset.path", Message: "is required"}
	}

	if cfg.Templates.Root == "" {
		return ValidationError{Field: "templates.root", Message: "is required"}
	}
	if len(cfg.Templates.Tiers) == 0 {
		return ValidationError{Field: "templates.tiers", Message: "must list at least one tier"}
	}

	if cfg.Limits.MaxEpisodes <= 0 {
		return ValidationError{Field: "limits.max_episodes", Message: "must be positive"}
	}

	if cfg.LLM.BaseURL == "" {
		return ValidationError{Field: "llm.base_url", Message: "is required"}
	}
	if cfg.LLM.Model == "" {
		return ValidationError{Field: "llm.model", Message: "is required"}
	}

	return nil
}
