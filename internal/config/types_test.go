package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestConfig_YAMLRoundTrip(t *testing.T) {
	t.Parallel()

	original := Config{
		Task: TaskConfig{
			Name:    "gsm8k",
			Split:   "test",
			Subtask: 5,
			Method:  "external",
		},
		Dataset: DatasetConfig{
			Source: SourceSQLite,
			Path:   "data/examples.db",
		},
		Templates: TemplatesConfig{
			Root:  "templates",
			Tiers: []string{"gsm8k", "default"},
		},
		Limits: Limits{MaxEpisodes: 25},
		LLM: LLMConfig{
			BaseURL:   "http://localhost:8080/v1",
			Model:     "local",
			APIKeyEnv: "LOCAL_API_KEY",
		},
		Results: ResultsConfig{Dir: ".epirun/runs"},
	}

	data, err := yaml.Marshal(original)
	require.NoError(t, err)

	var parsed Config
	require.NoError(t, yaml.Unmarshal(data, &parsed))
	assert.Equal(t, original, parsed)
}

func TestConfig_YAMLFieldNames(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Task.Name = "gsm8k"
	cfg.Limits.MaxEpisodes = 7

	data, err := yaml.Marshal(cfg)
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "max_episodes: 7")
	assert.Contains(t, out, "api_key_env: OPENAI_API_KEY")
	assert.Contains(t, out, "name: gsm8k")
}
