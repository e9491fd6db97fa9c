package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/epirun/epirun/internal/config"
)

// WriteTemplateTier writes name -> content template files into the given
// tier directory under root, creating directories as needed.
func WriteTemplateTier(t *testing.T, root, tier string, templates map[string]string) {
	t.Helper()

	dir := filepath.Join(root, tier)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for name, content := range templates {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name+".tmpl"), []byte(content), 0o644))
	}
}

// RunDir is a fully populated run directory for end-to-end command tests.
type RunDir struct {
	Root       string
	ConfigPath string
	Config     config.Config
}

// SetupRunDir creates a temp directory holding a default template tier,
// a JSONL dataset with SampleRecords, and a config.yaml pointing the LLM
// client at llmBaseURL. The caller's test cleans everything up.
func SetupRunDir(t *testing.T, llmBaseURL string) RunDir {
	t.Helper()

	root := t.TempDir()

	WriteTemplateTier(t, filepath.Join(root, "templates"), "default", SampleTemplates())

	dataPath := filepath.Join(root, "train.jsonl")
	require.NoError(t, os.WriteFile(dataPath, []byte(SampleRecordsJSONL), 0o644))

	cfg := config.DefaultConfig()
	cfg.Task.Name = "gsm8k"
	cfg.Dataset.Path = dataPath
	cfg.Templates.Root = filepath.Join(root, "templates")
	cfg.Limits.MaxEpisodes = 2
	cfg.LLM.BaseURL = llmBaseURL
	cfg.LLM.Model = "test-model"

	configPath := filepath.Join(root, "config.yaml")
	data, err := yaml.Marshal(cfg)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(configPath, data, 0o644))

	return RunDir{Root: root, ConfigPath: configPath, Config: cfg}
}
