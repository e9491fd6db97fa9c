package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epirun/epirun/internal/config"
	"github.com/epirun/epirun/internal/dataset"
	"github.com/epirun/epirun/internal/testutil"
)

func TestExecuteImport(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	from := filepath.Join(dir, "train.jsonl")
	require.NoError(t, os.WriteFile(from, []byte(testutil.SampleRecordsJSONL), 0o644))

	cfg := config.DefaultConfig()
	cfg.Dataset.Source = config.SourceSQLite
	cfg.Dataset.Path = filepath.Join(dir, "examples.db")

	var buf bytes.Buffer
	require.NoError(t, executeImport(context.Background(), &cfg, from, &buf))
	assert.Contains(t, buf.String(), "imported 2 examples")

	provider, err := dataset.OpenSQLite(context.Background(), cfg.Dataset.Path, cfg.Task.Split)
	require.NoError(t, err)
	defer provider.Close()

	assert.Equal(t, 2, provider.Len())
	record, err := provider.Get(0)
	require.NoError(t, err)
	assert.Contains(t, record.Answer, "#### 18,000")
}

func TestExecuteImport_RequiresSQLite(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Dataset.Source = config.SourceJSONL
	cfg.Dataset.Path = "train.jsonl"

	var buf bytes.Buffer
	err := executeImport(context.Background(), &cfg, "train.jsonl", &buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sqlite")
}
