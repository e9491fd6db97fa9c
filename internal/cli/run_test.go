package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epirun/epirun/internal/config"
	"github.com/epirun/epirun/internal/results"
	"github.com/epirun/epirun/internal/testutil"
)

// newChatStub serves a chat-completions endpoint that replies with the
// scripted answers in order, repeating the last one when the script runs
// out.
func newChatStub(t *testing.T, answers []string) *httptest.Server {
	t.Helper()
	require.NotEmpty(t, answers)

	var (
		mu    sync.Mutex
		calls int
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)

		mu.Lock()
		i := calls
		calls++
		mu.Unlock()
		if i >= len(answers) {
			i = len(answers) - 1
		}

		response := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": answers[i]}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(response))
	}))
	t.Cleanup(server.Close)
	return server
}

func decodeRunOutput(t *testing.T, buf *bytes.Buffer) RunOutput {
	t.Helper()
	var out RunOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	return out
}

func TestExecuteRun_BudgetMet(t *testing.T) {
	t.Parallel()

	server := newChatStub(t, []string{"The answer is 18,000.", "That leaves 3."})
	rd := testutil.SetupRunDir(t, server.URL)

	cfg, err := config.LoadConfig(rd.ConfigPath)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, executeRun(context.Background(), cfg, "", &buf))

	out := decodeRunOutput(t, &buf)
	assert.Equal(t, "budget met", out.Reason)
	assert.Equal(t, 2, out.Episodes)
	assert.Equal(t, []float64{1, 1}, out.Rewards)
	assert.Equal(t, 1.0, out.MeanReward)
	assert.Empty(t, out.Error)
}

func TestExecuteRun_ExhaustionIsGraceful(t *testing.T) {
	t.Parallel()

	server := newChatStub(t, []string{"18000", "3"})
	rd := testutil.SetupRunDir(t, server.URL)

	cfg := rd.Config
	cfg.Limits.MaxEpisodes = 5

	var buf bytes.Buffer
	require.NoError(t, executeRun(context.Background(), &cfg, "", &buf))

	out := decodeRunOutput(t, &buf)
	assert.Equal(t, "dataset exhausted", out.Reason)
	assert.Equal(t, 2, out.Episodes)
	assert.Len(t, out.Rewards, 2)
}

func TestExecuteRun_WrongAnswerScoresZero(t *testing.T) {
	t.Parallel()

	server := newChatStub(t, []string{"I believe it is 42."})
	rd := testutil.SetupRunDir(t, server.URL)

	cfg := rd.Config
	cfg.Limits.MaxEpisodes = 1

	var buf bytes.Buffer
	require.NoError(t, executeRun(context.Background(), &cfg, "", &buf))

	out := decodeRunOutput(t, &buf)
	assert.Equal(t, []float64{0}, out.Rewards)
}

func TestExecuteRun_RecordsResults(t *testing.T) {
	t.Parallel()

	server := newChatStub(t, []string{"18000", "3"})
	rd := testutil.SetupRunDir(t, server.URL)

	cfg := rd.Config
	cfg.Results.Dir = filepath.Join(rd.Root, "results")

	var buf bytes.Buffer
	require.NoError(t, executeRun(context.Background(), &cfg, "baseline", &buf))

	store := results.NewStore(cfg.Results.Dir, "baseline")
	info, err := store.GetRun()
	require.NoError(t, err)
	assert.Equal(t, "gsm8k", info.Task)
	assert.Equal(t, results.StatusBudgetMet, info.Status)

	rewards, err := store.Rewards()
	require.NoError(t, err)
	assert.Len(t, rewards, 2)
}

func TestExecuteRun_MissingTemplateFails(t *testing.T) {
	t.Parallel()

	server := newChatStub(t, []string{"18000"})
	rd := testutil.SetupRunDir(t, server.URL)
	require.NoError(t, os.Remove(filepath.Join(rd.Root, "templates", "default", "trajectory.tmpl")))

	var buf bytes.Buffer
	err := executeRun(context.Background(), &rd.Config, "", &buf)
	require.Error(t, err)

	out := decodeRunOutput(t, &buf)
	assert.Equal(t, "error", out.Reason)
	assert.NotEmpty(t, out.Error)
}

func TestExecuteRun_UnknownTask(t *testing.T) {
	t.Parallel()

	server := newChatStub(t, []string{"18000"})
	rd := testutil.SetupRunDir(t, server.URL)

	cfg := rd.Config
	cfg.Task.Name = "no-such-task"

	var buf bytes.Buffer
	err := executeRun(context.Background(), &cfg, "", &buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no-such-task")
}

func TestBuildProvider_UnknownSource(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Dataset.Source = "csv"

	_, _, err := buildProvider(context.Background(), &cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "csv")
}
