package results

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_CreateAndGetRun(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir(), "run-1")
	started := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.CreateRun(RunInfo{
		Task:        "gsm8k",
		Method:      "direct",
		MaxEpisodes: 3,
		StartedAt:   started,
	}))

	info, err := store.GetRun()
	require.NoError(t, err)
	assert.Equal(t, "run-1", info.Name)
	assert.Equal(t, "gsm8k", info.Task)
	assert.Equal(t, StatusRunning, info.Status)
	assert.True(t, info.StartedAt.Equal(started))
}

func TestStore_SetStatus(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir(), "run-1")
	require.NoError(t, store.CreateRun(RunInfo{Task: "gsm8k"}))
	require.NoError(t, store.SetStatus(StatusExhausted))

	info, err := store.GetRun()
	require.NoError(t, err)
	assert.Equal(t, StatusExhausted, info.Status)
}

func TestStore_GetRunMissing(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir(), "absent")
	_, err := store.GetRun()
	assert.Error(t, err)
}

func TestStore_AppendAndReadRewards(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir(), "run-1")
	require.NoError(t, store.CreateRun(RunInfo{Task: "gsm8k"}))

	require.NoError(t, store.AppendReward(RewardRecord{Episode: 0, Action: "18000", Reward: 1}))
	require.NoError(t, store.AppendReward(RewardRecord{Episode: 1, Action: "abc", Reward: 0}))

	records, err := store.Rewards()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, RewardRecord{Episode: 0, Action: "18000", Reward: 1}, records[0])
	assert.Equal(t, RewardRecord{Episode: 1, Action: "abc", Reward: 0}, records[1])
}

func TestStore_RewardsEmpty(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir(), "run-1")
	require.NoError(t, store.CreateRun(RunInfo{Task: "gsm8k"}))

	records, err := store.Rewards()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestStore_SanitizesName(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir(), "feature/run")
	assert.Equal(t, "feature-run", store.Name())
	require.NoError(t, store.CreateRun(RunInfo{Task: "gsm8k"}))

	info, err := store.GetRun()
	require.NoError(t, err)
	assert.Equal(t, "feature-run", info.Name)
}
