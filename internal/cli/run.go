package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/epirun/epirun/internal/config"
	"github.com/epirun/epirun/internal/dataset"
	"github.com/epirun/epirun/internal/llm"
	"github.com/epirun/epirun/internal/logging"
	"github.com/epirun/epirun/internal/loop"
	"github.com/epirun/epirun/internal/memory"
	"github.com/epirun/epirun/internal/prompt"
	"github.com/epirun/epirun/internal/results"
	"github.com/epirun/epirun/internal/task"
)

var (
	runConfigPath string
	runName       string
	runVerbose    bool
)

// RunOutput is the JSON result printed after a run.
type RunOutput struct {
	Reason     string    `json:"reason"`
	Episodes   int       `json:"episodes"`
	Rewards    []float64 `json:"rewards"`
	MeanReward float64   `json:"mean_reward"`
	Error      string    `json:"error,omitempty"`
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run episodes against the configured task",
	Long: `Loads the run configuration, builds the task, template resolver, and
LLM client, then executes episodes up to the configured budget. The
result is printed as JSON: one reward per completed episode.

A run that stops early because the dataset is exhausted is still a
successful run; it simply carries fewer rewards.

Example:
  epirun run --config .epirun/config.yaml
  epirun run --config .epirun/config.yaml --name baseline --verbose`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVarP(&runConfigPath, "config", "c", ".epirun/config.yaml", "path to run configuration")
	runCmd.Flags().StringVarP(&runName, "name", "n", "", "run name for result recording (default: run-<timestamp>)")
	runCmd.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "log per-episode progress")

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	if runVerbose {
		logging.SetLevel(logging.LevelInfo)
	}

	cfg, err := config.LoadConfig(runConfigPath)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return executeRun(ctx, cfg, runName, cmd.OutOrStdout())
}

// executeRun wires the collaborators declared in cfg and drives one run,
// writing the JSON result to out.
func executeRun(ctx context.Context, cfg *config.Config, name string, out io.Writer) error {
	provider, closeProvider, err := buildProvider(ctx, cfg)
	if err != nil {
		return err
	}
	if closeProvider != nil {
		defer closeProvider()
	}

	store := memory.NewStore()
	resolver, err := prompt.NewResolver(cfg.Templates.Root, cfg.Templates.Tiers, store)
	if err != nil {
		return err
	}

	tsk, err := task.New(cfg.Task.Name, task.Config{
		Provider: provider,
		Split:    cfg.Task.Split,
		Subtask:  cfg.Task.Subtask,
		Version:  cfg.Task.Version,
	})
	if err != nil {
		return err
	}

	client, err := llm.NewOpenAIClient(llm.OpenAIConfig{
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		APIKey:      os.Getenv(cfg.LLM.APIKeyEnv),
		Temperature: cfg.LLM.Temperature,
	})
	if err != nil {
		return err
	}

	runStore, err := buildResultsStore(cfg, name)
	if err != nil {
		return err
	}

	controller, err := loop.NewController(loop.Options{
		Task:        tsk,
		Resolver:    resolver,
		Memory:      store,
		Client:      client,
		Results:     runStore,
		MaxEpisodes: cfg.Limits.MaxEpisodes,
		Method:      cfg.Task.Method,
	})
	if err != nil {
		return err
	}

	result := controller.Run(ctx)

	if runStore != nil {
		if err := runStore.SetStatus(runStatus(result)); err != nil {
			logging.Warn("failed to update run status", "error", err)
		}
	}

	output := RunOutput{
		Reason:     result.Reason.String(),
		Episodes:   result.Episodes,
		Rewards:    result.Rewards,
		MeanReward: result.MeanReward(),
	}
	if result.Error != nil {
		output.Error = result.Error.Error()
	}
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(output); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}

	return result.Error
}

// buildProvider constructs the dataset provider declared in cfg. The
// returned close function is nil for providers without resources.
func buildProvider(ctx context.Context, cfg *config.Config) (dataset.Provider, func() error, error) {
	switch cfg.Dataset.Source {
	case config.SourceJSONL:
		records, err := dataset.LoadJSONL(cfg.Dataset.Path)
		if err != nil {
			return nil, nil, err
		}
		return records, nil, nil
	case config.SourceSQLite:
		provider, err := dataset.OpenSQLite(ctx, cfg.Dataset.Path, cfg.Task.Split)
		if err != nil {
			return nil, nil, err
		}
		return provider, provider.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown dataset source %q", cfg.Dataset.Source)
	}
}

// buildResultsStore creates the run-result store when recording is enabled.
func buildResultsStore(cfg *config.Config, name string) (*results.Store, error) {
	if cfg.Results.Dir == "" {
		return nil, nil
	}
	if name == "" {
		name = "run-" + time.Now().Format("20060102-150405")
	}
	store := results.NewStore(cfg.Results.Dir, name)
	err := store.CreateRun(results.RunInfo{
		Task:        cfg.Task.Name,
		Method:      cfg.Task.Method,
		MaxEpisodes: cfg.Limits.MaxEpisodes,
		StartedAt:   time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// runStatus maps a loop result onto a stored run status.
func runStatus(result loop.Result) string {
	switch result.Reason {
	case loop.ExitReasonBudgetMet:
		return results.StatusBudgetMet
	case loop.ExitReasonExhausted:
		return results.StatusExhausted
	default:
		return results.StatusFailed
	}
}
