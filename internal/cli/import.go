package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/epirun/epirun/internal/config"
	"github.com/epirun/epirun/internal/dataset"
)

var (
	importConfigPath string
	importFrom       string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a JSONL dataset into the configured SQLite database",
	Long: `Reads question/answer records from a JSON-lines file and appends them
to the SQLite database declared in the run configuration, under the
configured split. The configuration's dataset source must be "sqlite".

Example:
  epirun import --config .epirun/config.yaml --from data/train.jsonl`,
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVarP(&importConfigPath, "config", "c", ".epirun/config.yaml", "path to run configuration")
	importCmd.Flags().StringVarP(&importFrom, "from", "f", "", "JSONL file to import (required)")

	importCmd.MarkFlagRequired("from")

	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(importConfigPath)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return executeImport(ctx, cfg, importFrom, cmd.OutOrStdout())
}

func executeImport(ctx context.Context, cfg *config.Config, from string, out io.Writer) error {
	if cfg.Dataset.Source != config.SourceSQLite {
		return fmt.Errorf("import requires dataset source %q, configured source is %q",
			config.SourceSQLite, cfg.Dataset.Source)
	}

	records, err := dataset.LoadJSONL(from)
	if err != nil {
		return err
	}
	if err := dataset.WriteSQLite(ctx, cfg.Dataset.Path, cfg.Task.Split, records); err != nil {
		return err
	}

	fmt.Fprintf(out, "imported %d examples into %s (split %q)\n", len(records), cfg.Dataset.Path, cfg.Task.Split)
	return nil
}
