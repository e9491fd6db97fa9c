package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/epirun/epirun/internal/config"
	"github.com/epirun/epirun/internal/memory"
	"github.com/epirun/epirun/internal/prompt"
)

var templatesConfigPath string

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Show how logical template names resolve across tiers",
	Long: `Lists every logical template name defined in the configured tiers and
the tier each one resolves to, then checks that the templates the run
will need (system_prompt, the per-method prompt, trajectory) are all
defined. Missing required templates are reported as an error so the
problem surfaces before a run burns API calls.`,
	RunE: runTemplates,
}

func init() {
	templatesCmd.Flags().StringVarP(&templatesConfigPath, "config", "c", ".epirun/config.yaml", "path to run configuration")

	rootCmd.AddCommand(templatesCmd)
}

func runTemplates(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(templatesConfigPath)
	if err != nil {
		return err
	}
	return describeTemplates(cfg, cmd.OutOrStdout())
}

// describeTemplates prints the resolution table and verifies the required
// template set.
func describeTemplates(cfg *config.Config, out io.Writer) error {
	resolver, err := prompt.NewResolver(cfg.Templates.Root, cfg.Templates.Tiers, memory.NewStore())
	if err != nil {
		return err
	}

	names, err := resolver.Names()
	if err != nil {
		return err
	}
	for _, name := range names {
		tier, err := resolver.ResolveTier(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s -> %s\n", name, tier)
	}

	required := []string{"system_prompt", cfg.Task.Method + "_prompt", "trajectory"}
	var missing []string
	for _, name := range required {
		if _, err := resolver.ResolveTier(name); err != nil {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("required templates not defined in any tier: %v", missing)
	}

	fmt.Fprintf(out, "all required templates resolve (%v)\n", required)
	return nil
}
