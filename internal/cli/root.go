package cli

import (
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "epirun",
	Short: "Episodic task harness for language-model agents",
	Long: `Epirun drives a language-model agent through dataset-backed episodic
tasks. Each episode renders prompts from tiered templates, sends them to
the model, scores the parsed answer against the ground truth, and
advances until the episode budget is met or the dataset is exhausted.`,
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("epirun version {{.Version}}\n")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
