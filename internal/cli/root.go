package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var configPath string

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	envConfig := os.Getenv("EXAMGEN_CONFIG")
	if envConfig == "" {
		envConfig = "exam-config.xml"
	}

	cmd := &cobra.Command{
		Use:   "examgen",
		Short: "Deterministic exam variant generator for the LaTeX exam class",
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", envConfig, "path to exam configuration (XML or YAML)")
	cmd.AddCommand(NewGenerateCmd(&configPath))
	cmd.AddCommand(NewValidateCmd(&configPath))
	return cmd
}
