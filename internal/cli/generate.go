package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"examgen/internal/app"
	"examgen/internal/config"
)

// NewGenerateCmd builds the subcommand that runs the full pipeline.
func NewGenerateCmd(configPath *string) *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "generate [config]",
		Short: "Generate exam variants from a configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := *configPath
			if len(args) == 1 {
				path = args[0]
			}
			return runGenerate(cmd.Context(), path, outDir)
		},
	}
	cmd.Flags().StringVar(&outDir, "out", ".", "directory for rendered exam files")
	return cmd
}

func runGenerate(ctx context.Context, configPath, outDir string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	results, err := app.NewGenerator(cfg, outDir).Run(ctx)
	if err != nil {
		return err
	}

	// One line per document: seed, path, content digest for reproducibility checks.
	for _, res := range results {
		fmt.Printf("%d %s %s\n", res.Seed, res.Path, res.Digest)
	}
	log.Printf("wrote %d exam files", len(results))
	return nil
}
