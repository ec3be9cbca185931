package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"examgen/internal/app"
	"examgen/internal/config"
)

// NewValidateCmd checks a configuration and its banks without writing files.
func NewValidateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [config]",
		Short: "Check the configuration and question banks against their quotas",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := *configPath
			if len(args) == 1 {
				path = args[0]
			}
			return runValidate(path)
		},
	}
}

func runValidate(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	reports, err := app.NewGenerator(cfg, ".").Validate()
	if err != nil {
		return err
	}

	for _, rep := range reports {
		fmt.Printf("section %q: %d of %d questions per exam\n", rep.Name, rep.Sample, rep.Pool)
	}
	return nil
}
