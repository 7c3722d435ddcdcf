package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/emojipick/pkg/commands/options"
	"tableflip.dev/emojipick/pkg/config"
	runconfig "tableflip.dev/emojipick/pkg/runner/config"
)

func addConfig(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective settings",
		Example: `
emojipick config
emojipick config --config ./picker.yaml --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(co.File)
			if err != nil {
				return oo.HandleError(err)
			}
			s := runconfig.Show{Config: cfg, Output: oo}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
