package commands

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"

	"tableflip.dev/emojipick/pkg/commands/options"
	"tableflip.dev/emojipick/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the emoji picker",
		Example: `
emojipick ui
emojipick ui --log-level 1
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(cmd)
		},
	}

	topLevel.AddCommand(cmd)
}

func runUI(cmd *cobra.Command) error {
	svc, cleanup, err := loadService(true)
	if err != nil {
		return err
	}
	defer cleanup()

	// The picker owns the terminal; send logs to a file unless told otherwise.
	if !cmd.Flags().Changed("log") {
		lo.Path = filepath.Join(svc.Settings().DataDir, appName+".log")
		if err := options.InitLog(lo); err != nil {
			return err
		}
	}

	i := ui.UI{Service: svc}
	return i.Do(context.Background())
}
