package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/emojipick/pkg/commands/options"
	"tableflip.dev/emojipick/pkg/runner/history"
)

func addHistory(topLevel *cobra.Command) {
	ho := &options.HistoryOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "show recently used emojis",
		Example: `
emojipick history
emojipick history --since 1w
emojipick history --clear
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := loadService(false)
			if err != nil {
				return oo.HandleError(err)
			}
			defer cleanup()

			h := history.History{
				Clear:   ho.Clear,
				Since:   time.Duration(ho.Since),
				Output:  oo,
				Service: svc,
			}
			err = h.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddHistoryArgs(cmd, ho)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
