package options

import (
	"github.com/spf13/cobra"
)

// HistoryOptions
type HistoryOptions struct {
	Clear bool
	Since Window
}

func AddHistoryArgs(cmd *cobra.Command, o *HistoryOptions) {
	cmd.Flags().BoolVar(&o.Clear, "clear", false,
		"Forget all usage history.")
	cmd.Flags().Var(&o.Since, "since",
		"Report usage within this window, grouped by category (e.g. 3d, 1w2d).")
}
