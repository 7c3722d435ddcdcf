package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/emojipick/pkg/commands/options"
)

var (
	co = &options.ConfigOptions{}
	lo = &options.LogOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "emojipick",
		Short: base.Wrap80("Pick emojis from the terminal and copy them to the clipboard."),
		Long: base.Wrap80("emojipick opens a searchable emoji grid. Selected emojis are copied to the " +
			"clipboard and, when auto-paste is enabled, pasted into the window you came from. " +
			"Run without a sub-command to open the picker."),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return options.InitLog(lo)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(cmd)
		},
	}

	options.AddConfigArg(cmd, co)
	options.AddLogArgs(cmd, lo)

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addSearch(topLevel)
	addCopy(topLevel)
	addHistory(topLevel)
	addTag(topLevel)
	addCategories(topLevel)
	addConfig(topLevel)
	addCompletions(topLevel)
	addUpgrade(topLevel)
	addMCP(topLevel)
	addVersion(topLevel)
}
