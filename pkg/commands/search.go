package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/emojipick/pkg/commands/options"
	"tableflip.dev/emojipick/pkg/runner/search"
)

func addSearch(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	limit := 0
	showHex := false

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "search emojis by name or tag",
		Long: `Search matches each comma separated word of the query against emoji
names, tags and your custom tags, ordered the way the picker orders them.`,
		Example: `
emojipick search party
emojipick search "red, heart" --json
emojipick search face --limit 5 --hex
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := loadService(false)
			if err != nil {
				return oo.HandleError(err)
			}
			defer cleanup()

			s := search.Search{
				Query:   strings.Join(args, " "),
				Limit:   limit,
				ShowHex: showHex,
				Output:  oo,
				Service: svc,
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddOutputArg(cmd, oo)
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show at most this many emojis (0 for all).")
	cmd.Flags().BoolVar(&showHex, "hex", false, "Show hexcodes.")

	topLevel.AddCommand(cmd)
}
