package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/emojipick/pkg/commands/options"
	"tableflip.dev/emojipick/pkg/emoji"
	"tableflip.dev/emojipick/pkg/runner/categories"
)

func addCategories(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	showHex := false

	validArgs := make([]string, 0)
	for _, c := range emoji.DefaultCategories() {
		validArgs = append(validArgs, c.ID)
	}

	cmd := &cobra.Command{
		Use:     "categories [category]",
		Aliases: []string{"cat"},
		Short:   "list categories, or the emojis of one",
		Example: `
emojipick categories
emojipick categories food-drink
emojipick categories recents
`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: validArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := loadService(false)
			if err != nil {
				return oo.HandleError(err)
			}
			defer cleanup()

			c := categories.Categories{
				ShowHex: showHex,
				Output:  oo,
				Service: svc,
			}
			if len(args) > 0 {
				c.Category = args[0]
			}
			err = c.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddOutputArg(cmd, oo)
	cmd.Flags().BoolVar(&showHex, "hex", false, "Show hexcodes.")

	topLevel.AddCommand(cmd)
}
