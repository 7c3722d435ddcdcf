package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/emojipick/pkg/commands/options"
	"tableflip.dev/emojipick/pkg/runner/tag"
)

func addTag(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	set := false

	cmd := &cobra.Command{
		Use:   "tag <emoji|hexcode> [tags...]",
		Short: "show or set custom tags",
		Long: `Tag prints the custom tags of an emoji. Passing tags, or --set with no
tags, replaces them. Custom tags are searched like the built in ones.`,
		Example: `
emojipick tag 😂
emojipick tag 😂 lol rofl
emojipick tag 1F602 --set
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := loadService(false)
			if err != nil {
				return oo.HandleError(err)
			}
			defer cleanup()

			t := tag.Tag{
				Emoji:   args[0],
				Tags:    args[1:],
				Set:     set || len(args) > 1,
				Output:  oo,
				Service: svc,
			}
			err = t.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddOutputArg(cmd, oo)
	cmd.Flags().BoolVar(&set, "set", false, "Replace the tags even when none are given.")

	topLevel.AddCommand(cmd)
}
