package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/emojipick/pkg/paste"
	"tableflip.dev/emojipick/pkg/runner/copier"
)

func addCopy(topLevel *cobra.Command) {
	pasteAfter := false
	quiet := false

	cmd := &cobra.Command{
		Use:   "copy <emoji|hexcode>...",
		Short: "copy emojis to the clipboard",
		Long: `Copy commits the given emojis as one clipboard text and records each
of them in the usage history, exactly like a multi-select in the picker.`,
		Example: `
emojipick copy 😀
emojipick copy 1F44B 1F3FD
emojipick copy 🎉 🎂 --paste
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := loadService(pasteAfter)
			if err != nil {
				return err
			}
			defer cleanup()
			if n, ok := svc.Paster.(*paste.Notifier); ok && pasteAfter {
				n.Enabled = true
			}

			c := copier.Copy{
				Emojis:  args,
				Paste:   pasteAfter,
				Quiet:   quiet,
				Service: svc,
			}
			return c.Do(context.Background())
		},
	}

	cmd.Flags().BoolVar(&pasteAfter, "paste", false, "Paste into the focused window afterwards.")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Print nothing.")

	topLevel.AddCommand(cmd)
}
