package copier

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/emojipick/pkg/app"
)

// Copy puts one or more emojis on the clipboard as a single commit.
type Copy struct {
	Emojis  []string
	Paste   bool
	Quiet   bool
	Out     io.Writer
	Service *app.Service
}

func (n *Copy) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not copy, no service")
	}
	if len(n.Emojis) == 0 {
		return errors.New("nothing to copy")
	}

	text, err := n.Service.Copy(ctx, n.Emojis...)
	if err != nil {
		return err
	}
	if n.Paste {
		n.Service.AutoPaste(ctx)
	}
	if n.Quiet {
		return nil
	}

	out := n.Out
	if out == nil {
		out = color.Output
	}
	f := color.New(color.Faint)
	_, _ = fmt.Fprintf(out, "%s %s\n", text, f.Sprint("copied"))
	return nil
}
