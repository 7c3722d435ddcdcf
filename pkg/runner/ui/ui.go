package ui

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	jww "github.com/spf13/jwalterweatherman"

	"tableflip.dev/emojipick/pkg/app"
	teaui "tableflip.dev/emojipick/pkg/tui/app"
)

// UI runs the interactive picker.
type UI struct {
	Service *app.Service
}

func (d *UI) Do(ctx context.Context) error {
	if d.Service == nil {
		return errors.New("can not open picker, no service")
	}
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return errors.New("the picker needs a terminal; use `emojipick search` or `emojipick copy` in scripts")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	jww.DEBUG.Printf("ui: starting with %d emojis", d.Service.Table.Len())
	return teaui.Run(d.Service)
}
