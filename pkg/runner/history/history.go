package history

import (
	"context"
	"errors"
	"io"
	"time"

	"tableflip.dev/emojipick/pkg/app"
	"tableflip.dev/emojipick/pkg/commands/options"
	"tableflip.dev/emojipick/pkg/printers"
)

type History struct {
	Clear   bool
	Since   time.Duration
	Output  *options.OutputOptions
	Out     io.Writer
	Service *app.Service

	// Now is used by tests; zero means time.Now.
	Now time.Time
}

func (n *History) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not show history, no service")
	}
	now := n.Now
	if now.IsZero() {
		now = time.Now()
	}
	pp := printers.PrettyPrint{Out: n.Out}
	json := n.Output != nil && n.Output.JSON

	switch {
	case n.Clear:
		if err := n.Service.ClearHistory(ctx); err != nil {
			return err
		}
		if json {
			return n.Output.PrintJSON(map[string]bool{"cleared": true})
		}
		pp.Title("History cleared")
		return nil

	case n.Since > 0:
		r, err := n.Service.Report(ctx, now.Add(-n.Since), now)
		if err != nil {
			return err
		}
		if json {
			return n.Output.PrintJSON(r)
		}
		pp.Report(r)
		return nil
	}

	usage, err := n.Service.History(ctx)
	if err != nil {
		return err
	}
	if json {
		if usage == nil {
			usage = []app.Usage{}
		}
		return n.Output.PrintJSON(usage)
	}
	pp.TitleWithCount("Recently used", len(usage))
	pp.Usage(now, usage...)
	return nil
}
