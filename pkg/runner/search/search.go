package search

import (
	"context"
	"errors"
	"io"
	"strings"

	"tableflip.dev/emojipick/pkg/app"
	"tableflip.dev/emojipick/pkg/commands/options"
	"tableflip.dev/emojipick/pkg/emoji"
	"tableflip.dev/emojipick/pkg/printers"
)

type Search struct {
	Query   string
	Limit   int
	ShowHex bool
	Output  *options.OutputOptions
	Out     io.Writer
	Service *app.Service
}

func (n *Search) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not search, no service")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	found := n.Service.Search(n.Query)
	if n.Limit > 0 && len(found) > n.Limit {
		found = found[:n.Limit]
	}

	if n.Output != nil && n.Output.JSON {
		if found == nil {
			found = []emoji.Entry{}
		}
		return n.Output.PrintJSON(found)
	}

	pp := printers.PrettyPrint{ShowHex: n.ShowHex, Out: n.Out}
	pp.TitleWithCount(strings.TrimSpace(n.Query), len(found))
	pp.Entries(n.Service.Settings().SkintoneModifier, found...)
	if len(found) == 0 {
		if s := n.Service.Suggest(n.Query, 3); len(s) > 0 {
			pp.Title("Did you mean: " + strings.Join(s, ", ") + "?")
		}
	}
	return nil
}
