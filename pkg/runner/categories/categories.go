package categories

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/emojipick/pkg/app"
	"tableflip.dev/emojipick/pkg/commands/options"
	"tableflip.dev/emojipick/pkg/emoji"
	"tableflip.dev/emojipick/pkg/printers"
)

// Categories lists the category bar, or the entries of one category.
type Categories struct {
	Category string
	ShowHex  bool
	Output   *options.OutputOptions
	Out      io.Writer
	Service  *app.Service
}

func (n *Categories) Do(ctx context.Context) error {
	if n.Service == nil || n.Service.Table == nil {
		return errors.New("can not list categories, no emoji table")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	cats := n.Service.Table.Categories()
	json := n.Output != nil && n.Output.JSON
	pp := printers.PrettyPrint{ShowHex: n.ShowHex, Out: n.Out}

	if n.Category != "" {
		idx := emoji.CategoryIndex(cats, n.Category)
		if idx < 0 {
			return errors.New("unknown category " + n.Category)
		}
		c := n.Service.NewController()
		c.SetCategory(n.Category)
		entries := c.Visible(n.Service.Table.Entries())
		if json {
			if entries == nil {
				entries = []emoji.Entry{}
			}
			return n.Output.PrintJSON(entries)
		}
		pp.TitleWithCount(cats[idx].Icon+" "+cats[idx].Title, len(entries))
		pp.Entries(n.Service.Settings().SkintoneModifier, entries...)
		return nil
	}

	counts := make(map[string]int, len(cats))
	for _, e := range n.Service.Table.Entries() {
		counts[e.Group]++
	}
	if json {
		type row struct {
			ID    string `json:"id"`
			Title string `json:"title"`
			Icon  string `json:"icon"`
			Count int    `json:"count"`
		}
		rows := make([]row, 0, len(cats))
		for _, c := range cats {
			rows = append(rows, row{ID: c.ID, Title: c.Title, Icon: c.Icon, Count: counts[c.ID]})
		}
		return n.Output.PrintJSON(rows)
	}
	pp.Categories(cats, counts)
	return nil
}
