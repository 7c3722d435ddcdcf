package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/emojipick/pkg/commands/options"
	cfg "tableflip.dev/emojipick/pkg/config"
)

// Show prints the effective settings and where they came from.
type Show struct {
	Config *cfg.Store
	Output *options.OutputOptions
	Out    io.Writer
}

func (n *Show) Do(ctx context.Context) error {
	if n.Config == nil {
		return errors.New("can not show config, none loaded")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	all := n.Config.AllSettings()
	file := n.Config.ConfigFileUsed()

	if n.Output != nil && n.Output.JSON {
		return n.Output.PrintJSON(map[string]interface{}{
			"file":     file,
			"settings": all,
		})
	}

	out := n.Out
	if out == nil {
		out = color.Output
	}
	f := color.New(color.Faint)
	if file == "" {
		file = "(defaults, no config file)"
	}
	_, _ = fmt.Fprintln(out, f.Sprint(file))

	keys := make([]string, 0, len(all))
	for k := range all {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, k := range keys {
		tbl.AddRow(k, fmt.Sprint(all[k]))
	}
	_, _ = fmt.Fprintln(out, tbl)
	return nil
}
