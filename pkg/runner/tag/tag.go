package tag

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/emojipick/pkg/app"
	"tableflip.dev/emojipick/pkg/commands/options"
	"tableflip.dev/emojipick/pkg/tags"
)

// Tag shows or replaces the custom tags of one emoji.
type Tag struct {
	Emoji   string
	Tags    []string
	Set     bool
	Output  *options.OutputOptions
	Out     io.Writer
	Service *app.Service
}

func (n *Tag) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not tag, no service")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	e, ok := n.Service.Resolve(n.Emoji)
	if !ok {
		return fmt.Errorf("%w: %q", app.ErrNotFound, n.Emoji)
	}

	if n.Set {
		list := tags.Parse(strings.Join(n.Tags, ","))
		if err := n.Service.SetTags(e.Hexcode, list); err != nil {
			return err
		}
	}
	current, err := n.Service.Tags(e.Hexcode)
	if err != nil {
		return err
	}

	if n.Output != nil && n.Output.JSON {
		if current == nil {
			current = []string{}
		}
		return n.Output.PrintJSON(map[string]interface{}{
			"hexcode": e.Hexcode,
			"emoji":   e.Glyph,
			"tags":    current,
		})
	}

	out := n.Out
	if out == nil {
		out = color.Output
	}
	f := color.New(color.Faint)
	if len(current) == 0 {
		_, _ = fmt.Fprintf(out, "%s %s\n", e.Glyph, f.Sprint("no custom tags"))
		return nil
	}
	_, _ = fmt.Fprintf(out, "%s %s\n", e.Glyph, tags.Join(current))
	return nil
}
