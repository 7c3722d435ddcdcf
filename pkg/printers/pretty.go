package printers

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/emojipick/pkg/app"
	"tableflip.dev/emojipick/pkg/emoji"
)

type PrettyPrint struct {
	ShowHex bool
	Out     io.Writer
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " emoji")
	default:
		_, _ = c.Fprintln(pp.out(), " emojis")
	}
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

// Entries prints one row per emoji: glyph, name and tags.
func (pp *PrettyPrint) Entries(modifier string, entries ...emoji.Entry) {
	if len(entries) == 0 {
		pp.none()
		return
	}
	y := color.New(color.FgHiYellow, color.Faint)
	f := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.Wrap = true
	for _, e := range entries {
		row := []interface{}{e.Display(modifier), e.Name, f.Sprint(strings.Join(e.Tags, ", "))}
		if pp.ShowHex {
			row = append([]interface{}{y.Sprint(e.Hexcode)}, row...)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Usage prints history rows, most recent first.
func (pp *PrettyPrint) Usage(now time.Time, usage ...app.Usage) {
	if len(usage) == 0 {
		pp.none()
		return
	}
	bold := color.New(color.Bold)
	f := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("", bold.Sprint("Name"), bold.Sprint("Uses"), bold.Sprint("Last used"))
	for _, u := range usage {
		last := time.UnixMilli(u.LastUsage)
		tbl.AddRow(u.Entry.Glyph, u.Entry.Name, u.Count, f.Sprint(Ago(now, last)))
	}
	tbl.RightAlign(2)
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Report prints a usage report grouped by category.
func (pp *PrettyPrint) Report(r app.ReportResult) {
	f := color.New(color.Faint)
	_, _ = f.Fprintf(pp.out(), "%s to %s\n\n", r.Since.Format(time.RFC822), r.Until.Format(time.RFC822))
	if len(r.Sections) == 0 {
		pp.none()
		return
	}
	for _, s := range r.Sections {
		pp.TitleWithCount(s.Category.Icon+" "+s.Category.Title, len(s.Entries))
		tbl := uitable.New()
		tbl.Separator = "  "
		for _, it := range s.Entries {
			tbl.AddRow(it.Entry.Glyph, it.Entry.Name, it.Count)
		}
		tbl.RightAlign(2)
		_, _ = fmt.Fprintln(pp.out(), tbl)
		pp.NewLine()
	}
}

// Categories prints the browsable categories.
func (pp *PrettyPrint) Categories(categories []emoji.Category, counts map[string]int) {
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("", bold.Sprint("ID"), bold.Sprint("Title"), bold.Sprint("Emojis"))
	for _, c := range categories {
		n := ""
		if c.ID != emoji.Recents {
			n = fmt.Sprint(counts[c.ID])
		}
		tbl.AddRow(c.Icon, c.ID, c.Title, n)
	}
	tbl.RightAlign(3)
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Ago renders the distance between then and now in a coarse unit.
func Ago(now, then time.Time) string {
	d := now.Sub(then)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
