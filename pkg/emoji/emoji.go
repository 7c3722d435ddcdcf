// Package emoji holds the static emoji table the picker browses.
package emoji

import (
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Variant is a skintone-qualified rendition of an entry.
type Variant struct {
	Hexcode string `json:"hexcode"`
	Glyph   string `json:"emoji"`
}

// Entry is one selectable glyph. Entries are never mutated after the table
// is built.
type Entry struct {
	Hexcode   string    `json:"hexcode"`
	Glyph     string    `json:"emoji"`
	Name      string    `json:"annotation,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
	Group     string    `json:"group"`
	SubGroup  string    `json:"subgroup,omitempty"`
	Order     int       `json:"order"`
	Skintones []Variant `json:"skintones,omitempty"`
}

// HasSkintones reports whether the entry has skintone variants.
func (e Entry) HasSkintones() bool {
	return len(e.Skintones) > 0
}

// Display returns the glyph to render for the given skintone modifier, e.g.
// "1F3FB". An empty modifier, or one the entry has no variant for, yields the
// base glyph.
func (e Entry) Display(modifier string) string {
	if modifier == "" {
		return e.Glyph
	}
	suffix := "-" + strings.ToUpper(modifier)
	for _, v := range e.Skintones {
		if strings.Contains(v.Hexcode, suffix) {
			return v.Glyph
		}
	}
	return e.Glyph
}

// Width is the number of terminal cells the glyph occupies.
func (e Entry) Width() int {
	w := runewidth.StringWidth(e.Glyph)
	if w < 2 {
		// Most terminals draw emoji presentation sequences two cells wide
		// even when the base code point is narrow.
		return 2
	}
	return w
}

// Table is the read-only emoji catalog.
type Table struct {
	entries    []Entry
	byHex      map[string]int
	byGlyph    map[string]int
	categories []Category
}

// NewTable indexes entries. The slice is copied and ordered by Order.
func NewTable(entries []Entry) *Table {
	list := make([]Entry, len(entries))
	copy(list, entries)
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Order < list[j].Order
	})

	t := &Table{
		entries: list,
		byHex:   make(map[string]int, len(list)),
		byGlyph: make(map[string]int, len(list)),
	}
	for i, e := range list {
		t.byHex[normalizeHex(e.Hexcode)] = i
		t.byGlyph[e.Glyph] = i
		for _, v := range e.Skintones {
			if _, ok := t.byGlyph[v.Glyph]; !ok {
				t.byGlyph[v.Glyph] = i
			}
		}
	}
	t.categories = categoriesFor(list)
	return t
}

// Entries returns the entries in display order. Callers must not modify the
// returned slice.
func (t *Table) Entries() []Entry {
	return t.entries
}

// Len is the number of base entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// Lookup finds an entry by hexcode. Case and separators ("-", " ", "_") are
// ignored.
func (t *Table) Lookup(hexcode string) (Entry, bool) {
	i, ok := t.byHex[normalizeHex(hexcode)]
	if !ok {
		return Entry{}, false
	}
	return t.entries[i], true
}

// ByGlyph finds the entry owning glyph. Skintone variants resolve to their
// base entry.
func (t *Table) ByGlyph(glyph string) (Entry, bool) {
	i, ok := t.byGlyph[glyph]
	if !ok {
		return Entry{}, false
	}
	return t.entries[i], true
}

// Categories lists the browsable categories, recents first.
func (t *Table) Categories() []Category {
	return t.categories
}

func normalizeHex(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "-", "_", "-").Replace(s)
}
