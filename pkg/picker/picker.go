// Package picker holds the selection controller behind the emoji grid: the
// search query, the active category and the multi-select buffer.
//
// The controller never draws anything. A UI layer feeds it input, asks it
// which entries are visible and in what order, and performs the side effects
// (clipboard, paste, hiding) with the text it returns.
package picker

import (
	"sort"
	"strings"

	"tableflip.dev/emojipick/pkg/emoji"
	"tableflip.dev/emojipick/pkg/store"
	"tableflip.dev/emojipick/pkg/tags"
)

const (
	// TipRecents is shown above a non-empty recents list.
	TipRecents = "Recently used emojis"
	// TipRecentsEmpty is shown when there is no history yet.
	TipRecentsEmpty = "Whoa, it's still empty!\nYour most used emojis will show up here"
)

// History is the usage record the recents category is built from.
type History interface {
	History() map[string]store.HistoryEntry
	Increment(hexcode string) error
}

// CustomTags looks up user defined tags.
type CustomTags interface {
	Get(hexcode string, useCache bool) []string
}

// LocalizedTags looks up translated tags.
type LocalizedTags interface {
	Get(locale, hexcode, dataDir string) []string
}

// Config is the subset of settings the controller reads.
type Config struct {
	UseLocalizedTags bool
	MergeEnglishTags bool
	TagsLocale       string
	MouseMultiSelect bool
	DataDir          string
}

// Controller owns the selection state of one picker window. It is not safe
// for concurrent use; all calls are expected from the UI event loop.
type Controller struct {
	cfg        Config
	categories []emoji.Category
	history    History
	custom     CustomTags
	localized  LocalizedTags

	query         string
	category      string
	categoryIndex int
	selection     []emoji.Entry
	listWasSorted bool
}

// New builds a controller browsing the first non-recents category.
func New(cfg Config, categories []emoji.Category, history History, custom CustomTags, localized LocalizedTags) *Controller {
	c := &Controller{
		cfg:        cfg,
		categories: categories,
		history:    history,
		custom:     custom,
		localized:  localized,
	}
	start := 0
	for i, cat := range categories {
		if cat.ID != emoji.Recents {
			start = i
			break
		}
	}
	if len(categories) > 0 {
		c.category = categories[start].ID
		c.categoryIndex = start
	}
	return c
}

// SetConfig replaces the settings the controller reads.
func (c *Controller) SetConfig(cfg Config) {
	c.cfg = cfg
}

// Config returns the current settings.
func (c *Controller) Config() Config {
	return c.cfg
}

// Query returns the active query and whether one is set.
func (c *Controller) Query() (string, bool) {
	return c.query, c.query != ""
}

// Category returns the active category id.
func (c *Controller) Category() string {
	return c.category
}

// CategoryIndex returns the position of the active category.
func (c *Controller) CategoryIndex() int {
	return c.categoryIndex
}

// Categories lists the categories the controller navigates.
func (c *Controller) Categories() []emoji.Category {
	return c.categories
}

// SetQuery sets the search text. Blank text clears the query. It returns true
// when the sort regime changed and the caller has to re-sort its list.
func (c *Controller) SetQuery(text string) bool {
	c.query = strings.TrimSpace(text)
	sorted := c.query != ""
	changed := sorted != c.listWasSorted
	c.listWasSorted = sorted
	return changed
}

// SetCategory switches to category id and clears the query. Unknown ids are
// ignored and reported as false.
func (c *Controller) SetCategory(id string) bool {
	idx := emoji.CategoryIndex(c.categories, id)
	if idx < 0 {
		return false
	}
	c.category = id
	c.categoryIndex = idx
	c.query = ""
	c.listWasSorted = false
	return true
}

// PrevCategory moves one category left, stopping at the first.
func (c *Controller) PrevCategory() bool {
	if c.categoryIndex <= 0 {
		return false
	}
	return c.SetCategory(c.categories[c.categoryIndex-1].ID)
}

// NextCategory moves one category right, stopping at the last.
func (c *Controller) NextCategory() bool {
	if c.categoryIndex >= len(c.categories)-1 {
		return false
	}
	return c.SetCategory(c.categories[c.categoryIndex+1].ID)
}

// ListTip is the hint shown above the grid, empty outside recents.
func (c *Controller) ListTip() string {
	if c.query != "" || c.category != emoji.Recents {
		return ""
	}
	if len(c.historyMap()) > 0 {
		return TipRecents
	}
	return TipRecentsEmpty
}

// Filter reports whether e is visible under the current query or category.
func (c *Controller) Filter(e emoji.Entry) bool {
	if c.query == "" {
		if c.category == emoji.Recents {
			_, ok := c.historyMap()[e.Hexcode]
			return ok
		}
		return e.Group == c.category
	}

	if c.query == e.Glyph {
		return true
	}
	if custom := c.customTags(e.Hexcode); len(custom) > 0 && tags.ListContains(custom, c.query) {
		return true
	}
	if !c.cfg.UseLocalizedTags {
		return tags.ListContains(e.Tags, c.query)
	}

	var localized []string
	if c.cfg.TagsLocale != "" && c.cfg.TagsLocale != "en" && c.localized != nil {
		localized = c.localized.Get(c.cfg.TagsLocale, e.Hexcode, c.cfg.DataDir)
	}
	if c.cfg.MergeEnglishTags {
		return tags.ListContains(localized, c.query) || tags.ListContains(e.Tags, c.query)
	}
	return tags.ListContains(localized, c.query)
}

// Compare orders two visible entries. Negative means a sorts first.
func (c *Controller) Compare(a, b emoji.Entry) int {
	switch {
	case c.category == emoji.Recents:
		h := c.historyMap()
		return compareInt64(h[b.Hexcode].LastUsage, h[a.Hexcode].LastUsage)
	case c.query != "":
		at, bt := len(c.customTags(a.Hexcode)) > 0, len(c.customTags(b.Hexcode)) > 0
		switch {
		case at && !bt:
			return -1
		case !at && bt:
			return 1
		default:
			return 0
		}
	default:
		return a.Order - b.Order
	}
}

// Visible filters entries and orders them with Compare. Entries comparing
// equal keep their input order.
func (c *Controller) Visible(entries []emoji.Entry) []emoji.Entry {
	out := make([]emoji.Entry, 0, len(entries))
	for _, e := range entries {
		if c.Filter(e) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return c.Compare(out[i], out[j]) < 0
	})
	return out
}

// Select appends e to the buffer, records the usage and returns the preview.
func (c *Controller) Select(e emoji.Entry) string {
	c.selection = append(c.selection, e)
	c.increment(e.Hexcode)
	return c.Preview()
}

// DeselectLast pops the most recent selection. It is a no-op on an empty
// buffer.
func (c *Controller) DeselectLast() string {
	if len(c.selection) == 0 {
		return ""
	}
	c.selection = c.selection[:len(c.selection)-1]
	return c.Preview()
}

// Selection returns a copy of the buffer in selection order.
func (c *Controller) Selection() []emoji.Entry {
	return append([]emoji.Entry(nil), c.selection...)
}

// IsSelected reports whether hexcode is anywhere in the buffer.
func (c *Controller) IsSelected(hexcode string) bool {
	for _, e := range c.selection {
		if e.Hexcode == hexcode {
			return true
		}
	}
	return false
}

// Preview is the concatenated buffer.
func (c *Controller) Preview() string {
	var b strings.Builder
	for _, e := range c.selection {
		b.WriteString(e.Glyph)
	}
	return b.String()
}

// Text is the text CommitAndReset would produce, without touching any state.
func (c *Controller) Text(final *emoji.Entry) string {
	text := c.Preview()
	if final != nil {
		text += final.Glyph
	}
	return text
}

// CommitAndReset produces the clipboard text: the buffer followed by final,
// when given. Only final is recorded in history here; buffered entries were
// recorded when selected. All state is cleared.
func (c *Controller) CommitAndReset(final *emoji.Entry) string {
	text := c.Text(final)
	if final != nil {
		c.increment(final.Hexcode)
	}
	c.Reset()
	return text
}

// Reset clears the query and the buffer, as when the window is hidden.
func (c *Controller) Reset() {
	c.selection = nil
	c.query = ""
	c.listWasSorted = false
}

// Click resolves a pointer activation of e. It selects e and returns false,
// or returns true when the caller should commit with e as the final entry.
func (c *Controller) Click(e emoji.Entry, shift bool) bool {
	commit := shift
	if !c.cfg.MouseMultiSelect {
		commit = !shift
	}
	if !commit {
		c.Select(e)
	}
	return commit
}

func (c *Controller) historyMap() map[string]store.HistoryEntry {
	if c.history == nil {
		return nil
	}
	return c.history.History()
}

func (c *Controller) increment(hexcode string) {
	if c.history == nil {
		return
	}
	// History is best effort; a failed write must not lose the selection.
	_ = c.history.Increment(hexcode)
}

func (c *Controller) customTags(hexcode string) []string {
	if c.custom == nil {
		return nil
	}
	return c.custom.Get(hexcode, true)
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
