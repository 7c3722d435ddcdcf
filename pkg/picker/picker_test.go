package picker

import (
	"testing"

	"tableflip.dev/emojipick/pkg/emoji"
	"tableflip.dev/emojipick/pkg/store"
)

type fakeHistory struct {
	entries    map[string]store.HistoryEntry
	increments map[string]int
	clock      int64
}

func newFakeHistory() *fakeHistory {
	return &fakeHistory{
		entries:    make(map[string]store.HistoryEntry),
		increments: make(map[string]int),
	}
}

func (f *fakeHistory) History() map[string]store.HistoryEntry {
	return f.entries
}

func (f *fakeHistory) Increment(hexcode string) error {
	f.clock++
	f.increments[hexcode]++
	h := f.entries[hexcode]
	h.Hexcode = hexcode
	h.Count++
	h.LastUsage = f.clock
	f.entries[hexcode] = h
	return nil
}

type fakeTags map[string][]string

func (f fakeTags) Get(hexcode string, _ bool) []string {
	return f[hexcode]
}

type fakeLocalized map[string]map[string][]string

func (f fakeLocalized) Get(locale, hexcode, _ string) []string {
	return f[locale][hexcode]
}

var (
	grinning = emoji.Entry{Hexcode: "1F600", Glyph: "😀", Tags: []string{"grinning", "face"}, Group: "smileys-emotion", Order: 1}
	joy      = emoji.Entry{Hexcode: "1F602", Glyph: "😂", Tags: []string{"joy", "tears", "face"}, Group: "smileys-emotion", Order: 2}
	cool     = emoji.Entry{Hexcode: "1F60E", Glyph: "😎", Tags: []string{"sunglasses", "cool"}, Group: "smileys-emotion", Order: 3}
	wave     = emoji.Entry{Hexcode: "1F44B", Glyph: "👋", Tags: []string{"wave", "hand"}, Group: "people-body", Order: 10}
	apple    = emoji.Entry{Hexcode: "1F34E", Glyph: "🍎", Tags: []string{"apple", "red"}, Group: "food-drink", Order: 20}

	allEntries = []emoji.Entry{apple, wave, cool, joy, grinning}
)

func newController(cfg Config, h *fakeHistory, custom fakeTags, localized fakeLocalized) *Controller {
	return New(cfg, emoji.DefaultCategories(), h, custom, localized)
}

func glyphsOf(entries []emoji.Entry) string {
	s := ""
	for _, e := range entries {
		s += e.Glyph
	}
	return s
}

func TestNewStartsOnFirstRealCategory(t *testing.T) {
	c := newController(Config{}, newFakeHistory(), nil, nil)
	if c.Category() != "smileys-emotion" {
		t.Fatalf("expected smileys-emotion, got %s", c.Category())
	}
	if c.CategoryIndex() != 1 {
		t.Fatalf("expected index 1, got %d", c.CategoryIndex())
	}
}

func TestFilterByCategoryMatchesGroup(t *testing.T) {
	c := newController(Config{}, newFakeHistory(), nil, nil)
	for _, cat := range emoji.DefaultCategories() {
		if cat.ID == emoji.Recents {
			continue
		}
		c.SetCategory(cat.ID)
		for _, e := range allEntries {
			if got, want := c.Filter(e), e.Group == cat.ID; got != want {
				t.Fatalf("category %s entry %s: got %v want %v", cat.ID, e.Glyph, got, want)
			}
		}
	}
}

func TestFilterRecentsMatchesHistoryMembership(t *testing.T) {
	h := newFakeHistory()
	_ = h.Increment(wave.Hexcode)
	c := newController(Config{}, h, nil, nil)
	c.SetCategory(emoji.Recents)

	for _, e := range allEntries {
		_, inHistory := h.entries[e.Hexcode]
		if got := c.Filter(e); got != inHistory {
			t.Fatalf("entry %s: got %v want %v", e.Glyph, got, inHistory)
		}
	}
}

func TestFilterExactGlyphIgnoresTagConfig(t *testing.T) {
	configs := []Config{
		{},
		{UseLocalizedTags: true, TagsLocale: "it"},
		{UseLocalizedTags: true, MergeEnglishTags: true, TagsLocale: "it"},
	}
	for _, cfg := range configs {
		c := newController(cfg, newFakeHistory(), nil, fakeLocalized{})
		c.SetQuery("😀")
		if !c.Filter(grinning) {
			t.Fatalf("config %+v: exact glyph should match", cfg)
		}
		if c.Filter(joy) {
			t.Fatalf("config %+v: other glyph should not match", cfg)
		}
	}
}

func TestFilterQueryOverridesCategory(t *testing.T) {
	c := newController(Config{}, newFakeHistory(), nil, nil)
	c.SetCategory("food-drink")
	c.SetQuery("wave")
	if !c.Filter(wave) {
		t.Fatalf("query should match outside the active category")
	}
	if c.Filter(apple) {
		t.Fatalf("category member should not match an unrelated query")
	}
}

func TestFilterCustomTags(t *testing.T) {
	c := newController(Config{}, newFakeHistory(), fakeTags{apple.Hexcode: {"lunch"}}, nil)
	c.SetQuery("lunch")
	if !c.Filter(apple) {
		t.Fatalf("custom tag should match")
	}
	if c.Filter(joy) {
		t.Fatalf("entry without custom tag should not match")
	}
}

func TestFilterLocalizedTags(t *testing.T) {
	localized := fakeLocalized{"it": {joy.Hexcode: {"lacrime", "gioia"}}}

	c := newController(Config{UseLocalizedTags: true, TagsLocale: "it"}, newFakeHistory(), nil, localized)
	c.SetQuery("gioia")
	if !c.Filter(joy) {
		t.Fatalf("localized tag should match")
	}
	c.SetQuery("tears")
	if c.Filter(joy) {
		t.Fatalf("english tags are ignored without merge")
	}

	c.SetConfig(Config{UseLocalizedTags: true, MergeEnglishTags: true, TagsLocale: "it"})
	if !c.Filter(joy) {
		t.Fatalf("english tags should match when merged")
	}

	c.SetConfig(Config{})
	c.SetQuery("gioia")
	if c.Filter(joy) {
		t.Fatalf("localized tags are ignored when disabled")
	}
}

func TestFilterLocalizedEnglishLocaleUsesNoTranslation(t *testing.T) {
	localized := fakeLocalized{"en": {joy.Hexcode: {"special"}}}
	c := newController(Config{UseLocalizedTags: true, MergeEnglishTags: true, TagsLocale: "en"}, newFakeHistory(), nil, localized)
	c.SetQuery("special")
	if c.Filter(joy) {
		t.Fatalf("english locale should not consult the localized lookup")
	}
	c.SetQuery("joy")
	if !c.Filter(joy) {
		t.Fatalf("merged english tags should still match")
	}
}

func TestCompareDefaultIsOrderDifference(t *testing.T) {
	c := newController(Config{}, newFakeHistory(), nil, nil)
	for _, a := range allEntries {
		for _, b := range allEntries {
			if got := c.Compare(a, b); got != a.Order-b.Order {
				t.Fatalf("Compare(%s,%s) = %d want %d", a.Glyph, b.Glyph, got, a.Order-b.Order)
			}
		}
	}
}

func TestCompareRecentsDescendingLastUsage(t *testing.T) {
	h := newFakeHistory()
	h.entries[joy.Hexcode] = store.HistoryEntry{Hexcode: joy.Hexcode, LastUsage: 100}
	h.entries[wave.Hexcode] = store.HistoryEntry{Hexcode: wave.Hexcode, LastUsage: 300}
	h.entries[apple.Hexcode] = store.HistoryEntry{Hexcode: apple.Hexcode, LastUsage: 200}
	c := newController(Config{}, h, nil, nil)
	c.SetCategory(emoji.Recents)

	if got := glyphsOf(c.Visible(allEntries)); got != "👋🍎😂" {
		t.Fatalf("unexpected recents order %q", got)
	}
	if c.Compare(joy, cool) >= 0 {
		t.Fatalf("present entry should sort before absent entry")
	}
	if c.Compare(cool, joy) <= 0 {
		t.Fatalf("absent entry should sort after present entry")
	}
	if c.Compare(cool, grinning) != 0 {
		t.Fatalf("two absent entries compare equal")
	}
}

func TestSearchOnRecentsKeepsRecencyOrder(t *testing.T) {
	h := newFakeHistory()
	h.entries[grinning.Hexcode] = store.HistoryEntry{Hexcode: grinning.Hexcode, LastUsage: 1}
	h.entries[joy.Hexcode] = store.HistoryEntry{Hexcode: joy.Hexcode, LastUsage: 2}
	custom := fakeTags{grinning.Hexcode: {"face"}}
	c := newController(Config{}, h, custom, nil)
	c.SetCategory(emoji.Recents)
	c.SetQuery("face")

	if got := glyphsOf(c.Visible([]emoji.Entry{grinning, joy, cool})); got != "😂😀" {
		t.Fatalf("unexpected order %q", got)
	}
	if c.Compare(cool, grinning) <= 0 {
		t.Fatalf("unused entry should sort after used ones while searching recents")
	}
}

func TestText(t *testing.T) {
	h := newFakeHistory()
	c := newController(Config{}, h, nil, nil)
	c.Select(grinning)
	c.SetQuery("cool")

	if got := c.Text(&cool); got != "😀😎" {
		t.Fatalf("text = %q", got)
	}
	if got := c.Text(nil); got != "😀" {
		t.Fatalf("text without final = %q", got)
	}
	if glyphsOf(c.Selection()) != "😀" || h.increments[cool.Hexcode] != 0 {
		t.Fatalf("Text must not change the buffer or history")
	}
	if q, ok := c.Query(); !ok || q != "cool" {
		t.Fatalf("Text must not clear the query, got %q %v", q, ok)
	}
}

func TestCompareQueryPutsCustomTaggedFirst(t *testing.T) {
	custom := fakeTags{cool.Hexcode: {"face"}}
	c := newController(Config{}, newFakeHistory(), custom, nil)
	c.SetQuery("face")

	got := glyphsOf(c.Visible([]emoji.Entry{grinning, joy, cool}))
	if got != "😎😀😂" {
		t.Fatalf("unexpected order %q", got)
	}
}

func TestSetQueryReportsSortRegimeChange(t *testing.T) {
	c := newController(Config{}, newFakeHistory(), nil, nil)
	if !c.SetQuery("face") {
		t.Fatalf("entering search should change sort regime")
	}
	if c.SetQuery("fac") {
		t.Fatalf("refining search keeps the regime")
	}
	if !c.SetQuery("   ") {
		t.Fatalf("clearing search should change sort regime")
	}
	if _, ok := c.Query(); ok {
		t.Fatalf("blank query should be unset")
	}
}

func TestSetCategoryClearsQuery(t *testing.T) {
	c := newController(Config{}, newFakeHistory(), nil, nil)
	c.SetQuery("face")
	if !c.SetCategory("flags") {
		t.Fatalf("known category rejected")
	}
	if _, ok := c.Query(); ok {
		t.Fatalf("query should be cleared")
	}
	if c.SetCategory("nope") {
		t.Fatalf("unknown category accepted")
	}
	if c.Category() != "flags" {
		t.Fatalf("unknown category changed state")
	}
}

func TestCategoryNavigationClamps(t *testing.T) {
	c := newController(Config{}, newFakeHistory(), nil, nil)
	cats := emoji.DefaultCategories()

	c.SetCategory(cats[0].ID)
	if c.PrevCategory() {
		t.Fatalf("prev at first category should not move")
	}
	if !c.NextCategory() || c.Category() != cats[1].ID {
		t.Fatalf("next should move to %s, at %s", cats[1].ID, c.Category())
	}

	c.SetCategory(cats[len(cats)-1].ID)
	if c.NextCategory() {
		t.Fatalf("next at last category should not move")
	}
	if !c.PrevCategory() || c.CategoryIndex() != len(cats)-2 {
		t.Fatalf("prev should move left")
	}
}

func TestSelectThenDeselectIsInverse(t *testing.T) {
	c := newController(Config{}, newFakeHistory(), nil, nil)
	c.Select(joy)
	before := glyphsOf(c.Selection())

	for _, e := range allEntries {
		c.Select(e)
		c.DeselectLast()
		if got := glyphsOf(c.Selection()); got != before {
			t.Fatalf("after select/deselect of %s got %q want %q", e.Glyph, got, before)
		}
	}
}

func TestSelectAllowsDuplicatesAndIncrementsHistory(t *testing.T) {
	h := newFakeHistory()
	c := newController(Config{}, h, nil, nil)
	if got := c.Select(joy); got != "😂" {
		t.Fatalf("unexpected preview %q", got)
	}
	if got := c.Select(joy); got != "😂😂" {
		t.Fatalf("unexpected preview %q", got)
	}
	if h.increments[joy.Hexcode] != 2 {
		t.Fatalf("expected two increments, got %d", h.increments[joy.Hexcode])
	}
	if !c.IsSelected(joy.Hexcode) || c.IsSelected(cool.Hexcode) {
		t.Fatalf("IsSelected mismatch")
	}
}

func TestDeselectLastOnEmptyIsNoop(t *testing.T) {
	c := newController(Config{}, newFakeHistory(), nil, nil)
	if got := c.DeselectLast(); got != "" {
		t.Fatalf("expected empty preview, got %q", got)
	}
	if got := c.DeselectLast(); got != "" {
		t.Fatalf("expected empty preview, got %q", got)
	}
	c.Select(joy)
	if got := c.DeselectLast(); got != "" {
		t.Fatalf("expected empty preview after popping last, got %q", got)
	}
}

func TestDeselectLastIsStackOrder(t *testing.T) {
	c := newController(Config{}, newFakeHistory(), nil, nil)
	c.Select(grinning)
	c.Select(joy)
	c.Select(cool)
	if got := c.DeselectLast(); got != "😀😂" {
		t.Fatalf("unexpected preview %q", got)
	}
}

func TestCommitAndResetWithSelection(t *testing.T) {
	h := newFakeHistory()
	c := newController(Config{}, h, nil, nil)
	c.Select(grinning)
	c.Select(joy)
	c.SetQuery("face")

	if got := c.CommitAndReset(nil); got != "😀😂" {
		t.Fatalf("unexpected commit text %q", got)
	}
	if len(c.Selection()) != 0 {
		t.Fatalf("selection not cleared")
	}
	if _, ok := c.Query(); ok {
		t.Fatalf("query not cleared")
	}
	if h.increments[grinning.Hexcode] != 1 || h.increments[joy.Hexcode] != 1 {
		t.Fatalf("commit should not re-increment buffered entries: %v", h.increments)
	}
}

func TestCommitAndResetDirectEntry(t *testing.T) {
	h := newFakeHistory()
	c := newController(Config{}, h, nil, nil)
	final := cool
	if got := c.CommitAndReset(&final); got != "😎" {
		t.Fatalf("unexpected commit text %q", got)
	}
	if h.increments[cool.Hexcode] != 1 {
		t.Fatalf("expected one increment, got %d", h.increments[cool.Hexcode])
	}
}

func TestCommitAndResetAppendsTrailingGlyph(t *testing.T) {
	c := newController(Config{}, newFakeHistory(), nil, nil)
	c.Select(joy)
	final := wave
	if got := c.CommitAndReset(&final); got != "😂👋" {
		t.Fatalf("unexpected commit text %q", got)
	}
}

func TestSelectionSurvivesModeSwitch(t *testing.T) {
	c := newController(Config{}, newFakeHistory(), nil, nil)
	c.Select(joy)
	c.SetQuery("wave")
	c.SetCategory("flags")
	if c.Preview() != "😂" {
		t.Fatalf("selection lost across mode switch: %q", c.Preview())
	}
}

func TestClickSemantics(t *testing.T) {
	cases := []struct {
		multi, shift bool
		commit       bool
	}{
		{multi: false, shift: false, commit: true},
		{multi: false, shift: true, commit: false},
		{multi: true, shift: false, commit: false},
		{multi: true, shift: true, commit: true},
	}
	for _, tc := range cases {
		c := newController(Config{MouseMultiSelect: tc.multi}, newFakeHistory(), nil, nil)
		if got := c.Click(joy, tc.shift); got != tc.commit {
			t.Fatalf("multi=%v shift=%v: commit=%v want %v", tc.multi, tc.shift, got, tc.commit)
		}
		wantSelected := !tc.commit
		if c.IsSelected(joy.Hexcode) != wantSelected {
			t.Fatalf("multi=%v shift=%v: selected=%v want %v", tc.multi, tc.shift, !wantSelected, wantSelected)
		}
	}
}

func TestListTip(t *testing.T) {
	h := newFakeHistory()
	c := newController(Config{}, h, nil, nil)
	if c.ListTip() != "" {
		t.Fatalf("no tip outside recents")
	}
	c.SetCategory(emoji.Recents)
	if c.ListTip() != TipRecentsEmpty {
		t.Fatalf("expected empty-history tip")
	}
	_ = h.Increment(joy.Hexcode)
	if c.ListTip() != TipRecents {
		t.Fatalf("expected recents tip")
	}
	c.SetQuery("joy")
	if c.ListTip() != "" {
		t.Fatalf("no tip while searching")
	}
}

func TestNilCollaborators(t *testing.T) {
	c := New(Config{}, emoji.DefaultCategories(), nil, nil, nil)
	c.SetCategory(emoji.Recents)
	if c.Filter(joy) {
		t.Fatalf("recents without history should be empty")
	}
	c.SetQuery("joy")
	if !c.Filter(joy) {
		t.Fatalf("base tags should still match")
	}
	if got := c.CommitAndReset(&joy); got != "😂" {
		t.Fatalf("unexpected commit %q", got)
	}
}
