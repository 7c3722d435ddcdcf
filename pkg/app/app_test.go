package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"tableflip.dev/emojipick/pkg/clip"
	"tableflip.dev/emojipick/pkg/config"
	"tableflip.dev/emojipick/pkg/emoji"
	"tableflip.dev/emojipick/pkg/paste"
	"tableflip.dev/emojipick/pkg/store"
)

var testEntries = []emoji.Entry{
	{Hexcode: "1F600", Glyph: "😀", Name: "grinning face", Tags: []string{"grinning", "face"}, Group: "smileys-emotion", Order: 1},
	{Hexcode: "1F602", Glyph: "😂", Name: "face with tears of joy", Tags: []string{"joy", "tears", "face"}, Group: "smileys-emotion", Order: 2},
	{Hexcode: "1F44B", Glyph: "👋", Name: "waving hand", Tags: []string{"wave", "hand"}, Group: "people-body", Order: 3,
		Skintones: []emoji.Variant{{Hexcode: "1F44B-1F3FD", Glyph: "👋🏽"}}},
	{Hexcode: "1F34E", Glyph: "🍎", Name: "red apple", Tags: []string{"apple", "red"}, Group: "food-drink", Order: 4},
}

type recordingNotifier struct {
	titles []string
	err    error
}

func (r *recordingNotifier) Show(title, _ string) error {
	r.titles = append(r.titles, title)
	return r.err
}

type recordingPaster struct {
	texts []string
}

func (r *recordingPaster) Paste(_ context.Context, text string) paste.Action {
	r.texts = append(r.texts, text)
	return paste.Typed
}

func newTestService(t *testing.T) (*Service, *clip.Memory) {
	t.Helper()
	return newTestServiceWith(t, testEntries)
}

func newTestServiceWith(t *testing.T, entries []emoji.Entry) (*Service, *clip.Memory) {
	t.Helper()
	t.Setenv("EMOJIPICK_CONFIG_PATH", t.TempDir())

	p, err := store.Load(store.Dir(t.TempDir()))
	require.NoError(t, err)

	s := New(emoji.NewTable(entries), p, config.FromViper(viper.New()))
	mem := &clip.Memory{}
	s.Clipboard = mem
	return s, mem
}

func TestCommitWritesClipboardAndNotifiesOnce(t *testing.T) {
	s, mem := newTestService(t)
	n := &recordingNotifier{}
	s.Notifier = n

	require.NoError(t, s.Commit(context.Background(), "😀"))
	require.NoError(t, s.Commit(context.Background(), "😂"))

	require.Equal(t, "😂", mem.Last())
	require.Equal(t, "😂", s.LastCopied())
	require.Equal(t, []string{firstRunTitle}, n.titles)
	require.False(t, s.Settings().IsFirstRun)
}

func TestCommitEmptyIsNoop(t *testing.T) {
	s, mem := newTestService(t)
	require.NoError(t, s.Commit(context.Background(), ""))
	require.Zero(t, mem.Writes())
	require.Empty(t, s.LastCopied())
}

func TestCommitClipboardFailure(t *testing.T) {
	s, mem := newTestService(t)
	mem.Err = errors.New("no display")
	require.Error(t, s.Commit(context.Background(), "😀"))
	require.Empty(t, s.LastCopied())
}

func TestNotifyFallsBackToLog(t *testing.T) {
	s, _ := newTestService(t)
	n := &recordingNotifier{err: errors.New("no bus")}
	s.Notifier = n
	s.Notify("title", "body")
	require.Len(t, n.titles, 1)
}

func TestAutoPasteUsesLastCopied(t *testing.T) {
	s, _ := newTestService(t)
	require.Equal(t, paste.Skipped, s.AutoPaste(context.Background()))

	p := &recordingPaster{}
	s.Paster = p
	require.NoError(t, s.Commit(context.Background(), "😀😂"))
	require.Equal(t, paste.Typed, s.AutoPaste(context.Background()))
	require.Equal(t, []string{"😀😂"}, p.texts)
}

func TestSearch(t *testing.T) {
	s, _ := newTestService(t)

	got := s.Search("face")
	require.Len(t, got, 2)
	require.Equal(t, "😀", got[0].Glyph)

	require.NoError(t, s.SetTags("1F602", []string{"lol"}))
	got = s.Search("lol")
	require.Len(t, got, 1)
	require.Equal(t, "1F602", got[0].Hexcode)

	require.Empty(t, s.Search("   "))
	require.Len(t, s.Search("🍎"), 1)
}

func TestCopyRecordsHistory(t *testing.T) {
	s, mem := newTestService(t)

	text, err := s.Copy(context.Background(), "😀", "1f44b", "👋🏽")
	require.NoError(t, err)
	require.Equal(t, "😀👋👋🏽", text)
	require.Equal(t, text, mem.Last())

	usage, err := s.History(context.Background())
	require.NoError(t, err)
	require.Len(t, usage, 2)
	counts := map[string]int{}
	for _, u := range usage {
		counts[u.Entry.Hexcode] = u.Count
	}
	require.Equal(t, map[string]int{"1F600": 1, "1F44B": 2}, counts)
}

func TestCopyFailureRecordsNothing(t *testing.T) {
	s, mem := newTestService(t)
	mem.Err = errors.New("no display")

	_, err := s.Copy(context.Background(), "😀", "😂")
	require.Error(t, err)

	usage, err := s.History(context.Background())
	require.NoError(t, err)
	require.Empty(t, usage)
}

func TestCopyUnknown(t *testing.T) {
	s, mem := newTestService(t)
	_, err := s.Copy(context.Background(), "😀", "nope")
	require.True(t, errors.Is(err, ErrNotFound))
	require.Zero(t, mem.Writes())
}

func TestClearHistory(t *testing.T) {
	s, _ := newTestService(t)
	_, err := s.Copy(context.Background(), "😀")
	require.NoError(t, err)
	require.NoError(t, s.ClearHistory(context.Background()))

	usage, err := s.History(context.Background())
	require.NoError(t, err)
	require.Empty(t, usage)
}

func TestTags(t *testing.T) {
	s, _ := newTestService(t)
	require.NoError(t, s.SetTags("😀", []string{"happy", "smile"}))

	got, err := s.Tags("1F600")
	require.NoError(t, err)
	require.Equal(t, []string{"happy", "smile"}, got)

	require.NoError(t, s.SetTags("1F600", nil))
	got, err = s.Tags("1F600")
	require.NoError(t, err)
	require.Empty(t, got)

	require.True(t, errors.Is(s.SetTags("FFFF", []string{"x"}), ErrNotFound))
}

func TestSuggest(t *testing.T) {
	s, _ := newTestService(t)
	require.NoError(t, s.SetTags("1F602", []string{"laughing"}))

	require.Equal(t, []string{"apple"}, s.Suggest("appel", 3))
	require.Equal(t, []string{"laughing"}, s.Suggest("laughin", 1))
	require.Empty(t, s.Suggest("", 3))
	require.Empty(t, s.Suggest("zzzzzzzz", 3))
}

func TestNewControllerUsesTableCategories(t *testing.T) {
	s, _ := newTestService(t)
	c := s.NewController()

	ids := make([]string, 0, len(c.Categories()))
	for _, cat := range c.Categories() {
		ids = append(ids, cat.ID)
	}
	require.Equal(t, []string{emoji.Recents, "smileys-emotion", "people-body", "food-drink"}, ids)
	require.Equal(t, "smileys-emotion", c.Category())
}

func TestReport(t *testing.T) {
	s, _ := newTestService(t)
	_, err := s.Copy(context.Background(), "🍎", "😂", "😂", "😀")
	require.NoError(t, err)

	now := time.Now()
	r, err := s.Report(context.Background(), now.Add(time.Hour), now.Add(-time.Hour))
	require.NoError(t, err)
	require.Equal(t, 3, r.Total)
	require.True(t, r.Since.Before(r.Until))
	require.Len(t, r.Sections, 2)
	require.Equal(t, "smileys-emotion", r.Sections[0].Category.ID)
	require.Equal(t, "😂", r.Sections[0].Entries[0].Entry.Glyph)
	require.Equal(t, 2, r.Sections[0].Entries[0].Count)
	require.Equal(t, "food-drink", r.Sections[1].Category.ID)

	r, err = s.Report(context.Background(), now.Add(-48*time.Hour), now.Add(-24*time.Hour))
	require.NoError(t, err)
	require.Zero(t, r.Total)
	require.Empty(t, r.Sections)
}

func TestReportSkipsEntriesOutsideCategories(t *testing.T) {
	entries := append([]emoji.Entry{
		{Hexcode: "1F3FB", Glyph: "🏻", Name: "light skin tone", Group: "component", Order: 0},
	}, testEntries...)
	s, _ := newTestServiceWith(t, entries)
	_, err := s.Copy(context.Background(), "🏻", "😀")
	require.NoError(t, err)

	now := time.Now()
	r, err := s.Report(context.Background(), now.Add(-time.Hour), now.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, r.Sections, 1)
	require.Equal(t, 1, r.Total)
	require.Equal(t, "😀", r.Sections[0].Entries[0].Entry.Glyph)
}

func TestWatchInvalidatesCaches(t *testing.T) {
	s, _ := newTestService(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := s.Watch(ctx)
	require.NoError(t, err)

	require.Empty(t, s.HistoryService.History())
	require.NoError(t, s.Persistence.Increment("1F600"))

	select {
	case ev := <-events:
		require.Equal(t, store.EventHistoryChanged, ev.Type)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for store event")
	}
	require.Contains(t, s.HistoryService.History(), "1F600")
}
