package app

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"
	"github.com/pkg/errors"
	jww "github.com/spf13/jwalterweatherman"

	"tableflip.dev/emojipick/pkg/config"
	"tableflip.dev/emojipick/pkg/emoji"
	"tableflip.dev/emojipick/pkg/paste"
	"tableflip.dev/emojipick/pkg/picker"
	"tableflip.dev/emojipick/pkg/store"
	"tableflip.dev/emojipick/pkg/tags"
)

const (
	firstRunTitle = "Copied!"
	firstRunBody  = "I have copied the emoji to the clipboard. You can now paste it in any input field."
)

var (
	// ErrNotFound is returned when a glyph or hexcode is not in the table.
	ErrNotFound = errors.New("app: emoji not found")
	// ErrNoPersistence is returned by operations that need the store.
	ErrNoPersistence = errors.New("app: no persistence configured")
)

// Notifier raises a desktop notification.
type Notifier interface {
	Show(title, body string) error
}

// Paster pastes the last copied text into the focused application.
type Paster interface {
	Paste(ctx context.Context, text string) paste.Action
}

// Clipboard receives committed text.
type Clipboard interface {
	SetText(text string) error
}

// Service provides the operations shared by the picker UI and the CLI verbs.
// It owns the emoji table, the usage history and the tag services so both
// front ends see the same caches.
type Service struct {
	Table          *emoji.Table
	Persistence    store.Persistence
	HistoryService *store.HistoryService
	CustomTags     *tags.Custom
	Localized      *tags.Localized
	Config         *config.Store
	Clipboard      Clipboard
	Notifier       Notifier
	Paster         Paster

	mu         sync.Mutex
	lastCopied string
}

// New wires the history and tag services on top of p.
func New(table *emoji.Table, p store.Persistence, cfg *config.Store) *Service {
	s := &Service{
		Table:       table,
		Persistence: p,
		Localized:   tags.NewLocalized(),
		Config:      cfg,
	}
	if p != nil {
		s.HistoryService = store.NewHistoryService(p)
		s.CustomTags = tags.NewCustom(p)
	}
	return s
}

// Settings returns the current configuration, or the defaults when no
// config store is attached.
func (s *Service) Settings() config.Settings {
	if s.Config == nil {
		return config.Settings{TagsLocale: "en", GridColumns: 8}
	}
	return s.Config.Settings()
}

// PickerConfig is the part of the settings the selection controller reads.
func (s *Service) PickerConfig() picker.Config {
	set := s.Settings()
	return picker.Config{
		UseLocalizedTags: set.UseLocalizedTags,
		MergeEnglishTags: set.MergeEnglishTags,
		TagsLocale:       set.TagsLocale,
		MouseMultiSelect: set.MouseMultiSelect,
		DataDir:          set.DataDir,
	}
}

// NewController returns a selection controller bound to the service caches.
func (s *Service) NewController() *picker.Controller {
	var (
		history picker.History
		custom  picker.CustomTags
	)
	if s.HistoryService != nil {
		history = s.HistoryService
	}
	if s.CustomTags != nil {
		custom = s.CustomTags
	}
	return picker.New(s.PickerConfig(), s.categories(), history, custom, s.Localized)
}

// Commit places text on the clipboard and remembers it for AutoPaste. The
// first commit ever also raises a notification explaining what happened.
func (s *Service) Commit(ctx context.Context, text string) error {
	if text == "" {
		return nil
	}
	if s.Clipboard == nil {
		return errors.New("app: no clipboard configured")
	}
	if err := s.Clipboard.SetText(text); err != nil {
		return errors.Wrap(err, "app: copy to clipboard")
	}

	s.mu.Lock()
	s.lastCopied = text
	s.mu.Unlock()

	if s.Config != nil && s.Config.Settings().IsFirstRun {
		s.Notify(firstRunTitle, firstRunBody)
		if err := s.Config.ClearFirstRun(); err != nil {
			jww.WARN.Printf("app: clear first run: %v", err)
		}
	}
	return nil
}

// LastCopied is the text of the most recent commit.
func (s *Service) LastCopied() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastCopied
}

// AutoPaste pastes the last committed text when auto-paste is enabled.
func (s *Service) AutoPaste(ctx context.Context) paste.Action {
	if s.Paster == nil {
		return paste.Skipped
	}
	action := s.Paster.Paste(ctx, s.LastCopied())
	jww.DEBUG.Printf("app: auto paste %s", action)
	return action
}

// Notify shows a desktop notification, falling back to the log.
func (s *Service) Notify(title, body string) {
	if s.Notifier != nil {
		err := s.Notifier.Show(title, body)
		if err == nil {
			return
		}
		jww.WARN.Printf("app: notify: %v", err)
	}
	jww.INFO.Printf("%s %s", title, body)
}

// Search returns the entries matching query in picker order.
func (s *Service) Search(query string) []emoji.Entry {
	if s.Table == nil || strings.TrimSpace(query) == "" {
		return nil
	}
	c := s.NewController()
	c.SetQuery(query)
	return c.Visible(s.Table.Entries())
}

// Resolve finds an entry by glyph, skintone variant glyph or hexcode.
func (s *Service) Resolve(arg string) (emoji.Entry, bool) {
	if s.Table == nil {
		return emoji.Entry{}, false
	}
	if e, ok := s.Table.ByGlyph(arg); ok {
		return e, true
	}
	return s.Table.Lookup(arg)
}

// Copy commits the concatenation of args, recording each one in history
// the way a multi-select commit does. Nothing is recorded when the clipboard
// write fails.
func (s *Service) Copy(ctx context.Context, args ...string) (string, error) {
	entries := make([]emoji.Entry, 0, len(args))
	for _, arg := range args {
		e, ok := s.Resolve(arg)
		if !ok {
			return "", errors.Wrapf(ErrNotFound, "%q", arg)
		}
		if e.HasSkintones() && arg != e.Glyph {
			// Keep the skintone the caller asked for.
			for _, v := range e.Skintones {
				if v.Glyph == arg {
					e.Glyph = v.Glyph
				}
			}
		}
		entries = append(entries, e)
	}
	if len(entries) == 0 {
		return "", nil
	}

	var b strings.Builder
	for _, e := range entries {
		b.WriteString(e.Glyph)
	}
	text := b.String()
	if err := s.Commit(ctx, text); err != nil {
		return "", err
	}

	c := s.NewController()
	for _, e := range entries[:len(entries)-1] {
		c.Select(e)
	}
	last := entries[len(entries)-1]
	return c.CommitAndReset(&last), nil
}

// Usage pairs an entry with its history record.
type Usage struct {
	Entry emoji.Entry
	store.HistoryEntry
}

// History lists used entries, most recent first. Hexcodes no longer in the
// table are skipped.
func (s *Service) History(ctx context.Context) ([]Usage, error) {
	if s.HistoryService == nil || s.Table == nil {
		return nil, ErrNoPersistence
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []Usage
	for hex, h := range s.HistoryService.History() {
		e, ok := s.Table.Lookup(hex)
		if !ok {
			continue
		}
		out = append(out, Usage{Entry: e, HistoryEntry: h})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].LastUsage != out[j].LastUsage {
			return out[i].LastUsage > out[j].LastUsage
		}
		return out[i].Entry.Order < out[j].Entry.Order
	})
	return out, nil
}

// ClearHistory forgets all usage.
func (s *Service) ClearHistory(ctx context.Context) error {
	if s.HistoryService == nil {
		return ErrNoPersistence
	}
	return s.HistoryService.Clear(ctx)
}

// Tags returns the custom tags of hexcode.
func (s *Service) Tags(hexcode string) ([]string, error) {
	e, err := s.lookup(hexcode)
	if err != nil {
		return nil, err
	}
	if s.CustomTags == nil {
		return nil, ErrNoPersistence
	}
	return s.CustomTags.Get(e.Hexcode, false), nil
}

// SetTags replaces the custom tags of hexcode. No tags removes them.
func (s *Service) SetTags(hexcode string, list []string) error {
	e, err := s.lookup(hexcode)
	if err != nil {
		return err
	}
	if s.CustomTags == nil {
		return ErrNoPersistence
	}
	return s.CustomTags.Set(e.Hexcode, list)
}

// Suggest returns up to n known tags closest to query by edit distance. It
// is meant for searches that matched nothing.
func (s *Service) Suggest(query string, n int) []string {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || n <= 0 || s.Table == nil {
		return nil
	}

	type candidate struct {
		tag  string
		dist int
	}
	maxDist := len([]rune(query))/2 + 1
	seen := make(map[string]bool)
	var found []candidate
	consider := func(tag string) {
		tag = strings.ToLower(tag)
		if tag == "" || seen[tag] {
			return
		}
		seen[tag] = true
		if d := levenshtein.ComputeDistance(query, tag); d <= maxDist {
			found = append(found, candidate{tag: tag, dist: d})
		}
	}

	for _, e := range s.Table.Entries() {
		for _, t := range e.Tags {
			consider(t)
		}
	}
	if s.Persistence != nil {
		for _, list := range s.Persistence.AllCustomTags(context.Background()) {
			for _, t := range list {
				consider(t)
			}
		}
	}

	sort.Slice(found, func(i, j int) bool {
		if found[i].dist != found[j].dist {
			return found[i].dist < found[j].dist
		}
		return found[i].tag < found[j].tag
	})
	if len(found) > n {
		found = found[:n]
	}
	out := make([]string, len(found))
	for i, c := range found {
		out[i] = c.tag
	}
	return out
}

// Watch drops the history and tag caches whenever another process changes
// the store, then forwards the event. The channel closes with ctx.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	in, err := s.Persistence.Watch(ctx)
	if err != nil {
		return nil, err
	}
	out := make(chan store.Event, 16)
	go func() {
		defer close(out)
		for ev := range in {
			s.invalidate(ev)
			select {
			case out <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

func (s *Service) invalidate(ev store.Event) {
	jww.DEBUG.Printf("app: store changed (%s %s)", ev.Type, ev.Hexcode)
	switch ev.Type {
	case store.EventHistoryChanged:
		if s.HistoryService != nil {
			s.HistoryService.Invalidate()
		}
	case store.EventTagsChanged:
		if s.CustomTags != nil {
			s.CustomTags.Invalidate()
		}
	default:
		if s.HistoryService != nil {
			s.HistoryService.Invalidate()
		}
		if s.CustomTags != nil {
			s.CustomTags.Invalidate()
		}
	}
}

func (s *Service) lookup(hexcode string) (emoji.Entry, error) {
	e, ok := s.Resolve(hexcode)
	if !ok {
		return emoji.Entry{}, errors.Wrapf(ErrNotFound, "%q", hexcode)
	}
	return e, nil
}

func (s *Service) categories() []emoji.Category {
	if s.Table == nil {
		return emoji.DefaultCategories()
	}
	return s.Table.Categories()
}
