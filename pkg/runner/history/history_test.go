package history

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/viper"

	"tableflip.dev/emojipick/pkg/app"
	"tableflip.dev/emojipick/pkg/clip"
	"tableflip.dev/emojipick/pkg/config"
	"tableflip.dev/emojipick/pkg/emoji"
	"tableflip.dev/emojipick/pkg/store"
)

func newService(t *testing.T) *app.Service {
	t.Helper()
	color.NoColor = true
	t.Setenv("EMOJIPICK_CONFIG_PATH", t.TempDir())
	p, err := store.Load(store.Dir(t.TempDir()))
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	table := emoji.NewTable([]emoji.Entry{
		{Hexcode: "1F600", Glyph: "😀", Name: "grinning face", Group: "smileys-emotion", Order: 1},
		{Hexcode: "1F34E", Glyph: "🍎", Name: "red apple", Group: "food-drink", Order: 2},
	})
	s := app.New(table, p, config.FromViper(viper.New()))
	s.Clipboard = &clip.Memory{}
	if _, err := s.Copy(context.Background(), "🍎", "😀", "😀"); err != nil {
		t.Fatalf("copy: %v", err)
	}
	return s
}

func TestHistoryList(t *testing.T) {
	var buf bytes.Buffer
	h := History{Out: &buf, Service: newService(t)}
	if err := h.Do(context.Background()); err != nil {
		t.Fatalf("history: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "2 emojis") || !strings.Contains(out, "grinning face") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestHistoryReport(t *testing.T) {
	var buf bytes.Buffer
	h := History{Since: 24 * time.Hour, Out: &buf, Service: newService(t)}
	if err := h.Do(context.Background()); err != nil {
		t.Fatalf("report: %v", err)
	}
	out := buf.String()
	smileys := strings.Index(out, "Smileys & Emotion")
	food := strings.Index(out, "Food & Drink")
	if smileys < 0 || food < 0 || smileys > food {
		t.Fatalf("expected sections in category order:\n%s", out)
	}
}

func TestHistoryClear(t *testing.T) {
	s := newService(t)
	var buf bytes.Buffer
	h := History{Clear: true, Out: &buf, Service: s}
	if err := h.Do(context.Background()); err != nil {
		t.Fatalf("clear: %v", err)
	}
	usage, err := s.History(context.Background())
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(usage) != 0 {
		t.Fatalf("expected empty history, got %d", len(usage))
	}
}
