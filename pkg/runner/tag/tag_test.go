package tag

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/viper"

	"tableflip.dev/emojipick/pkg/app"
	"tableflip.dev/emojipick/pkg/config"
	"tableflip.dev/emojipick/pkg/emoji"
	"tableflip.dev/emojipick/pkg/store"
)

func newService(t *testing.T) *app.Service {
	t.Helper()
	color.NoColor = true
	p, err := store.Load(store.Dir(t.TempDir()))
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	table := emoji.NewTable([]emoji.Entry{
		{Hexcode: "1F602", Glyph: "😂", Name: "face with tears of joy", Group: "smileys-emotion", Order: 1},
	})
	return app.New(table, p, config.FromViper(viper.New()))
}

func TestTagSetAndShow(t *testing.T) {
	s := newService(t)
	var buf bytes.Buffer
	tg := Tag{Emoji: "😂", Tags: []string{"lol, funny", "rofl"}, Set: true, Out: &buf, Service: s}
	if err := tg.Do(context.Background()); err != nil {
		t.Fatalf("tag: %v", err)
	}
	got, err := s.Tags("1F602")
	if err != nil {
		t.Fatalf("tags: %v", err)
	}
	if want := []string{"lol", "funny", "rofl"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("tags = %v, want %v", got, want)
	}
	if !strings.Contains(buf.String(), "lol") {
		t.Fatalf("unexpected output: %q", buf.String())
	}

	buf.Reset()
	tg = Tag{Emoji: "1f602", Set: true, Out: &buf, Service: s}
	if err := tg.Do(context.Background()); err != nil {
		t.Fatalf("clear tags: %v", err)
	}
	if !strings.Contains(buf.String(), "no custom tags") {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestTagUnknown(t *testing.T) {
	tg := Tag{Emoji: "nope", Service: newService(t)}
	if err := tg.Do(context.Background()); !errors.Is(err, app.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
