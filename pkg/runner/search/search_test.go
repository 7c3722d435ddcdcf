package search

import (
	"bytes"
	"context"
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
		{Hexcode: "1F600", Glyph: "😀", Name: "grinning face", Tags: []string{"grinning", "face"}, Group: "smileys-emotion", Order: 1},
		{Hexcode: "1F34E", Glyph: "🍎", Name: "red apple", Tags: []string{"apple", "red"}, Group: "food-drink", Order: 2},
	})
	return app.New(table, p, config.FromViper(viper.New()))
}

func TestSearchPrintsMatches(t *testing.T) {
	var buf bytes.Buffer
	s := Search{Query: "apple", Out: &buf, Service: newService(t)}
	if err := s.Do(context.Background()); err != nil {
		t.Fatalf("search: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "🍎") || strings.Contains(out, "😀") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestSearchSuggests(t *testing.T) {
	var buf bytes.Buffer
	s := Search{Query: "appel", Out: &buf, Service: newService(t)}
	if err := s.Do(context.Background()); err != nil {
		t.Fatalf("search: %v", err)
	}
	if !strings.Contains(buf.String(), "Did you mean: apple?") {
		t.Fatalf("expected a suggestion:\n%s", buf.String())
	}
}

func TestSearchLimit(t *testing.T) {
	var buf bytes.Buffer
	s := Search{Query: "e", Limit: 1, Out: &buf, Service: newService(t)}
	if err := s.Do(context.Background()); err != nil {
		t.Fatalf("search: %v", err)
	}
	if !strings.Contains(buf.String(), "1 emoji") {
		t.Fatalf("expected one result:\n%s", buf.String())
	}
}

func TestSearchNoService(t *testing.T) {
	s := Search{Query: "x"}
	if err := s.Do(context.Background()); err == nil {
		t.Fatalf("expected an error without a service")
	}
}
