// Package mcp exposes the picker operations over the Model Context Protocol
// so assistants can search for and copy emojis.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tableflip.dev/emojipick/pkg/app"
	"tableflip.dev/emojipick/pkg/emoji"
	"tableflip.dev/emojipick/pkg/tags"
)

// ErrEmojiNotFound is returned when an emoji cannot be resolved.
var ErrEmojiNotFound = errors.New("emoji not found")

// Service adapts app.Service results to transport friendly shapes.
type Service struct {
	App *app.Service
}

// EmojiDTO is the wire shape of an emoji.
type EmojiDTO struct {
	Hexcode   string   `json:"hexcode"`
	Emoji     string   `json:"emoji"`
	Name      string   `json:"name"`
	Category  string   `json:"category"`
	Tags      []string `json:"tags,omitempty"`
	Custom    []string `json:"customTags,omitempty"`
	Skintones []string `json:"skintones,omitempty"`
}

// UsageDTO is one history record.
type UsageDTO struct {
	EmojiDTO
	Count    int       `json:"count"`
	LastUsed time.Time `json:"lastUsed"`
}

// CategoryDTO describes a category and how many emojis it holds.
type CategoryDTO struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Icon  string `json:"icon"`
	Count int    `json:"count"`
}

// NewService wraps svc.
func NewService(svc *app.Service) *Service {
	return &Service{App: svc}
}

// Search returns at most limit matches for query.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]EmojiDTO, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	found := s.App.Search(query)
	if limit > 0 && len(found) > limit {
		found = found[:limit]
	}
	return s.toDTOs(found), nil
}

// Suggest offers tag spellings for a query that matched nothing.
func (s *Service) Suggest(query string) []string {
	if s.App == nil {
		return nil
	}
	return s.App.Suggest(query, 3)
}

// Copy commits items to the clipboard and records them in history.
func (s *Service) Copy(ctx context.Context, items []string) (string, error) {
	if err := s.ready(ctx); err != nil {
		return "", err
	}
	if len(items) == 0 {
		return "", errors.New("no emojis given")
	}
	text, err := s.App.Copy(ctx, items...)
	if errors.Is(err, app.ErrNotFound) {
		return "", fmt.Errorf("%w: %v", ErrEmojiNotFound, err)
	}
	return text, err
}

// History lists used emojis, most recent first.
func (s *Service) History(ctx context.Context, limit int) ([]UsageDTO, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	usage, err := s.App.History(ctx)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(usage) > limit {
		usage = usage[:limit]
	}
	out := make([]UsageDTO, 0, len(usage))
	for _, u := range usage {
		out = append(out, UsageDTO{
			EmojiDTO: s.toDTO(u.Entry),
			Count:    u.Count,
			LastUsed: time.UnixMilli(u.LastUsage).UTC(),
		})
	}
	return out, nil
}

// Emoji returns one emoji by glyph or hexcode.
func (s *Service) Emoji(ctx context.Context, key string) (EmojiDTO, error) {
	if err := s.ready(ctx); err != nil {
		return EmojiDTO{}, err
	}
	e, ok := s.App.Resolve(strings.TrimSpace(key))
	if !ok {
		return EmojiDTO{}, fmt.Errorf("%w: %q", ErrEmojiNotFound, key)
	}
	return s.toDTO(e), nil
}

// SetTags replaces the custom tags of key with the comma separated list.
func (s *Service) SetTags(ctx context.Context, key, list string) (EmojiDTO, error) {
	dto, err := s.Emoji(ctx, key)
	if err != nil {
		return EmojiDTO{}, err
	}
	if err := s.App.SetTags(dto.Hexcode, tags.Parse(list)); err != nil {
		return EmojiDTO{}, err
	}
	return s.Emoji(ctx, dto.Hexcode)
}

// Categories lists the browsable categories.
func (s *Service) Categories(ctx context.Context) ([]CategoryDTO, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	counts := map[string]int{}
	for _, e := range s.App.Table.Entries() {
		counts[e.Group]++
	}
	cats := s.App.Table.Categories()
	out := make([]CategoryDTO, 0, len(cats))
	for _, c := range cats {
		n := counts[c.ID]
		if c.ID == emoji.Recents && s.App.HistoryService != nil {
			n = len(s.App.HistoryService.History())
		}
		out = append(out, CategoryDTO{ID: c.ID, Title: c.Title, Icon: c.Icon, Count: n})
	}
	return out, nil
}

// Category lists the emojis of one category in picker order.
func (s *Service) Category(ctx context.Context, id string) ([]EmojiDTO, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	c := s.App.NewController()
	if emoji.CategoryIndex(c.Categories(), id) < 0 {
		return nil, fmt.Errorf("unknown category %q", id)
	}
	c.SetCategory(id)
	return s.toDTOs(c.Visible(s.App.Table.Entries())), nil
}

func (s *Service) ready(ctx context.Context) error {
	if s == nil || s.App == nil || s.App.Table == nil {
		return errors.New("mcp: service unavailable")
	}
	return ctx.Err()
}

func (s *Service) toDTOs(entries []emoji.Entry) []EmojiDTO {
	out := make([]EmojiDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, s.toDTO(e))
	}
	return out
}

func (s *Service) toDTO(e emoji.Entry) EmojiDTO {
	dto := EmojiDTO{
		Hexcode:  e.Hexcode,
		Emoji:    e.Glyph,
		Name:     e.Name,
		Category: e.Group,
		Tags:     e.Tags,
	}
	if custom, err := s.App.Tags(e.Hexcode); err == nil {
		dto.Custom = custom
	}
	for _, v := range e.Skintones {
		dto.Skintones = append(dto.Skintones, v.Glyph)
	}
	return dto
}
