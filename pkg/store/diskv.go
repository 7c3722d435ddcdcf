package store

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/peterbourgon/diskv/v3"
	"github.com/pkg/errors"
)

const (
	historyBucket = "history"
	tagsBucket    = "tags"
)

// HistoryEntry records how often and how recently an emoji was used.
type HistoryEntry struct {
	Hexcode   string `json:"hexcode"`
	LastUsage int64  `json:"lastUsage"`
	Count     int    `json:"count"`
}

type tagRecord struct {
	Hexcode string   `json:"hexcode"`
	Tags    []string `json:"tags"`
}

// Persistence defines the persistence contract for usage history and custom
// tags.
type Persistence interface {
	History(ctx context.Context) map[string]HistoryEntry
	Increment(hexcode string) error
	ClearHistory(ctx context.Context) error
	CustomTags(hexcode string) ([]string, error)
	SetCustomTags(hexcode string, tags []string) error
	AllCustomTags(ctx context.Context) map[string][]string
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		return nil, errors.New("store: no config")
	}
	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, errors.Wrap(err, "store: ensure base path")
	}
	return &persistence{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			CacheSizeMax:      1024 * 1024, // 1MB
		}),
		basePath: basePath,
		now:      time.Now,
	}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
	now      func() time.Time
}

func (p *persistence) readHistory(key string) (HistoryEntry, error) {
	h := HistoryEntry{}
	val, err := p.d.Read(key)
	if err != nil {
		return h, err
	}
	if err := json.Unmarshal(val, &h); err != nil {
		return h, errors.Wrapf(err, "store: decode %s", key)
	}
	if h.Hexcode == "" {
		h.Hexcode = keyToPathTransform(key).FileName
	}
	return h, nil
}

func (p *persistence) History(ctx context.Context) map[string]HistoryEntry {
	all := make(map[string]HistoryEntry)
	for key := range p.d.KeysPrefix(historyBucket+"/", ctx.Done()) {
		h, err := p.readHistory(key)
		if err != nil {
			warnf("%s: %s", key, err)
			continue
		}
		all[h.Hexcode] = h
	}
	return all
}

func (p *persistence) Increment(hexcode string) error {
	hexcode = normalizeHex(hexcode)
	if hexcode == "" {
		return errors.New("store: hexcode required")
	}
	key := toKey(historyBucket, hexcode)
	h, err := p.readHistory(key)
	if err != nil && !p.d.Has(key) {
		h = HistoryEntry{Hexcode: hexcode}
	} else if err != nil {
		return err
	}
	h.Count++
	h.LastUsage = p.now().UnixMilli()

	data, err := json.Marshal(h)
	if err != nil {
		return err
	}
	return errors.Wrapf(p.d.Write(key, data), "store: write %s", key)
}

func (p *persistence) ClearHistory(ctx context.Context) error {
	var keys []string
	for key := range p.d.KeysPrefix(historyBucket+"/", ctx.Done()) {
		keys = append(keys, key)
	}
	for _, key := range keys {
		if err := p.d.Erase(key); err != nil {
			return errors.Wrapf(err, "store: erase %s", key)
		}
	}
	return nil
}

func (p *persistence) CustomTags(hexcode string) ([]string, error) {
	key := toKey(tagsBucket, normalizeHex(hexcode))
	if !p.d.Has(key) {
		return nil, nil
	}
	val, err := p.d.Read(key)
	if err != nil {
		return nil, errors.Wrapf(err, "store: read %s", key)
	}
	rec := tagRecord{}
	if err := json.Unmarshal(val, &rec); err != nil {
		return nil, errors.Wrapf(err, "store: decode %s", key)
	}
	return rec.Tags, nil
}

func (p *persistence) SetCustomTags(hexcode string, tags []string) error {
	hexcode = normalizeHex(hexcode)
	if hexcode == "" {
		return errors.New("store: hexcode required")
	}
	key := toKey(tagsBucket, hexcode)
	if len(tags) == 0 {
		if !p.d.Has(key) {
			return nil
		}
		return errors.Wrapf(p.d.Erase(key), "store: erase %s", key)
	}
	data, err := json.Marshal(tagRecord{Hexcode: hexcode, Tags: tags})
	if err != nil {
		return err
	}
	return errors.Wrapf(p.d.Write(key, data), "store: write %s", key)
}

func (p *persistence) AllCustomTags(ctx context.Context) map[string][]string {
	all := make(map[string][]string)
	for key := range p.d.KeysPrefix(tagsBucket+"/", ctx.Done()) {
		hexcode := keyToPathTransform(key).FileName
		t, err := p.CustomTags(hexcode)
		if err != nil {
			warnf("%s: %s", key, err)
			continue
		}
		all[hexcode] = t
	}
	return all
}

func keyToPathTransform(s string) *diskv.PathKey {
	bucket, name, ok := strings.Cut(s, "/")
	if !ok {
		return &diskv.PathKey{FileName: s}
	}
	return &diskv.PathKey{
		Path:     []string{bucket},
		FileName: name,
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) == 0 {
		return pathKey.FileName
	}
	return strings.Join(pathKey.Path, "/") + "/" + pathKey.FileName
}

// toKey makes `bucket/HEXCODE`
func toKey(bucket, hexcode string) string {
	return bucket + "/" + hexcode
}

func normalizeHex(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "-", "_", "-", "/", "-").Replace(s)
}
