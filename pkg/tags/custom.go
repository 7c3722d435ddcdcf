package tags

import (
	"sync"

	jww "github.com/spf13/jwalterweatherman"
)

// Backend persists custom tags.
type Backend interface {
	CustomTags(hexcode string) ([]string, error)
	SetCustomTags(hexcode string, tags []string) error
}

// Custom is a cached view over user defined tags.
type Custom struct {
	backend Backend

	mu    sync.Mutex
	cache map[string][]string
}

// NewCustom wraps backend with a lookup cache.
func NewCustom(backend Backend) *Custom {
	return &Custom{backend: backend, cache: make(map[string][]string)}
}

// Get returns the custom tags for hexcode. With useCache the previous answer
// is reused, including a cached miss. Read failures count as no tags.
func (c *Custom) Get(hexcode string, useCache bool) []string {
	if useCache {
		c.mu.Lock()
		tags, ok := c.cache[hexcode]
		c.mu.Unlock()
		if ok {
			return tags
		}
	}

	tags, err := c.backend.CustomTags(hexcode)
	if err != nil {
		jww.WARN.Printf("custom tags for %s: %v", hexcode, err)
		tags = nil
	}

	c.mu.Lock()
	c.cache[hexcode] = tags
	c.mu.Unlock()
	return tags
}

// Set stores tags for hexcode and refreshes the cache entry.
func (c *Custom) Set(hexcode string, tags []string) error {
	if err := c.backend.SetCustomTags(hexcode, tags); err != nil {
		return err
	}
	c.mu.Lock()
	if len(tags) == 0 {
		c.cache[hexcode] = nil
	} else {
		c.cache[hexcode] = append([]string(nil), tags...)
	}
	c.mu.Unlock()
	return nil
}

// Invalidate drops every cached lookup.
func (c *Custom) Invalidate() {
	c.mu.Lock()
	c.cache = make(map[string][]string)
	c.mu.Unlock()
}
