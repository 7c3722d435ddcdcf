package store

import (
	"context"
	"sync"

	jww "github.com/spf13/jwalterweatherman"
)

// HistoryService serves usage history from memory and writes through to
// the persistence. The snapshot is reloaded after Invalidate.
type HistoryService struct {
	p Persistence

	mu     sync.Mutex
	loaded bool
	cache  map[string]HistoryEntry
}

// NewHistoryService wraps p.
func NewHistoryService(p Persistence) *HistoryService {
	return &HistoryService{p: p}
}

// History returns the current snapshot keyed by hexcode. Callers must not
// modify it.
func (h *HistoryService) History() map[string]HistoryEntry {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.loaded {
		h.cache = h.p.History(context.Background())
		h.loaded = true
	}
	return h.cache
}

// Increment records one more use of hexcode.
func (h *HistoryService) Increment(hexcode string) error {
	if err := h.p.Increment(hexcode); err != nil {
		jww.WARN.Printf("history increment %s: %v", hexcode, err)
		return err
	}
	h.Invalidate()
	return nil
}

// Clear forgets all usage.
func (h *HistoryService) Clear(ctx context.Context) error {
	if err := h.p.ClearHistory(ctx); err != nil {
		return err
	}
	h.Invalidate()
	return nil
}

// Invalidate drops the snapshot.
func (h *HistoryService) Invalidate() {
	h.mu.Lock()
	h.loaded = false
	h.cache = nil
	h.mu.Unlock()
}

func warnf(format string, args ...interface{}) {
	jww.WARN.Printf("store: "+format, args...)
}
