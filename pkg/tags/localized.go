package tags

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	jww "github.com/spf13/jwalterweatherman"
)

// Localized serves translated tags read from <dataDir>/locales/<locale>.json.
// Each file maps an uppercase hexcode to its tags and is read at most once.
type Localized struct {
	mu      sync.Mutex
	locales map[string]map[string][]string
}

// NewLocalized returns an empty lookup.
func NewLocalized() *Localized {
	return &Localized{locales: make(map[string]map[string][]string)}
}

// Get returns the tags for hexcode in locale. Missing files or codes yield
// nil.
func (l *Localized) Get(locale, hexcode, dataDir string) []string {
	table := l.load(locale, dataDir)
	return table[strings.ToUpper(hexcode)]
}

func (l *Localized) load(locale, dataDir string) map[string][]string {
	key := dataDir + "\x00" + locale

	l.mu.Lock()
	defer l.mu.Unlock()
	if table, ok := l.locales[key]; ok {
		return table
	}

	table := make(map[string][]string)
	path := filepath.Join(dataDir, "locales", locale+".json")
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		jww.DEBUG.Printf("no localized tags for %q at %s", locale, path)
	case err != nil:
		jww.WARN.Printf("read localized tags %s: %v", path, err)
	default:
		raw := make(map[string][]string)
		if err := json.Unmarshal(data, &raw); err != nil {
			jww.WARN.Printf("decode localized tags %s: %v", path, err)
			break
		}
		for hex, tags := range raw {
			table[strings.ToUpper(hex)] = tags
		}
	}
	l.locales[key] = table
	return table
}
