// Package clip writes picked text to the system clipboard.
package clip

import (
	"strings"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/pkg/errors"
	designclip "golang.design/x/clipboard"
)

// Sink receives the committed text.
type Sink interface {
	SetText(text string) error
}

// New returns the sink for backend: "atotto" (xclip/xsel/wl-copy helpers),
// "native" (in-process X11/Cocoa/Win32) or "memory".
func New(backend string) (Sink, error) {
	switch strings.ToLower(backend) {
	case "", "atotto":
		if clipboard.Unsupported {
			return nil, errors.New("clip: no clipboard utility found (install xclip, xsel or wl-clipboard)")
		}
		return Atotto{}, nil
	case "native":
		if err := designclip.Init(); err != nil {
			return nil, errors.Wrap(err, "clip: init native clipboard")
		}
		return Native{}, nil
	case "memory":
		return &Memory{}, nil
	default:
		return nil, errors.Errorf("clip: unknown backend %q", backend)
	}
}

// Atotto shells out to the platform clipboard helpers.
type Atotto struct{}

// SetText implements Sink.
func (Atotto) SetText(text string) error {
	return errors.Wrap(clipboard.WriteAll(text), "clip: write")
}

// Native talks to the window system directly.
type Native struct{}

// SetText implements Sink.
func (Native) SetText(text string) error {
	designclip.Write(designclip.FmtText, []byte(text))
	return nil
}

// Memory keeps the last text; it backs tests and headless runs.
type Memory struct {
	mu    sync.Mutex
	texts []string
	Err   error
}

// SetText implements Sink.
func (m *Memory) SetText(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.texts = append(m.texts, text)
	return nil
}

// Last returns the most recent text, or "".
func (m *Memory) Last() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.texts) == 0 {
		return ""
	}
	return m.texts[len(m.texts)-1]
}

// Writes counts successful SetText calls.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.texts)
}
