// Package paste pastes committed text into the previously focused
// application once the picker is out of the way.
package paste

import (
	"context"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/micmonay/keybd_event"
	"github.com/pkg/errors"
	jww "github.com/spf13/jwalterweatherman"
)

// Action reports what Paste did.
type Action int

const (
	// Skipped means auto-paste is off or there was nothing to paste.
	Skipped Action = iota
	// Signaled means the session bus was told about the text.
	Signaled
	// Typed means a synthetic Ctrl+V was sent.
	Typed
	// Failed means every available path failed or none applied.
	Failed
)

func (a Action) String() string {
	switch a {
	case Skipped:
		return "skipped"
	case Signaled:
		return "signaled"
	case Typed:
		return "typed"
	default:
		return "failed"
	}
}

// Signaler announces copied text to a desktop component that performs the
// paste itself.
type Signaler interface {
	EmitCopied(text string) error
}

// Typist sends the paste shortcut to the focused window.
type Typist interface {
	PasteKeys(ctx context.Context) error
}

// Notifier decides how, and whether, to paste.
type Notifier struct {
	Enabled     bool
	SessionType string
	Signaler    Signaler
	Typist      Typist
}

// NewNotifier reads the session type from XDG_SESSION_TYPE.
func NewNotifier(enabled bool, signaler Signaler, typist Typist) *Notifier {
	return &Notifier{
		Enabled:     enabled,
		SessionType: os.Getenv("XDG_SESSION_TYPE"),
		Signaler:    signaler,
		Typist:      typist,
	}
}

// Paste triggers the paste of text. It never returns an error: a paste that
// cannot happen is logged and reported as Failed.
func (n *Notifier) Paste(ctx context.Context, text string) Action {
	if n == nil || !n.Enabled || text == "" {
		return Skipped
	}

	if n.Signaler != nil {
		err := n.Signaler.EmitCopied(text)
		if err == nil {
			return Signaled
		}
		jww.WARN.Printf("paste: bus signal failed: %v", err)
	}

	if strings.EqualFold(n.SessionType, "wayland") {
		jww.WARN.Printf("paste: synthetic input is not available on wayland without the bus extension")
		return Failed
	}
	if n.Typist == nil {
		jww.WARN.Printf("paste: no keyboard typist configured")
		return Failed
	}
	if err := n.Typist.PasteKeys(ctx); err != nil {
		jww.WARN.Printf("paste: %v", err)
		return Failed
	}
	return Typed
}

// NewTypist returns the typist for backend: "xdotool" or "keybd".
func NewTypist(backend string) (Typist, error) {
	switch strings.ToLower(backend) {
	case "", "xdotool":
		return &Xdotool{}, nil
	case "keybd":
		return &Keybd{}, nil
	default:
		return nil, errors.Errorf("paste: unknown backend %q", backend)
	}
}

// Xdotool runs `xdotool key ctrl+v`.
type Xdotool struct {
	// Run overrides command execution; used by tests.
	Run func(ctx context.Context, name string, args ...string) error
}

// PasteKeys implements Typist.
func (x *Xdotool) PasteKeys(ctx context.Context) error {
	run := x.Run
	if run == nil {
		run = func(ctx context.Context, name string, args ...string) error {
			out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
			if err != nil {
				return errors.Wrapf(err, "%s: %s", name, strings.TrimSpace(string(out)))
			}
			return nil
		}
	}
	return run(ctx, "xdotool", "key", "ctrl+v")
}

// Keybd injects the key press through uinput (Linux) or the native input
// APIs elsewhere.
type Keybd struct{}

// PasteKeys implements Typist.
func (Keybd) PasteKeys(ctx context.Context) error {
	kb, err := keybd_event.NewKeyBonding()
	if err != nil {
		return errors.Wrap(err, "paste: keyboard binding")
	}
	if runtime.GOOS == "linux" {
		// The virtual device needs a moment to be registered.
		select {
		case <-time.After(2 * time.Second):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	kb.SetKeys(keybd_event.VK_V)
	kb.HasCTRL(true)
	return errors.Wrap(kb.Launching(), "paste: send ctrl+v")
}
