package options

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
)

const (
	day  = 24 * time.Hour
	week = 7 * day
)

var windowUnits = map[string]time.Duration{
	"s": time.Second, "sec": time.Second, "second": time.Second, "seconds": time.Second,
	"m": time.Minute, "min": time.Minute, "minute": time.Minute, "minutes": time.Minute,
	"h": time.Hour, "hr": time.Hour, "hour": time.Hour, "hours": time.Hour,
	"d": day, "day": day, "days": day,
	"w": week, "wk": week, "week": week, "weeks": week,
}

// Window is a flag value for look-back windows such as "3d" or "1w2d6h".
// The zero value means no window.
type Window time.Duration

// ParseWindow reads a sequence of <count><unit> segments.
func ParseWindow(s string) (time.Duration, error) {
	rest := strings.ToLower(strings.TrimSpace(s))
	if rest == "" {
		return 0, nil
	}
	var total time.Duration
	for rest != "" {
		i := strings.IndexFunc(rest, func(r rune) bool { return !unicode.IsDigit(r) })
		if i <= 0 {
			return 0, fmt.Errorf("invalid window %q: expected a number at %q", s, rest)
		}
		n, err := strconv.Atoi(rest[:i])
		if err != nil {
			return 0, fmt.Errorf("invalid window %q: %w", s, err)
		}
		rest = rest[i:]

		j := strings.IndexFunc(rest, func(r rune) bool { return !unicode.IsLetter(r) })
		if j < 0 {
			j = len(rest)
		}
		unit, ok := windowUnits[rest[:j]]
		if !ok {
			return 0, fmt.Errorf("invalid window %q: unknown unit %q", s, rest[:j])
		}
		total += time.Duration(n) * unit
		rest = strings.TrimLeft(rest[j:], " ")
	}
	if total <= 0 {
		return 0, fmt.Errorf("invalid window %q: must be greater than zero", s)
	}
	return total, nil
}

// FormatWindow is the compact form ParseWindow accepts, e.g. "1w2d".
func FormatWindow(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}
	var b strings.Builder
	for _, u := range []struct {
		label string
		size  time.Duration
	}{{"w", week}, {"d", day}, {"h", time.Hour}, {"m", time.Minute}, {"s", time.Second}} {
		if n := d / u.size; n > 0 {
			fmt.Fprintf(&b, "%d%s", n, u.label)
			d -= n * u.size
		}
	}
	if b.Len() == 0 {
		return "0s"
	}
	return b.String()
}

func (w *Window) Set(s string) error {
	d, err := ParseWindow(s)
	if err != nil {
		return err
	}
	*w = Window(d)
	return nil
}

func (w *Window) String() string {
	if *w == 0 {
		return ""
	}
	return FormatWindow(time.Duration(*w))
}

func (w *Window) Type() string {
	return "window"
}
