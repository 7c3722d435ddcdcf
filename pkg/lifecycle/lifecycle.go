// Package lifecycle decides what happens to the picker window once a
// selection is final and schedules the delayed steps.
package lifecycle

import (
	"sync"
	"time"
)

// CloseDelay is how long the picker stays hidden before pasting and exiting,
// so focus can return to the previous window.
const CloseDelay = 500 * time.Millisecond

// Visibility is what to do with the window right away.
type Visibility int

const (
	// Hide hides the window.
	Hide Visibility = iota
	// Minimize iconifies the window.
	Minimize
)

func (v Visibility) String() string {
	if v == Minimize {
		return "minimize"
	}
	return "hide"
}

// ExitPlan describes the steps after a final commit.
type ExitPlan struct {
	Visibility Visibility
	// PasteDelay is the wait before the paste. Zero pastes immediately.
	PasteDelay time.Duration
	// Close ends the process after the paste.
	Close bool
}

// Options are the settings that shape the exit.
type Options struct {
	IconifyOnEsc        bool
	LoadHiddenOnStartup bool
}

// Plan returns the exit steps. pasteOnExit is false when the picker closes
// without a commit; the window is still hidden or closed the same way.
func Plan(opts Options, pasteOnExit bool) ExitPlan {
	switch {
	case opts.IconifyOnEsc:
		return ExitPlan{Visibility: Minimize}
	case opts.LoadHiddenOnStartup:
		return ExitPlan{Visibility: Hide}
	}
	p := ExitPlan{Visibility: Hide, Close: true}
	if pasteOnExit {
		p.PasteDelay = CloseDelay
	}
	return p
}

// Scheduler runs tasks after a delay. The zero value is ready to use.
type Scheduler struct {
	mu      sync.Mutex
	pending map[*Token]struct{}
}

// Token controls one scheduled task.
type Token struct {
	s     *Scheduler
	timer *time.Timer

	mu    sync.Mutex
	state int
}

const (
	statePending = iota
	stateRan
	stateCancelled
)

// After runs fn on its own goroutine once d has elapsed, unless the returned
// token is cancelled first.
func (s *Scheduler) After(d time.Duration, fn func()) *Token {
	t := &Token{s: s}
	s.mu.Lock()
	if s.pending == nil {
		s.pending = make(map[*Token]struct{})
	}
	s.pending[t] = struct{}{}
	s.mu.Unlock()

	t.mu.Lock()
	t.timer = time.AfterFunc(d, func() {
		t.mu.Lock()
		if t.state != statePending {
			t.mu.Unlock()
			return
		}
		t.state = stateRan
		t.mu.Unlock()
		s.forget(t)
		fn()
	})
	t.mu.Unlock()
	return t
}

// Cancel stops the task. It reports whether the task was stopped before it
// ran; cancelling twice or after the task ran returns false.
func (t *Token) Cancel() bool {
	if t == nil {
		return false
	}
	t.mu.Lock()
	if t.state != statePending {
		t.mu.Unlock()
		return false
	}
	t.state = stateCancelled
	t.timer.Stop()
	t.mu.Unlock()
	t.s.forget(t)
	return true
}

// Pending reports whether the task is still waiting to run.
func (t *Token) Pending() bool {
	if t == nil {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state == statePending
}

// CancelAll cancels every pending task and returns how many were stopped.
func (s *Scheduler) CancelAll() int {
	s.mu.Lock()
	tokens := make([]*Token, 0, len(s.pending))
	for t := range s.pending {
		tokens = append(tokens, t)
	}
	s.mu.Unlock()

	n := 0
	for _, t := range tokens {
		if t.Cancel() {
			n++
		}
	}
	return n
}

// Len is the number of pending tasks.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

func (s *Scheduler) forget(t *Token) {
	s.mu.Lock()
	delete(s.pending, t)
	s.mu.Unlock()
}
