package lifecycle

import (
	"testing"
	"time"
)

func TestPlan(t *testing.T) {
	tests := map[string]struct {
		opts  Options
		paste bool
		want  ExitPlan
	}{
		"iconify": {
			opts:  Options{IconifyOnEsc: true},
			paste: true,
			want:  ExitPlan{Visibility: Minimize},
		},
		"iconify wins over hidden": {
			opts:  Options{IconifyOnEsc: true, LoadHiddenOnStartup: true},
			paste: true,
			want:  ExitPlan{Visibility: Minimize},
		},
		"load hidden": {
			opts:  Options{LoadHiddenOnStartup: true},
			paste: true,
			want:  ExitPlan{Visibility: Hide},
		},
		"default with paste": {
			paste: true,
			want:  ExitPlan{Visibility: Hide, PasteDelay: CloseDelay, Close: true},
		},
		"default without paste": {
			want: ExitPlan{Visibility: Hide, Close: true},
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := Plan(tc.opts, tc.paste); got != tc.want {
				t.Fatalf("Plan() = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestSchedulerRuns(t *testing.T) {
	var s Scheduler
	done := make(chan struct{})
	tok := s.After(time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("task did not run")
	}
	if tok.Cancel() {
		t.Fatalf("cancel after run should report false")
	}
	if tok.Pending() || s.Len() != 0 {
		t.Fatalf("ran task should not be pending")
	}
}

func TestSchedulerCancel(t *testing.T) {
	var s Scheduler
	ran := make(chan struct{}, 1)
	tok := s.After(time.Hour, func() { ran <- struct{}{} })
	if !tok.Pending() || s.Len() != 1 {
		t.Fatalf("task should be pending")
	}
	if !tok.Cancel() {
		t.Fatalf("first cancel should stop the task")
	}
	if tok.Cancel() {
		t.Fatalf("second cancel should report false")
	}
	if s.Len() != 0 {
		t.Fatalf("cancelled task still tracked")
	}
	select {
	case <-ran:
		t.Fatalf("cancelled task ran")
	default:
	}
}

func TestSchedulerCancelAll(t *testing.T) {
	var s Scheduler
	s.After(time.Hour, func() {})
	s.After(time.Hour, func() {})
	if n := s.CancelAll(); n != 2 {
		t.Fatalf("CancelAll() = %d, want 2", n)
	}
	var nilToken *Token
	if nilToken.Cancel() {
		t.Fatalf("nil token cancel should be false")
	}
}
