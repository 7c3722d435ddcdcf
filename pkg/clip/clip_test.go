package clip

import (
	"errors"
	"testing"
)

func TestMemorySink(t *testing.T) {
	sink, err := New("memory")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	m := sink.(*Memory)
	if m.Last() != "" {
		t.Fatalf("fresh sink should be empty")
	}
	_ = m.SetText("😀")
	_ = m.SetText("😀😂")
	if m.Last() != "😀😂" || m.Writes() != 2 {
		t.Fatalf("unexpected state last=%q writes=%d", m.Last(), m.Writes())
	}

	m.Err = errors.New("denied")
	if err := m.SetText("x"); err == nil {
		t.Fatalf("expected configured error")
	}
	if m.Writes() != 2 {
		t.Fatalf("failed write should not count")
	}
}

func TestUnknownBackend(t *testing.T) {
	if _, err := New("carrier-pigeon"); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}
