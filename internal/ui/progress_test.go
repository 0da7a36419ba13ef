package ui

import (
	"strings"
	"testing"

	"bong/internal/driver"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short.bong", 20, "short.bong"},
		{"very/long/path/file.bong", 10, "very/lo..."},
		{"界界界界", 5, "界..."},
		{"abcdef", 3, "abc"},
		{"abc", 0, "abc"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestProgressModelEvents(t *testing.T) {
	files := []string{"a.bong", "b.bong", "c.bong"}
	events := make(chan driver.Event)
	m := NewProgressModel("parse", files, events).(*progressModel)

	m.applyEvent(driver.Event{File: "a.bong", Stage: driver.StageParse, Status: driver.StatusWorking})
	m.applyEvent(driver.Event{File: "b.bong", Stage: driver.StageParse, Status: driver.StatusError})
	m.applyEvent(driver.Event{File: "c.bong", Stage: driver.StageParse, Status: driver.StatusCached})
	m.applyEvent(driver.Event{File: "unknown.bong", Stage: driver.StageParse, Status: driver.StatusDone})

	if finished, failed := m.counts(); finished != 2 || failed != 1 {
		t.Fatalf("counts = %d/%d, want 2/1", finished, failed)
	}
	if got := m.percent(); got != 2.5/3 {
		t.Fatalf("percent = %v", got)
	}

	view := m.View()
	for _, want := range []string{"parse (2/3, 1 failed)", "parsing", "error", "cached", "a.bong"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}

	if _, cmd := m.Update(doneMsg{}); cmd == nil || !m.done {
		t.Fatal("doneMsg must finish the model")
	}
	if !strings.Contains(m.View(), "done: parse") {
		t.Fatalf("final view:\n%s", m.View())
	}
}
