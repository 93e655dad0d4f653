package overlay

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"shellbuddy/internal/config"
)

// fakeHost is an in-memory pane table implementing Host.
type fakeHost struct {
	panes    []Pane
	nextID   int
	selected string

	failSplitAbove bool
	failKill       bool

	splitCmds []string
}

func newFakeHost() *fakeHost {
	return &fakeHost{panes: []Pane{{ID: "%0", Title: "shell", Active: true}}}
}

func (h *fakeHost) ListPanes() ([]Pane, error) {
	out := make([]Pane, len(h.panes))
	copy(out, h.panes)
	return out, nil
}

func (h *fakeHost) split(command string) string {
	h.nextID++
	id := fmt.Sprintf("%%%d", h.nextID)
	h.panes = append(h.panes, Pane{ID: id})
	h.splitCmds = append(h.splitCmds, command)
	return id
}

func (h *fakeHost) SplitBelow(height int, command string) (string, error) {
	return h.split(command), nil
}

func (h *fakeHost) SplitAbove(target string, height int, command string) (string, error) {
	if h.failSplitAbove {
		return "", errors.New("no space for new pane")
	}
	for _, p := range h.panes {
		if p.ID == target {
			return h.split(command), nil
		}
	}
	return "", fmt.Errorf("can't find pane: %s", target)
}

func (h *fakeHost) KillPane(id string) error {
	if h.failKill {
		return errors.New("kill failed")
	}
	for i, p := range h.panes {
		if p.ID == id {
			h.panes = append(h.panes[:i], h.panes[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("can't find pane: %s", id)
}

func (h *fakeHost) SelectPane(id string) error {
	h.selected = id
	return nil
}

func (h *fakeHost) SetTitle(id, title string) error {
	for i, p := range h.panes {
		if p.ID == id {
			h.panes[i].Title = title
			return nil
		}
	}
	return fmt.Errorf("can't find pane: %s", id)
}

func (h *fakeHost) titles() []string {
	var out []string
	for _, p := range h.panes {
		out = append(out, p.Title)
	}
	return out
}

func newOrchestrator(h Host) *Orchestrator {
	return New(h, config.Default(), "/usr/local/bin/shellbuddy", slog.Default())
}

func TestToggleOpensBothPanes(t *testing.T) {
	t.Parallel()

	h := newFakeHost()
	o := newOrchestrator(h)

	open, err := o.Toggle()
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if !open {
		t.Error("Toggle should report overlay open")
	}
	if len(h.panes) != 3 {
		t.Fatalf("pane count = %d, want 3 (original + 2 overlays): %v", len(h.panes), h.titles())
	}

	want := map[string]bool{config.DefaultStatsTitle: false, config.DefaultHintsTitle: false}
	for _, p := range h.panes {
		if _, ok := want[p.Title]; ok {
			want[p.Title] = true
		}
	}
	for title, found := range want {
		if !found {
			t.Errorf("pane titled %q not created", title)
		}
	}

	if h.selected != "%0" {
		t.Errorf("focus returned to %q, want original pane %%0", h.selected)
	}
}

func TestToggleTwiceReturnsToOriginalState(t *testing.T) {
	t.Parallel()

	h := newFakeHost()
	o := newOrchestrator(h)

	if _, err := o.Toggle(); err != nil {
		t.Fatal(err)
	}
	open, err := o.Toggle()
	if err != nil {
		t.Fatal(err)
	}
	if open {
		t.Error("second toggle should close the overlay")
	}
	if len(h.panes) != 1 || h.panes[0].ID != "%0" {
		t.Errorf("pane table not restored: %v", h.titles())
	}
}

func TestToggleHealsOrphanedStatsPane(t *testing.T) {
	t.Parallel()

	h := newFakeHost()
	// Simulate a crashed overlay: only the stats pane survived.
	h.panes = append(h.panes, Pane{ID: "%9", Title: config.DefaultStatsTitle})

	o := newOrchestrator(h)
	open, err := o.Toggle()
	if err != nil {
		t.Fatalf("orphan teardown must not error: %v", err)
	}
	if open {
		t.Error("orphan present counts as open, toggle should close")
	}
	if len(h.panes) != 1 {
		t.Errorf("orphan not removed: %v", h.titles())
	}
}

func TestToggleRollsBackWhenSecondSplitFails(t *testing.T) {
	t.Parallel()

	h := newFakeHost()
	h.failSplitAbove = true

	o := newOrchestrator(h)
	if _, err := o.Toggle(); err == nil {
		t.Fatal("expected error when stats split fails")
	}
	// All-or-nothing: the hints pane must have been rolled back.
	if len(h.panes) != 1 {
		t.Errorf("hints pane not rolled back: %v", h.titles())
	}
}

func TestToggleKillFailureIsNotFatal(t *testing.T) {
	t.Parallel()

	h := newFakeHost()
	h.panes = append(h.panes, Pane{ID: "%7", Title: config.DefaultHintsTitle})
	h.failKill = true

	o := newOrchestrator(h)
	if _, err := o.Toggle(); err != nil {
		t.Errorf("kill failure should be logged, not returned: %v", err)
	}
}

func TestHintsPaneUsesRestartWrapper(t *testing.T) {
	t.Parallel()

	h := newFakeHost()
	o := newOrchestrator(h)
	if _, err := o.Toggle(); err != nil {
		t.Fatal(err)
	}

	if len(h.splitCmds) != 2 {
		t.Fatalf("split commands = %v", h.splitCmds)
	}
	if !strings.Contains(h.splitCmds[0], "while :") || !strings.Contains(h.splitCmds[0], "hints") {
		t.Errorf("hints command %q lacks restart wrapper", h.splitCmds[0])
	}
	if !strings.Contains(h.splitCmds[1], "stats") {
		t.Errorf("stats command = %q", h.splitCmds[1])
	}
}
