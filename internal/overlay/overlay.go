// Package overlay creates and destroys the stats/hints pane pair as a
// single unit. Panes are located by title on every toggle — stored handles
// go stale the moment a user closes a pane by hand, titles do not.
package overlay

import (
	"fmt"
	"log/slog"

	"shellbuddy/internal/config"
)

// Pane is the subset of pane state the orchestrator needs.
type Pane struct {
	ID     string
	Title  string
	Active bool
}

// Host abstracts the multiplexer's pane commands so the toggle logic is
// testable without a real tmux server.
type Host interface {
	// ListPanes returns all panes of the current window.
	ListPanes() ([]Pane, error)
	// SplitBelow creates a pane of fixed height under the active pane
	// running command, returning the new pane id.
	SplitBelow(height int, command string) (string, error)
	// SplitAbove creates a pane of fixed height above target.
	SplitAbove(target string, height int, command string) (string, error)
	KillPane(id string) error
	SelectPane(id string) error
	SetTitle(id, title string) error
}

// Orchestrator toggles the overlay pane pair.
type Orchestrator struct {
	host Host
	cfg  config.Config
	log  *slog.Logger

	// command lines run inside the two panes
	statsCmd string
	hintsCmd string
}

// New creates an orchestrator. binPath is the shellbuddy executable; the
// hints renderer is wrapped in a restart loop so a crash repaints instead of
// silently collapsing the pane.
func New(host Host, cfg config.Config, binPath string, log *slog.Logger) *Orchestrator {
	if log == nil {
		log = slog.Default()
	}
	return &Orchestrator{
		host:     host,
		cfg:      cfg,
		log:      log,
		statsCmd: fmt.Sprintf("%s stats", binPath),
		hintsCmd: fmt.Sprintf("sh -c 'while :; do %s hints; sleep 1; done'", binPath),
	}
}

// Toggle opens the overlay if neither pane exists, and tears both down if
// either does. A lone orphan (say, after a crash) counts as open and gets
// torn down, which self-heals the window. Returns whether the overlay is
// open after the call.
func (o *Orchestrator) Toggle() (bool, error) {
	panes, err := o.host.ListPanes()
	if err != nil {
		return false, fmt.Errorf("list panes: %w", err)
	}

	var existing []Pane
	for _, p := range panes {
		if p.Title == o.cfg.StatsPaneTitle || p.Title == o.cfg.HintsPaneTitle {
			existing = append(existing, p)
		}
	}

	if len(existing) > 0 {
		o.teardown(existing)
		return false, nil
	}
	return true, o.open(panes)
}

// teardown kills every overlay pane found. Kill failures are logged, not
// fatal: the pane may already be gone, and the next toggle retries anyway.
func (o *Orchestrator) teardown(panes []Pane) {
	for _, p := range panes {
		if err := o.host.KillPane(p.ID); err != nil {
			o.log.Warn("kill overlay pane", "pane", p.ID, "title", p.Title, "err", err)
		}
	}
}

// open creates hints then stats, titles both, and restores focus. If the
// second split fails the first pane is killed again: both or neither.
func (o *Orchestrator) open(panes []Pane) error {
	original := ""
	for _, p := range panes {
		if p.Active {
			original = p.ID
			break
		}
	}

	hintsID, err := o.host.SplitBelow(o.cfg.HintsPaneHeight, o.hintsCmd)
	if err != nil {
		return fmt.Errorf("create hints pane: %w", err)
	}
	if err := o.host.SetTitle(hintsID, o.cfg.HintsPaneTitle); err != nil {
		o.log.Warn("title hints pane", "err", err)
	}

	statsID, err := o.host.SplitAbove(hintsID, o.cfg.StatsPaneHeight, o.statsCmd)
	if err != nil {
		if kerr := o.host.KillPane(hintsID); kerr != nil {
			o.log.Warn("rollback hints pane", "err", kerr)
		}
		return fmt.Errorf("create stats pane: %w", err)
	}
	if err := o.host.SetTitle(statsID, o.cfg.StatsPaneTitle); err != nil {
		o.log.Warn("title stats pane", "err", err)
	}

	if original != "" {
		if err := o.host.SelectPane(original); err != nil {
			o.log.Warn("refocus original pane", "err", err)
		}
	}
	return nil
}
