package overlay

import "shellbuddy/internal/tmux"

// TmuxHost adapts the tmux client to the Host interface.
type TmuxHost struct {
	Client *tmux.Client
}

// NewTmuxHost wraps the default tmux client.
func NewTmuxHost() *TmuxHost {
	return &TmuxHost{Client: tmux.DefaultClient}
}

func (h *TmuxHost) ListPanes() ([]Pane, error) {
	raw, err := h.Client.ListWindowPanes()
	if err != nil {
		return nil, err
	}
	panes := make([]Pane, 0, len(raw))
	for _, p := range raw {
		panes = append(panes, Pane{ID: p.ID, Title: p.Title, Active: p.Active})
	}
	return panes, nil
}

func (h *TmuxHost) SplitBelow(height int, command string) (string, error) {
	return h.Client.SplitWindow(height, command)
}

func (h *TmuxHost) SplitAbove(target string, height int, command string) (string, error) {
	return h.Client.SplitPane(target, height, true, command)
}

func (h *TmuxHost) KillPane(id string) error { return h.Client.KillPane(id) }

func (h *TmuxHost) SelectPane(id string) error { return h.Client.SelectPane(id) }

func (h *TmuxHost) SetTitle(id, title string) error { return h.Client.SetPaneTitle(id, title) }
