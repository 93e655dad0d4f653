package tmux

import (
	"fmt"
	"strconv"
	"strings"
)

// Pane describes one pane of the current window.
type Pane struct {
	ID     string
	Index  int
	Title  string
	Width  int
	Height int
	Active bool
}

// paneSep separates list-panes fields. Titles may contain spaces and
// colons, so a multi-character separator keeps parsing unambiguous.
const paneSep = "|#|"

// ListWindowPanes returns the panes of the current window, current window
// meaning the one this process's pane belongs to.
func (c *Client) ListWindowPanes() ([]Pane, error) {
	format := fmt.Sprintf("#{pane_id}%[1]s#{pane_index}%[1]s#{pane_title}%[1]s#{pane_width}%[1]s#{pane_height}%[1]s#{pane_active}", paneSep)
	output, err := c.Run("list-panes", "-F", format)
	if err != nil {
		return nil, err
	}
	return parsePanes(output), nil
}

// parsePanes decodes list-panes output. Malformed lines are skipped rather
// than failing the whole listing.
func parsePanes(output string) []Pane {
	var panes []Pane
	for _, line := range strings.Split(output, "\n") {
		if line == "" {
			continue
		}
		parts := strings.Split(line, paneSep)
		if len(parts) < 6 {
			continue
		}

		index, _ := strconv.Atoi(parts[1])
		width, _ := strconv.Atoi(parts[3])
		height, _ := strconv.Atoi(parts[4])

		panes = append(panes, Pane{
			ID:     parts[0],
			Index:  index,
			Title:  parts[2],
			Width:  width,
			Height: height,
			Active: parts[5] == "1",
		})
	}
	return panes
}

// ActivePaneID returns the id of the active pane in the current window.
func (c *Client) ActivePaneID() (string, error) {
	return c.Run("display-message", "-p", "#{pane_id}")
}

// SplitWindow splits the current window below the active pane, giving the
// new pane a fixed height in rows, and runs command in it. Returns the new
// pane's id.
func (c *Client) SplitWindow(height int, command string) (string, error) {
	return c.Run("split-window", "-v", "-l", strconv.Itoa(height), "-P", "-F", "#{pane_id}", command)
}

// SplitPane splits an existing pane, placing the new pane above it when
// before is true. Returns the new pane's id.
func (c *Client) SplitPane(target string, height int, before bool, command string) (string, error) {
	args := []string{"split-window", "-v", "-l", strconv.Itoa(height), "-t", target, "-P", "-F", "#{pane_id}"}
	if before {
		args = append(args, "-b")
	}
	args = append(args, command)
	return c.Run(args...)
}

// KillPane kills a pane by id.
func (c *Client) KillPane(id string) error {
	return c.RunSilent("kill-pane", "-t", id)
}

// SelectPane focuses a pane by id.
func (c *Client) SelectPane(id string) error {
	return c.RunSilent("select-pane", "-t", id)
}

// SetPaneTitle sets a pane's title. Titles are how overlay panes are found
// again later; indices move when the layout changes, titles do not.
func (c *Client) SetPaneTitle(id, title string) error {
	return c.RunSilent("select-pane", "-t", id, "-T", title)
}
