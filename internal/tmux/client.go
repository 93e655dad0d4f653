// Package tmux provides a thin wrapper around the tmux command line. tmux is
// the only source of truth for pane state; nothing here caches pane handles.
package tmux

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Client executes tmux commands.
type Client struct{}

// NewClient creates a new tmux client.
func NewClient() *Client {
	return &Client{}
}

// DefaultClient is the default local client.
var DefaultClient = NewClient()

// Run executes a tmux command and returns trimmed stdout. Errors carry the
// full command line and tmux's stderr.
func (c *Client) Run(args ...string) (string, error) {
	return c.RunContext(context.Background(), args...)
}

// RunContext executes a tmux command with cancellation support.
func (c *Client) RunContext(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "tmux", args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("tmux %s: %w: %s", strings.Join(args, " "), err, stderr.String())
	}
	return strings.TrimSpace(stdout.String()), nil
}

// RunSilent executes a tmux command ignoring output.
func (c *Client) RunSilent(args ...string) error {
	_, err := c.Run(args...)
	return err
}

// RunSilentContext executes a tmux command ignoring output, with context.
func (c *Client) RunSilentContext(ctx context.Context, args ...string) error {
	_, err := c.RunContext(ctx, args...)
	return err
}

// IsInstalled checks if tmux is available.
func (c *Client) IsInstalled() bool {
	_, err := exec.LookPath("tmux")
	return err == nil
}

// InTmux returns true if currently inside a tmux session.
func InTmux() bool {
	return os.Getenv("TMUX") != ""
}
