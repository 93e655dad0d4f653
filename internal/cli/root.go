// Package cli wires the shellbuddy overlay commands. Each renderer is a
// fixed-behavior process with no flags; all tuning lives in config.toml.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"shellbuddy/internal/config"
)

// Build information - set by goreleaser via ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "shellbuddy",
	Short: "Ambient terminal coaching overlay for tmux",
	Long: `shellbuddy renders a host-telemetry pane and a hints pane inside the
current tmux window and toggles both as a single unit.

Commands:
  shellbuddy toggle    Open or close the overlay pane pair
  shellbuddy stats     Run the telemetry renderer (used inside its pane)
  shellbuddy hints     Run the hints renderer (used inside its pane)`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("shellbuddy %s (%s, built %s)\n", Version, Commit, Date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig loads the overlay config, demoting a malformed file to a log
// warning. The overlay always comes up.
func loadConfig(log *slog.Logger) config.Config {
	cfg, err := config.Load()
	if err != nil {
		log.Warn("config file ignored", "err", err)
	}
	return cfg
}

// newLogger returns a logger writing to the overlay log file in the install
// root. Renderers own their TTY; stray writes to stdout or stderr would
// corrupt the frame, so on any failure logging goes to the void instead.
func newLogger(dir string) *slog.Logger {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	f, err := os.OpenFile(filepath.Join(dir, config.LogFileName),
		os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(f, nil))
}
