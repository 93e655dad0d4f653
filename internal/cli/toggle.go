package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"shellbuddy/internal/config"
	"shellbuddy/internal/overlay"
	"shellbuddy/internal/tmux"
)

var toggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Open or close the overlay pane pair",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runToggle()
	},
}

func init() {
	rootCmd.AddCommand(toggleCmd)
}

func runToggle() error {
	if !tmux.DefaultClient.IsInstalled() {
		return errors.New("tmux is not installed")
	}
	if !tmux.InTmux() {
		return errors.New("toggle must run inside a tmux session")
	}

	log := newLogger(config.Dir())
	cfg := loadConfig(log)

	binPath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locate shellbuddy binary: %w", err)
	}

	orch := overlay.New(overlay.NewTmuxHost(), cfg, binPath, log)
	open, err := orch.Toggle()
	if err != nil {
		return err
	}
	if open {
		fmt.Println("overlay opened")
	} else {
		fmt.Println("overlay closed")
	}
	return nil
}
