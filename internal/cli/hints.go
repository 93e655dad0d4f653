package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"shellbuddy/internal/config"
	"shellbuddy/internal/hints"
	"shellbuddy/internal/render"
)

var hintsCmd = &cobra.Command{
	Use:   "hints",
	Short: "Run the hints renderer in the current terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHints()
	},
}

func init() {
	rootCmd.AddCommand(hintsCmd)
}

func runHints() error {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return errors.New("hints renderer needs a terminal on stdout")
	}

	log := newLogger(config.Dir())
	cfg := loadConfig(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	view := hints.NewView(cfg.HintsFile(), cfg.PIDFile())
	screen := render.NewScreen()
	screen.Start()
	defer screen.Close()

	// First frame immediately: a missing hint file renders the waiting
	// line rather than leaving the pane black until the first tick.
	screen.Paint(view.Frame(termWidth()))

	changes := view.Watch(ctx, cfg.HintPoll())
	log.Info("hints renderer started", "file", cfg.HintsFile())
	for {
		select {
		case <-ctx.Done():
			log.Info("hints renderer stopping")
			return nil
		case _, ok := <-changes:
			if !ok {
				return nil
			}
			screen.Paint(view.Frame(termWidth()))
		}
	}
}
