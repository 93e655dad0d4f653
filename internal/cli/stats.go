package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"shellbuddy/internal/config"
	"shellbuddy/internal/metrics"
	"shellbuddy/internal/render"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Run the telemetry renderer in the current terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStats()
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats() error {
	// The only fatal startup condition: no terminal to paint on.
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return errors.New("stats renderer needs a terminal on stdout")
	}

	log := newLogger(config.Dir())
	cfg := loadConfig(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src := metrics.NewSystemSource(cfg.ProbeTimeout())
	sampler := metrics.NewSampler(src, cfg.SamplePeriod(), cfg.FastProbeJoin(), cfg.RingCapacity)
	go sampler.Run(ctx)

	screen := render.NewScreen()
	screen.Start()
	defer screen.Close() // mandatory: clear our rows, restore the cursor

	grid := render.DefaultGrid()
	ticker := time.NewTicker(cfg.FramePeriod())
	defer ticker.Stop()

	log.Info("stats renderer started", "period", cfg.FramePeriod())
	for {
		select {
		case <-ctx.Done():
			log.Info("stats renderer stopping")
			return nil
		case <-ticker.C:
			// Width is re-read every frame so a resize mid-session
			// just produces a correctly laid out next frame.
			screen.Paint(grid.Render(sampler.Snapshot(), sampler.Histories(), termWidth()))
		}
	}
}

// termWidth returns the current terminal width, defaulting when the query
// fails (the frame then renders at the clamped minimum widths).
func termWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	return w
}
