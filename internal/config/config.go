// Package config resolves the shellbuddy install root and the overlay
// configuration. Everything has a working default: a missing config file is
// normal, a broken one is downgraded to a warning. Overlay processes must
// come up even on a half-installed machine.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// EnvDir is the environment variable locating the install root.
// The daemon, the shell hook and the overlay all agree on this.
const EnvDir = "SHELLBUDDY_DIR"

// Well-known file names inside the install root. These are shared with the
// hint daemon and must not change independently of it.
const (
	HintsFileName  = "current_hints.txt"
	PIDFileName    = "daemon.pid"
	CmdLogFileName = "cmd_log.jsonl"
	LogFileName    = "overlay.log"
	ConfigFileName = "config.toml"
)

// Overlay pane titles. The orchestrator finds panes by title, never by
// index, so these have to be stable and unlikely to collide with user panes.
const (
	DefaultStatsTitle = "sb-stats"
	DefaultHintsTitle = "sb-hints"
)

// Config holds the tunable knobs of the overlay. All fields have defaults;
// a config.toml in the install root may override them.
type Config struct {
	StatsPaneTitle  string `toml:"stats_pane_title"`
	HintsPaneTitle  string `toml:"hints_pane_title"`
	StatsPaneHeight int    `toml:"stats_pane_height"` // rows
	HintsPaneHeight int    `toml:"hints_pane_height"` // rows

	RingCapacity int `toml:"ring_capacity"` // samples of waveform history

	SamplePeriodMS  int `toml:"sample_period_ms"`   // sampler cadence
	FramePeriodMS   int `toml:"frame_period_ms"`    // renderer cadence
	ProbeTimeoutMS  int `toml:"probe_timeout_ms"`   // per external probe
	HintPollMS      int `toml:"hint_poll_ms"`       // hint file poll fallback
	FastProbeJoinMS int `toml:"fast_probe_join_ms"` // bounded wait on fast probe

	dir string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		StatsPaneTitle:  DefaultStatsTitle,
		HintsPaneTitle:  DefaultHintsTitle,
		StatsPaneHeight: 8,
		HintsPaneHeight: 13,
		RingCapacity:    120,
		SamplePeriodMS:  1000,
		FramePeriodMS:   100,
		ProbeTimeoutMS:  3000,
		HintPollMS:      500,
		FastProbeJoinMS: 3000,
	}
}

// Dir returns the install root: $SHELLBUDDY_DIR if set, else ~/.shellbuddy.
func Dir() string {
	if dir := os.Getenv(EnvDir); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// No home directory: fall back to cwd-relative, still functional.
		return ".shellbuddy"
	}
	return filepath.Join(home, ".shellbuddy")
}

// Load reads config.toml from the install root on top of the defaults.
// A missing file is not an error. A malformed file returns the defaults
// together with the parse error so callers can log it and move on.
func Load() (Config, error) {
	return LoadDir(Dir())
}

// LoadDir is Load with an explicit install root, for tests.
func LoadDir(dir string) (Config, error) {
	cfg := Default()
	cfg.dir = dir

	path := filepath.Join(dir, ConfigFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		fresh := Default()
		fresh.dir = dir
		return fresh, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.clamp()
	return cfg, nil
}

// clamp keeps overridden values inside sane bounds so a bad config file
// cannot produce a busy-looping sampler or a zero-length ring.
func (c *Config) clamp() {
	if c.StatsPaneTitle == "" {
		c.StatsPaneTitle = DefaultStatsTitle
	}
	if c.HintsPaneTitle == "" {
		c.HintsPaneTitle = DefaultHintsTitle
	}
	if c.StatsPaneHeight < 4 {
		c.StatsPaneHeight = 4
	}
	if c.HintsPaneHeight < 4 {
		c.HintsPaneHeight = 4
	}
	if c.RingCapacity < 80 {
		c.RingCapacity = 80
	}
	if c.SamplePeriodMS < 250 {
		c.SamplePeriodMS = 250
	}
	if c.FramePeriodMS < 33 {
		c.FramePeriodMS = 33
	}
	if c.ProbeTimeoutMS < 500 {
		c.ProbeTimeoutMS = 500
	}
	if c.HintPollMS < 100 {
		c.HintPollMS = 100
	}
	if c.FastProbeJoinMS < 500 {
		c.FastProbeJoinMS = 500
	}
}

// InstallDir returns the install root this config was loaded from.
func (c Config) InstallDir() string {
	if c.dir != "" {
		return c.dir
	}
	return Dir()
}

// HintsFile returns the path the daemon writes hints to.
func (c Config) HintsFile() string { return filepath.Join(c.InstallDir(), HintsFileName) }

// PIDFile returns the daemon PID file path.
func (c Config) PIDFile() string { return filepath.Join(c.InstallDir(), PIDFileName) }

// LogFile returns the overlay log file path.
func (c Config) LogFile() string { return filepath.Join(c.InstallDir(), LogFileName) }

// SamplePeriod returns the sampler cadence as a duration.
func (c Config) SamplePeriod() time.Duration {
	return time.Duration(c.SamplePeriodMS) * time.Millisecond
}

// FramePeriod returns the renderer cadence as a duration.
func (c Config) FramePeriod() time.Duration {
	return time.Duration(c.FramePeriodMS) * time.Millisecond
}

// ProbeTimeout returns the per-probe timeout as a duration.
func (c Config) ProbeTimeout() time.Duration {
	return time.Duration(c.ProbeTimeoutMS) * time.Millisecond
}

// HintPoll returns the hint file poll interval as a duration.
func (c Config) HintPoll() time.Duration { return time.Duration(c.HintPollMS) * time.Millisecond }

// FastProbeJoin returns the bounded wait for the fast probe.
func (c Config) FastProbeJoin() time.Duration {
	return time.Duration(c.FastProbeJoinMS) * time.Millisecond
}
