package hints

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
)

// Layout constants for the logo overlay. The contract is what matters: the
// hint text on a logo row never reaches the logo column, and narrow
// terminals clamp instead of corrupting the layout.
const (
	logoRightMargin = 1
	logoGap         = 2
	minLogoColumn   = 24
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true)
	chromeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	dangerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	tipStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	upgradeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	thinkingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
	logoStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	cmdStyle      = lipgloss.NewStyle().Bold(true)
	staleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
)

func severityStyle(s Severity) lipgloss.Style {
	switch s {
	case SeverityDanger:
		return dangerStyle
	case SeverityWarn:
		return warnStyle
	case SeverityUpgrade:
		return upgradeStyle
	default:
		return tipStyle
	}
}

// View renders the hint file into terminal rows. It holds the last content
// that parsed so a daemon crash leaves the pane informative rather than
// empty.
type View struct {
	HintsFile string
	PIDFile   string

	lastContent string
	haveContent bool
}

// NewView creates a view over the given hint and PID file paths.
func NewView(hintsFile, pidFile string) *View {
	return &View{HintsFile: hintsFile, PIDFile: pidFile}
}

// WaitingMessage is the single row shown while the hint file does not exist
// yet. Missing file means "daemon not ready", not an error.
const WaitingMessage = "waiting for shellbuddy hints ..."

// Frame reads the hint file and renders it at the given terminal width.
func (v *View) Frame(cols int) []string {
	data, err := os.ReadFile(v.HintsFile)
	switch {
	case err == nil:
		v.lastContent = string(data)
		v.haveContent = true
	case !v.haveContent:
		return []string{chromeStyle.Render(WaitingMessage)}
	}
	// Read failed but we have earlier content: render that.

	lines := ParseFile(v.lastContent)
	stale := !DaemonAlive(v.PIDFile)
	return v.renderLines(lines, cols, stale)
}

func (v *View) renderLines(lines []Line, cols int, stale bool) []string {
	logoCol := logoColumn(lines, cols)

	out := make([]string, 0, len(lines)+1)
	if stale {
		out = append(out, staleStyle.Render("! daemon not running — hints may be stale"))
	}
	for _, line := range lines {
		out = append(out, renderLine(line, cols, logoCol))
	}
	return out
}

// logoColumn computes the right-anchored logo start column for this frame:
// wide enough for the widest fragment, clamped so narrow terminals degrade
// instead of wrapping.
func logoColumn(lines []Line, cols int) int {
	maxLogo := 0
	for _, l := range lines {
		if l.Kind == KindLogo || l.Kind == KindLogoTag {
			if w := runewidth.StringWidth(l.Logo); w > maxLogo {
				maxLogo = w
			}
		}
	}
	col := cols - maxLogo - logoRightMargin
	if col < minLogoColumn {
		col = minLogoColumn
	}
	return col
}

// renderLine paints one parsed line. Plain rows may use the full width;
// logo rows share the row with a right-anchored fragment and hard-truncate
// the hint so the two can never collide.
func renderLine(line Line, cols, logoCol int) string {
	switch line.Kind {
	case KindBlank:
		return ""

	case KindHeader:
		return headerStyle.Render(fitWidth(line.Text, cols))

	case KindSeparator:
		return chromeStyle.Render(fitWidth(line.Text, cols))

	case KindDivider:
		return chromeStyle.Render(DividerToken)

	case KindThinking:
		return thinkingStyle.Render(fitWidth(line.Text, cols))

	case KindRule:
		return severityStyle(line.Severity).Render(fitWidth(line.Text, cols))

	case KindAmbient:
		return fitWidth(line.Text, cols)

	case KindIdleTip:
		return renderIdleTip(line, cols)

	case KindIdleLabel:
		return chromeStyle.Render(fitWidth(line.Text, cols))

	case KindLogo, KindLogoTag:
		return renderLogoRow(line, logoCol)

	default:
		return ""
	}
}

func renderIdleTip(line Line, cols int) string {
	cmd := line.Cmd
	desc := line.Desc
	if w := runewidth.StringWidth(cmd) + 3; w < cols {
		desc = truncate.StringWithTail(desc, uint(cols-w), "…")
	} else {
		cmd = truncate.StringWithTail(cmd, uint(max(cols, 1)), "…")
		desc = ""
	}
	out := cmdStyle.Render(cmd)
	if desc != "" {
		out += chromeStyle.Render(" — " + desc)
	}
	return out
}

// renderLogoRow places the inner hint on the left and the logo fragment at
// logoCol. The invariant: the hint's rightmost column is strictly less than
// logoCol (there is always at least logoGap of air).
func renderLogoRow(line Line, logoCol int) string {
	maxHint := logoCol - logoGap
	if maxHint < 0 {
		maxHint = 0
	}

	var plain string
	var style lipgloss.Style
	if line.Inner != nil {
		switch line.Inner.Kind {
		case KindRule:
			plain = line.Inner.Text
			style = severityStyle(line.Inner.Severity)
		case KindIdleTip:
			plain = line.Inner.Cmd + " — " + line.Inner.Desc
			style = cmdStyle
		case KindIdleLabel:
			plain = line.Inner.Text
			style = chromeStyle
		case KindThinking:
			plain = line.Inner.Text
			style = thinkingStyle
		case KindAmbient:
			plain = line.Inner.Text
		}
	}
	plain = truncate.StringWithTail(plain, uint(maxHint), "…")

	padding := logoCol - runewidth.StringWidth(plain)
	if padding < 0 {
		padding = 0
	}

	styled := plain
	if plain != "" {
		styled = style.Render(plain)
	}
	return styled + strings.Repeat(" ", padding) + logoStyle.Render(line.Logo)
}

// fitWidth hard-truncates s to the terminal width.
func fitWidth(s string, cols int) string {
	if cols <= 0 {
		return ""
	}
	return truncate.StringWithTail(s, uint(cols), "…")
}

// Watch delivers a tick whenever the hint file may have changed: an fsnotify
// event on its directory, or the poll interval elapsing. Polling stays on
// even with fsnotify working — the file may not exist yet, and editors and
// atomic renames are easy to miss.
func (v *View) Watch(ctx context.Context, poll time.Duration) <-chan struct{} {
	ch := make(chan struct{}, 1)

	notify := func() {
		select {
		case ch <- struct{}{}:
		default:
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err == nil {
		// Watch the directory: the daemon writes via rename, which
		// replaces the inode a file-level watch would be pinned to.
		if err := watcher.Add(filepath.Dir(v.HintsFile)); err != nil {
			watcher.Close()
			watcher = nil
		}
	} else {
		watcher = nil
	}

	go func() {
		defer close(ch)
		if watcher != nil {
			defer watcher.Close()
		}

		ticker := time.NewTicker(poll)
		defer ticker.Stop()

		for {
			if watcher != nil {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					notify()
				case ev := <-watcher.Events:
					if filepath.Base(ev.Name) == filepath.Base(v.HintsFile) {
						notify()
					}
				case <-watcher.Errors:
					// Degrade silently to pure polling.
				}
				continue
			}
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				notify()
			}
		}
	}()

	return ch
}
