package render

import "github.com/charmbracelet/lipgloss"

// Severity buckets a utilization percentage. The same thresholds apply to
// every metric's bar and waveform so colors mean the same thing everywhere.
type Severity int

const (
	Nominal Severity = iota
	Caution
	Critical
)

// Classify maps a percentage to its severity: <50 nominal, <80 caution,
// else critical.
func Classify(pct float64) Severity {
	switch {
	case pct < 50:
		return Nominal
	case pct < 80:
		return Caution
	default:
		return Critical
	}
}

var severityStyles = map[Severity]lipgloss.Style{
	Nominal:  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	Caution:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	Critical: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
}

// Style returns the lipgloss style for a severity.
func Style(s Severity) lipgloss.Style {
	return severityStyles[s]
}

// Colorize styles text by the severity of pct.
func Colorize(text string, pct float64) string {
	return Style(Classify(pct)).Render(text)
}

// DimStyle is used for column headers and chrome.
var DimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
