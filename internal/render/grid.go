package render

import (
	"fmt"
	"strings"

	"shellbuddy/internal/metrics"
)

// Grid lays out the stats frame: one column per metric, each with a header,
// a sub-character bar plus numeric label, and a braille waveform. Geometry
// is recomputed from the terminal width on every call; nothing is cached
// against a stale width.
type Grid struct {
	MinCellWidth int // floor for a metric cell
	LabelWidth   int // reserved for the numeric label inside a cell
	Margins      int // left+right outer margin columns
}

// DefaultGrid matches the stats pane's standard proportions.
func DefaultGrid() Grid {
	return Grid{MinCellWidth: 12, LabelWidth: 10, Margins: 2}
}

type column struct {
	name    string
	pct     float64
	label   string
	history []float64
}

// Render builds the frame for the given snapshot and histories at the given
// terminal width. Rows are returned top to bottom, already styled.
func (g Grid) Render(snap metrics.Snapshot, hist metrics.Histories, cols int) []string {
	columns := []column{
		{name: "CPU", pct: snap.CPUPct, label: pctLabel(snap.CPUPct), history: hist.CPU},
		{name: "GPU", pct: snap.GPUPct, label: pctLabel(snap.GPUPct), history: hist.GPU},
		{name: "RAM", pct: snap.RAMPct(), label: gbLabel(snap.RAMUsedGB, snap.RAMTotalGB), history: hist.RAM},
		{name: "SWAP", pct: snap.SwapPct(), label: gbLabel(snap.SwapUsedGB, snap.SwapTotalGB), history: hist.Swap},
		{name: "PRESS", pct: snap.PressurePct, label: pctLabel(snap.PressurePct)},
	}

	cellWidth := g.cellWidth(cols, len(columns))
	barWidth := cellWidth - g.LabelWidth
	if barWidth < 1 {
		barWidth = 1
	}

	var header, bars, waves strings.Builder
	margin := strings.Repeat(" ", g.Margins/2)
	header.WriteString(margin)
	bars.WriteString(margin)
	waves.WriteString(margin)

	for i, c := range columns {
		if i > 0 {
			header.WriteByte(' ')
			bars.WriteByte(' ')
			waves.WriteByte(' ')
		}
		header.WriteString(DimStyle.Render(pad(c.name, cellWidth)))

		cell := Bar(c.pct, barWidth) + pad(leftPad(c.label, g.LabelWidth), g.LabelWidth)
		bars.WriteString(Colorize(cell, c.pct))

		if len(c.history) > 0 {
			waves.WriteString(Colorize(pad(Waveform(c.history, cellWidth), cellWidth), c.pct))
		} else {
			waves.WriteString(pad("", cellWidth))
		}
	}

	return []string{header.String(), bars.String(), waves.String()}
}

// Rows reports how many terminal rows a frame occupies.
func (g Grid) Rows() int { return 3 }

func (g Grid) cellWidth(cols, n int) int {
	w := (cols-g.Margins)/n - 1
	if w < g.MinCellWidth {
		w = g.MinCellWidth
	}
	return w
}

// pctLabel formats a utilization percentage, e.g. "73.2%".
func pctLabel(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// gbLabel formats used/total gigabytes, e.g. "51.0/64G". A zero total means
// the probe has not reported yet.
func gbLabel(used, total float64) string {
	if total <= 0 {
		return fmt.Sprintf("%.1fG", used)
	}
	return fmt.Sprintf("%.1f/%.0fG", used, total)
}

// pad fits s to exactly width cells, right-padding or rune-truncating.
// Inputs here are single-width runes (blocks, braille, ASCII).
func pad(s string, width int) string {
	runes := []rune(s)
	if len(runes) > width {
		return string(runes[:width])
	}
	return s + strings.Repeat(" ", width-len(runes))
}

func leftPad(s string, width int) string {
	if n := width - len([]rune(s)); n > 0 {
		return strings.Repeat(" ", n) + s
	}
	return s
}
