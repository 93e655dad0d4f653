// Package render turns metric snapshots and histories into terminal frames.
// Everything here is a pure function of its inputs plus the current terminal
// width, so any frame is independently correct after a resize.
package render

import "strings"

// Eighth-block partials, index 1..7. Index 0 is unused (no partial cell).
var barEighths = [8]rune{' ', '▏', '▎', '▍', '▌', '▋', '▊', '▉'}

const barFull = '█'

// Bar renders pct as a horizontal bar of exactly width cells with
// sub-character resolution: the percentage maps to eighths of a cell, so a
// narrow bar still moves in 1/(8*width) steps instead of whole-cell jumps.
func Bar(pct float64, width int) string {
	if width <= 0 {
		return ""
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}

	eighths := int(pct / 100 * float64(width) * 8)
	full := eighths / 8
	rem := eighths % 8

	var b strings.Builder
	b.Grow(width * 3)
	for i := 0; i < full; i++ {
		b.WriteRune(barFull)
	}
	used := full
	if rem > 0 && used < width {
		b.WriteRune(barEighths[rem])
		used++
	}
	for ; used < width; used++ {
		b.WriteRune(' ')
	}
	return b.String()
}

// FilledCells reports how many cells of a rendered bar are at least partly
// filled. Exposed for tests of the monotonicity property.
func FilledCells(bar string) int {
	n := 0
	for _, r := range bar {
		if r != ' ' {
			n++
		}
	}
	return n
}
