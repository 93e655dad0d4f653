package render

import "strings"

// Braille dot numbering within a cell:
//
//	1 4
//	2 5
//	3 6
//	7 8
//
// Each output rune packs two consecutive samples: the earlier sample fills
// the left dot column from the bottom up, the later one the right column.
// Per-level masks are precomputed; a glyph is the OR of its two columns on
// top of the U+2800 base.
const brailleBase = 0x2800

var (
	leftLevels  = [5]rune{0x00, 0x40, 0x44, 0x46, 0x47}
	rightLevels = [5]rune{0x00, 0x80, 0xA0, 0xB0, 0xB8}
)

// level quantizes a percentage to the 5 fill levels of one dot column.
// Any non-zero value lights at least the bottom dot.
func level(pct float64) int {
	switch {
	case pct <= 0:
		return 0
	case pct >= 100:
		return 4
	default:
		l := int(pct/25) + 1
		if l > 4 {
			l = 4
		}
		return l
	}
}

// BraillePair encodes two sample percentages into a single braille rune.
func BraillePair(left, right float64) rune {
	return brailleBase | leftLevels[level(left)] | rightLevels[level(right)]
}

// Braille renders samples as a braille waveform, two samples per rune,
// oldest on the left. An odd trailing sample occupies only the left column
// of its cell. Output length in runes is ceil(len(samples)/2).
func Braille(samples []float64) string {
	var b strings.Builder
	b.Grow((len(samples)/2 + 1) * 3)
	for i := 0; i < len(samples); i += 2 {
		if i+1 < len(samples) {
			b.WriteRune(BraillePair(samples[i], samples[i+1]))
		} else {
			b.WriteRune(brailleBase | leftLevels[level(samples[i])])
		}
	}
	return b.String()
}

// Waveform resamples history (oldest..newest) down to width runes worth of
// braille, i.e. 2*width samples. When the history is shorter it is used
// as-is; when longer, the most recent window wins after an even-stride
// decimation so the full buffer still shapes the curve.
func Waveform(history []float64, width int) string {
	if width <= 0 || len(history) == 0 {
		return ""
	}
	want := width * 2
	if len(history) <= want {
		return Braille(history)
	}

	out := make([]float64, want)
	// Even-stride pick across the buffer, anchored so the newest sample
	// is always included.
	for i := 0; i < want; i++ {
		idx := (i*(len(history)-1) + (want-1)/2) / (want - 1)
		out[i] = history[idx]
	}
	out[want-1] = history[len(history)-1]
	return Braille(out)
}
