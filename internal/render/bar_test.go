package render

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestBarExactWidth(t *testing.T) {
	t.Parallel()

	for _, width := range []int{1, 4, 10, 40} {
		for pct := 0.0; pct <= 100; pct += 2.5 {
			bar := Bar(pct, width)
			if n := utf8.RuneCountInString(bar); n != width {
				t.Fatalf("Bar(%v, %d) rune count = %d", pct, width, n)
			}
		}
	}
}

func TestBarEndpoints(t *testing.T) {
	t.Parallel()

	if got := Bar(0, 8); got != strings.Repeat(" ", 8) {
		t.Errorf("Bar(0) = %q, want all empty", got)
	}
	if got := Bar(100, 8); got != strings.Repeat("█", 8) {
		t.Errorf("Bar(100) = %q, want all full", got)
	}
}

func TestBarMonotonic(t *testing.T) {
	t.Parallel()

	const width = 10
	prev := -1
	for pct := 0.0; pct <= 100; pct += 0.5 {
		filled := FilledCells(Bar(pct, width))
		if filled < prev {
			t.Fatalf("filled cells decreased at pct=%v: %d -> %d", pct, prev, filled)
		}
		prev = filled
	}
	if prev != width {
		t.Errorf("final filled cells = %d, want %d", prev, width)
	}
}

func TestBarClampsOutOfRange(t *testing.T) {
	t.Parallel()

	if Bar(-10, 5) != Bar(0, 5) {
		t.Error("negative pct should render as empty")
	}
	if Bar(250, 5) != Bar(100, 5) {
		t.Error("overrange pct should render as full")
	}
}

func TestBarSubCharacterResolution(t *testing.T) {
	t.Parallel()

	// At width 4, 3% is an eighth of a cell: visible as a partial glyph
	// where a whole-cell bar would still be empty.
	if Bar(3.2, 4) == Bar(0, 4) {
		t.Error("small pct must be visible via partial-eighth glyph")
	}
}
