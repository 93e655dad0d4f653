package render

import (
	"testing"
	"unicode/utf8"
)

func TestBraillePairEndpoints(t *testing.T) {
	t.Parallel()

	if got := BraillePair(0, 0); got != '⠀' {
		t.Errorf("BraillePair(0,0) = %U, want U+2800", got)
	}
	if got := BraillePair(100, 100); got != '⣿' {
		t.Errorf("BraillePair(100,100) = %U, want U+28FF", got)
	}
}

func TestBrailleLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		samples int
		want    int // ceil(samples/2)
	}{
		{0, 0},
		{1, 1},
		{2, 1},
		{7, 4},
		{80, 40},
	}
	for _, tc := range tests {
		in := make([]float64, tc.samples)
		if got := utf8.RuneCountInString(Braille(in)); got != tc.want {
			t.Errorf("Braille(%d samples) length = %d, want %d", tc.samples, got, tc.want)
		}
	}
}

func TestLevelQuantization(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pct  float64
		want int
	}{
		{-5, 0},
		{0, 0},
		{0.1, 1}, // any non-zero lights the bottom dot
		{24, 1},
		{25, 2},
		{60, 3},
		{75, 4},
		{99, 4},
		{100, 4},
	}
	for _, tc := range tests {
		if got := level(tc.pct); got != tc.want {
			t.Errorf("level(%v) = %d, want %d", tc.pct, got, tc.want)
		}
	}
}

func TestBrailleColumnsIndependent(t *testing.T) {
	t.Parallel()

	leftOnly := BraillePair(100, 0)
	rightOnly := BraillePair(0, 100)
	if leftOnly == rightOnly {
		t.Error("left and right columns must encode independently")
	}
	if leftOnly|rightOnly != BraillePair(100, 100) {
		t.Error("columns must combine via OR")
	}
}

func TestWaveformWidth(t *testing.T) {
	t.Parallel()

	history := make([]float64, 120)
	for i := range history {
		history[i] = float64(i % 100)
	}

	for _, width := range []int{5, 20, 40} {
		got := utf8.RuneCountInString(Waveform(history, width))
		if got > width {
			t.Errorf("Waveform(120 samples, width %d) = %d runes", width, got)
		}
	}

	// Short history is not stretched.
	short := []float64{10, 20, 30}
	if got := utf8.RuneCountInString(Waveform(short, 40)); got != 2 {
		t.Errorf("short history length = %d, want 2", got)
	}
}

func TestWaveformKeepsNewestSample(t *testing.T) {
	t.Parallel()

	history := make([]float64, 200)
	history[len(history)-1] = 100
	wave := []rune(Waveform(history, 10))
	last := wave[len(wave)-1]
	// The newest sample is 100: its column must be fully lit.
	if last&rightLevels[4] != rightLevels[4] {
		t.Errorf("newest sample not preserved in decimation: last rune %U", last)
	}
}
