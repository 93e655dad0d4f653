package render

import (
	"fmt"
	"os"
	"sync"

	"github.com/muesli/termenv"
)

// Screen paints frames in place with cursor addressing. It never clears the
// whole terminal: each frame moves to a row, clears that row, and writes the
// new content. Row positions are fixed relative to the pane's top-left, so
// repainting is idempotent and survives resizes.
type Screen struct {
	out *termenv.Output

	mu       sync.Mutex
	ownsRows int // high-water mark of rows we have painted
	started  bool
}

// NewScreen wraps stdout.
func NewScreen() *Screen {
	return &Screen{out: termenv.NewOutput(os.Stdout)}
}

// Start hides the cursor. Must be paired with Close.
func (s *Screen) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.out.HideCursor()
	s.started = true
}

// Paint replaces the screen's rows with lines, one terminal row each.
// Rows painted by a previous frame but absent from this one are cleared.
func (s *Screen) Paint(lines []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, line := range lines {
		s.out.MoveCursor(i+1, 1)
		s.out.ClearLine()
		fmt.Fprint(s.out, line)
	}
	for i := len(lines); i < s.ownsRows; i++ {
		s.out.MoveCursor(i+1, 1)
		s.out.ClearLine()
	}
	if len(lines) > s.ownsRows {
		s.ownsRows = len(lines)
	}
}

// Close clears every row the screen has painted and restores the cursor.
// This is mandatory teardown: a killed renderer must not leave droppings or
// a hidden cursor behind in its pane.
func (s *Screen) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	for i := 0; i < s.ownsRows; i++ {
		s.out.MoveCursor(i+1, 1)
		s.out.ClearLine()
	}
	s.out.MoveCursor(1, 1)
	s.out.ShowCursor()
	s.started = false
}
