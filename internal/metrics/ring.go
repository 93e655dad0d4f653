package metrics

// Ring is a fixed-capacity circular buffer of samples. It is created full of
// zeros, so a young ring reads as a flat baseline on the left of the
// waveform instead of shifting the plot as it fills.
//
// Ring is not safe for concurrent use; the sampler owns it and hands out
// copies under its own lock.
type Ring struct {
	buf  []float64
	head int // next write position
}

// NewRing returns a ring of the given capacity filled with zeros.
// Capacity must be positive.
func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		capacity = 1
	}
	return &Ring{buf: make([]float64, capacity)}
}

// Push appends a sample, overwriting the oldest. O(1), no allocation.
func (r *Ring) Push(v float64) {
	r.buf[r.head] = v
	r.head = (r.head + 1) % len(r.buf)
}

// Data returns the samples oldest to newest. The result always has exactly
// Cap() elements and is a fresh slice the caller may keep.
func (r *Ring) Data() []float64 {
	out := make([]float64, len(r.buf))
	n := copy(out, r.buf[r.head:])
	copy(out[n:], r.buf[:r.head])
	return out
}

// Last returns the most recently pushed sample (zero if nothing was pushed).
func (r *Ring) Last() float64 {
	i := r.head - 1
	if i < 0 {
		i = len(r.buf) - 1
	}
	return r.buf[i]
}

// Cap returns the fixed capacity.
func (r *Ring) Cap() int { return len(r.buf) }
