package flock

import "github.com/lao-tseu-is-alive/go-boids-trails/pkg/geometry"

// Trail is a bounded FIFO of past positions backed by a fixed ring buffer.
// Push is O(1); once full, each Push evicts the oldest entry. The trail is
// read by the renderer only, the steering rules never look at it.
type Trail struct {
	buf  []geometry.Vector2D
	head int // index of the oldest entry
	size int
}

func NewTrail(capacity int) *Trail {
	return &Trail{buf: make([]geometry.Vector2D, capacity)}
}

func (t *Trail) Cap() int { return len(t.buf) }

func (t *Trail) Len() int { return t.size }

// Push appends a position, evicting the oldest one when at capacity.
func (t *Trail) Push(p geometry.Vector2D) {
	if t.size < len(t.buf) {
		t.buf[(t.head+t.size)%len(t.buf)] = p
		t.size++
		return
	}
	t.buf[t.head] = p
	t.head = (t.head + 1) % len(t.buf)
}

// At returns the i-th entry, oldest first. i must be in [0, Len).
func (t *Trail) At(i int) geometry.Vector2D {
	return t.buf[(t.head+i)%len(t.buf)]
}

// Positions returns the entries ordered oldest to newest.
// The slice is freshly allocated; mutating it does not touch the trail.
func (t *Trail) Positions() []geometry.Vector2D {
	out := make([]geometry.Vector2D, t.size)
	for i := 0; i < t.size; i++ {
		out[i] = t.At(i)
	}
	return out
}

// sample is one past (position, velocity) pair kept for delayed perception.
type sample struct {
	Pos geometry.Vector2D
	Vel geometry.Vector2D
}

// history is the bounded buffer of a boid's own past states. It exists only
// to serve perception delay and is kept separate from the render trail.
type history struct {
	buf  []sample
	head int
	size int
}

func newHistory(capacity int) *history {
	return &history{buf: make([]sample, capacity)}
}

func (h *history) push(s sample) {
	if h.size < len(h.buf) {
		h.buf[(h.head+h.size)%len(h.buf)] = s
		h.size++
		return
	}
	h.buf[h.head] = s
	h.head = (h.head + 1) % len(h.buf)
}

// delayed returns the state k pushes ago (k=0 is the most recent entry).
// When fewer than k+1 states are recorded it returns the oldest one, so a
// freshly spawned boid is perceived at its spawn state.
func (h *history) delayed(k int) sample {
	if h.size == 0 {
		return sample{}
	}
	i := h.size - 1 - k
	if i < 0 {
		i = 0
	}
	return h.buf[(h.head+i)%len(h.buf)]
}
