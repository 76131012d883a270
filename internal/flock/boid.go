package flock

import "github.com/lao-tseu-is-alive/go-boids-trails/pkg/geometry"

// Boid is a single flock member. Pos and Vel are exported so the renderer
// can read them directly; everything that mutates a boid lives in Step.
type Boid struct {
	Pos geometry.Vector2D
	Vel geometry.Vector2D

	trail *Trail
	past  *history
}

func newBoid(pos, vel geometry.Vector2D, trailCap, histCap int) *Boid {
	b := &Boid{
		Pos:   pos,
		Vel:   vel,
		trail: NewTrail(trailCap),
		past:  newHistory(histCap),
	}
	// Seed the perception history so delayed lookups are defined from tick 0.
	for i := 0; i < histCap; i++ {
		b.past.push(sample{Pos: pos, Vel: vel})
	}
	return b
}

// Trail returns the boid's past positions, oldest to newest. Render only.
func (b *Boid) Trail() []geometry.Vector2D {
	return b.trail.Positions()
}

// TrailLen returns the current number of recorded trail positions.
func (b *Boid) TrailLen() int {
	return b.trail.Len()
}

// Delayed returns the boid's state as perceived k ticks in the past.
func (b *Boid) Delayed(k int) (pos, vel geometry.Vector2D) {
	s := b.past.delayed(k)
	return s.Pos, s.Vel
}
