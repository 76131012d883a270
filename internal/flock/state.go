package flock

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/aquilax/go-perlin"
	"github.com/google/uuid"
	golog "github.com/tochemey/goakt/v3/log"

	"github.com/lao-tseu-is-alive/go-boids-trails/pkg/geometry"
)

const windNoiseScale = 0.005

// FlockState owns the full simulation state: the boids, the arena bounds and
// the tuning parameters. It is constructed once, mutated in place by Step and
// read by the renderer between steps. Nothing in here is safe for concurrent
// use; the contract is strict step/render alternation on one goroutine.
type FlockState struct {
	cfg    *Config
	boids  []*Boid
	grid   *spatialGrid
	rng    *rand.Rand
	wind   *perlin.Perlin
	windOn bool
	tick   int
	seed   int64
	runID  string
	logger golog.Logger

	// Scratch buffers reused across ticks.
	perceived []sample
	nextVel   []geometry.Vector2D
	nextPos   []geometry.Vector2D
}

// New validates the configuration and builds a flock with randomized initial
// positions and velocities. A zero cfg.Seed is replaced by a clock-derived
// one; pass a fixed seed for reproducible runs.
func New(cfg *Config, logger golog.Logger) (*FlockState, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = golog.DiscardLogger
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	f := &FlockState{
		cfg:       cfg,
		grid:      newSpatialGrid(cfg.VisRange),
		rng:       rand.New(rand.NewSource(seed)),
		wind:      perlin.NewPerlin(2, 2, 3, seed),
		windOn:    cfg.WindStrength > 0,
		seed:      seed,
		runID:     uuid.NewString(),
		logger:    logger,
		perceived: make([]sample, cfg.NumBoids),
		nextVel:   make([]geometry.Vector2D, cfg.NumBoids),
		nextPos:   make([]geometry.Vector2D, cfg.NumBoids),
	}
	f.spawn()

	logger.Infof("run %s: %d boids in %.0fx%.0f arena (visRange=%.0f, maxlen=%d, seed=%d)",
		f.runID, cfg.NumBoids, cfg.Width, cfg.Height, cfg.VisRange, cfg.MaxTrailLen, seed)
	return f, nil
}

func (f *FlockState) spawn() {
	f.boids = make([]*Boid, f.cfg.NumBoids)
	for i := range f.boids {
		pos := geometry.Vector2D{
			X: f.rng.Float64() * f.cfg.Width,
			Y: f.rng.Float64() * f.cfg.Height,
		}
		vel := geometry.Vector2D{
			X: (f.rng.Float64()*2 - 1) * f.cfg.MaxSpeed / 2,
			Y: (f.rng.Float64()*2 - 1) * f.cfg.MaxSpeed / 2,
		}
		f.boids[i] = newBoid(pos, vel, f.cfg.MaxTrailLen, f.cfg.PerceptionDelay+1)
	}
}

// Reset respawns the flock in place, keeping the configuration and the RNG
// stream. Tick count and trails start over.
func (f *FlockState) Reset() {
	f.spawn()
	f.tick = 0
	f.logger.Infof("run %s: flock reset", f.runID)
}

// Step advances the simulation by one tick. Every boid's steering is
// evaluated against the same per-tick snapshot, then all updates are
// committed at once, so the result does not depend on update order.
func (f *FlockState) Step() error {
	// Phase 1: freeze the perceived state of every boid and bin it.
	f.snapshot()
	f.grid.rebuild(positionsOf(f.perceived))

	// Phase 2: compute every boid's next state from the frozen snapshot.
	var scratch []sample
	for i, b := range f.boids {
		scratch = f.gatherNeighbors(i, b.Pos, scratch[:0])

		me := sample{Pos: b.Pos, Vel: b.Vel}
		vel := b.Vel.Add(computeSteering(me, scratch, f.cfg, f.rng))
		if f.windOn && f.cfg.WindStrength > 0 {
			vel = vel.Add(f.windAt(b.Pos))
		}
		vel = clampSpeed(vel, f.cfg.MinSpeed, f.cfg.MaxSpeed)
		pos := f.applyBoundary(b.Pos.Add(vel), &vel)

		if !pos.IsFinite() || !vel.IsFinite() {
			return &StepError{Tick: f.tick, Err: fmt.Errorf("boid %d reached non-finite state (pos=%s vel=%s)", i, pos, vel)}
		}
		f.nextVel[i] = vel
		f.nextPos[i] = pos
	}

	// Phase 3: commit and record. The trail receives the already-bounded
	// position, so it never contains an out-of-arena point.
	for i, b := range f.boids {
		b.Pos = f.nextPos[i]
		b.Vel = f.nextVel[i]
		b.trail.Push(b.Pos)
		b.past.push(sample{Pos: b.Pos, Vel: b.Vel})
	}
	f.tick++
	return nil
}

// snapshot freezes what every boid is perceived as for this tick: the
// tick-start state when there is no perception delay, the state k ticks ago
// otherwise. All rule evaluation reads only this frozen view.
func (f *FlockState) snapshot() {
	delay := f.cfg.PerceptionDelay
	for i, b := range f.boids {
		if delay == 0 {
			f.perceived[i] = sample{Pos: b.Pos, Vel: b.Vel}
		} else {
			f.perceived[i] = b.past.delayed(delay)
		}
	}
}

// gatherNeighbors appends the perceived states of all boids other than i
// whose perceived position lies within visRange of pos.
func (f *FlockState) gatherNeighbors(i int, pos geometry.Vector2D, out []sample) []sample {
	rangeSq := f.cfg.VisRange * f.cfg.VisRange
	f.grid.nearby(pos.X, pos.Y, func(j int) {
		if j == i {
			return
		}
		if pos.DistanceSquaredTo(f.perceived[j].Pos) <= rangeSq {
			out = append(out, f.perceived[j])
		}
	})
	return out
}

// neighborsNaive is the O(n²) reference used to verify the grid path.
func (f *FlockState) neighborsNaive(i int, pos geometry.Vector2D) []sample {
	rangeSq := f.cfg.VisRange * f.cfg.VisRange
	var out []sample
	for j := range f.perceived {
		if j == i {
			continue
		}
		if pos.DistanceSquaredTo(f.perceived[j].Pos) <= rangeSq {
			out = append(out, f.perceived[j])
		}
	}
	return out
}

func (f *FlockState) windAt(pos geometry.Vector2D) geometry.Vector2D {
	angle := f.wind.Noise2D(pos.X*windNoiseScale, pos.Y*windNoiseScale) * 2 * math.Pi
	return geometry.Vector2D{X: math.Cos(angle), Y: math.Sin(angle)}.Mul(f.cfg.WindStrength)
}

// applyBoundary keeps pos inside the arena according to the configured
// policy. Bounce reflects the offending velocity component in place.
func (f *FlockState) applyBoundary(pos geometry.Vector2D, vel *geometry.Vector2D) geometry.Vector2D {
	w, h := f.cfg.Width, f.cfg.Height
	if f.cfg.Boundary == BoundaryWrap {
		return pos.Wrap(w, h)
	}
	if pos.X < 0 {
		pos.X = -pos.X
		vel.X = -vel.X
	} else if pos.X > w {
		pos.X = 2*w - pos.X
		vel.X = -vel.X
	}
	if pos.Y < 0 {
		pos.Y = -pos.Y
		vel.Y = -vel.Y
	} else if pos.Y > h {
		pos.Y = 2*h - pos.Y
		vel.Y = -vel.Y
	}
	// A boid faster than the arena is wide could still overshoot; clamp.
	return pos.Clamp(w, h)
}

func clampSpeed(vel geometry.Vector2D, min, max float64) geometry.Vector2D {
	vel = vel.Limit(max)
	if min > 0 {
		if speed := vel.Len(); speed > geometry.Epsilon && speed < min {
			vel = vel.Mul(min / speed)
		}
	}
	return vel
}

func positionsOf(samples []sample) []geometry.Vector2D {
	out := make([]geometry.Vector2D, len(samples))
	for i, s := range samples {
		out[i] = s.Pos
	}
	return out
}

// ---------------------------------------------------------------------
// Read-only accessors for the renderer and the outer loop.
// ---------------------------------------------------------------------

// Boids exposes the flock for rendering. Callers must treat it read-only.
func (f *FlockState) Boids() []*Boid { return f.boids }

func (f *FlockState) NumBoids() int { return len(f.boids) }

func (f *FlockState) Tick() int { return f.tick }

func (f *FlockState) Seed() int64 { return f.seed }

func (f *FlockState) RunID() string { return f.runID }

func (f *FlockState) Width() float64 { return f.cfg.Width }

func (f *FlockState) Height() float64 { return f.cfg.Height }

func (f *FlockState) VisRange() float64 { return f.cfg.VisRange }

// SetVisRange retunes the perception radius between ticks (UI slider).
// Non-positive values are ignored.
func (f *FlockState) SetVisRange(r float64) {
	if r <= 0 || r == f.cfg.VisRange {
		return
	}
	f.cfg.VisRange = r
	f.grid = newSpatialGrid(r)
}

func (f *FlockState) PerceptionDelay() int { return f.cfg.PerceptionDelay }

// SetPerceptionDelay changes how many ticks in the past boids perceive each
// other. New delays take effect as soon as enough history accumulates.
func (f *FlockState) SetPerceptionDelay(d int) {
	if d < 0 || d == f.cfg.PerceptionDelay {
		return
	}
	f.cfg.PerceptionDelay = d
	for _, b := range f.boids {
		grown := newHistory(d + 1)
		latest := b.past.delayed(0)
		for i := 0; i < d+1; i++ {
			grown.push(latest)
		}
		b.past = grown
	}
}

func (f *FlockState) WindEnabled() bool { return f.windOn }

// SetWind toggles the noise-field drift. Strength comes from the config;
// enabling wind with a zero configured strength falls back to a small value.
func (f *FlockState) SetWind(on bool) {
	f.windOn = on
	if on && f.cfg.WindStrength == 0 {
		f.cfg.WindStrength = 0.3
	}
}
