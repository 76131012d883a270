package flock

import (
	"math/rand"

	"github.com/lao-tseu-is-alive/go-boids-trails/pkg/geometry"
)

// computeSteering evaluates the three classical flocking rules for one boid
// against its neighbor set and returns the summed velocity adjustment.
// An empty neighbor set contributes exactly zero.
//
// Separation pushes away from neighbors inside the protected range, each
// away-vector weighted by 1/dist (dividing the offset by the squared
// distance leaves a unit direction scaled by the inverse distance, so closer
// neighbors repel more strongly). Alignment steers a fraction of the way
// toward the neighbors' average velocity, cohesion toward their centroid.
func computeSteering(me sample, neighbors []sample, cfg *Config, rng *rand.Rand) geometry.Vector2D {
	if len(neighbors) == 0 {
		return geometry.Vector2D{}
	}

	var (
		sep      geometry.Vector2D
		velSum   geometry.Vector2D
		posSum   geometry.Vector2D
		protSq   = cfg.ProtectedRange * cfg.ProtectedRange
		invCount = 1.0 / float64(len(neighbors))
	)

	for _, n := range neighbors {
		velSum = velSum.Add(n.Vel)
		posSum = posSum.Add(n.Pos)

		away := me.Pos.Sub(n.Pos)
		distSq := away.LenSqr()
		if distSq >= protSq {
			continue
		}
		if distSq < 1.0 {
			// Overlapping boids have no usable direction. Push in a random
			// direction instead of dividing by a near-zero distance.
			sep.X += (rng.Float64() - 0.5) * 2.0
			sep.Y += (rng.Float64() - 0.5) * 2.0
			continue
		}
		sep = sep.Add(away.Mul(1 / distSq))
	}

	separation := sep.Mul(cfg.SeparationWeight)
	alignment := velSum.Mul(invCount).Sub(me.Vel).Mul(cfg.AlignmentWeight)
	cohesion := posSum.Mul(invCount).Sub(me.Pos).Mul(cfg.CohesionWeight)

	return separation.Add(alignment).Add(cohesion)
}
