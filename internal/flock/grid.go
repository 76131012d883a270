package flock

import (
	"math"

	"github.com/lao-tseu-is-alive/go-boids-trails/pkg/geometry"
)

type gridKey struct {
	x, y int
}

// spatialGrid is a cell hash over boid indices used to cut the neighbor
// search from a full pairwise scan to a 3x3 cell scan. The cell size is at
// least the perception radius, so scanning the surrounding cells is
// guaranteed to cover every candidate within range: the neighbor set it
// yields is identical to the naive scan.
type spatialGrid struct {
	cells    map[gridKey][]int
	cellSize float64
}

func newSpatialGrid(cellSize float64) *spatialGrid {
	// Clamp to a minimum of 10 to avoid degenerate tiny cells.
	return &spatialGrid{
		cells:    make(map[gridKey][]int),
		cellSize: math.Max(cellSize, 10.0),
	}
}

// rebuild re-bins all positions. Cell slices are reset to length 0 and
// reused, so steady-state rebuilds allocate almost nothing.
func (g *spatialGrid) rebuild(positions []geometry.Vector2D) {
	for k := range g.cells {
		g.cells[k] = g.cells[k][:0]
	}
	for i, p := range positions {
		key := g.keyFor(p.X, p.Y)
		g.cells[key] = append(g.cells[key], i)
	}
}

func (g *spatialGrid) keyFor(x, y float64) gridKey {
	return gridKey{x: int(math.Floor(x / g.cellSize)), y: int(math.Floor(y / g.cellSize))}
}

// nearby calls fn for every boid index binned in the 3x3 cell block around
// (x, y), including the center cell. Callers still distance-check each hit.
func (g *spatialGrid) nearby(x, y float64, fn func(i int)) {
	center := g.keyFor(x, y)
	for cx := center.x - 1; cx <= center.x+1; cx++ {
		for cy := center.y - 1; cy <= center.y+1; cy++ {
			for _, i := range g.cells[gridKey{x: cx, y: cy}] {
				fn(i)
			}
		}
	}
}
