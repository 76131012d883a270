package flock

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lao-tseu-is-alive/go-boids-trails/pkg/geometry"
)

func TestSpatialGrid_Rebuild(t *testing.T) {
	g := newSpatialGrid(100)

	positions := []geometry.Vector2D{
		{X: 50, Y: 50},   // cell 0,0
		{X: 150, Y: 50},  // cell 1,0
		{X: 50, Y: 150},  // cell 0,1
		{X: 250, Y: 250}, // cell 2,2
	}
	g.rebuild(positions)

	assert.Equal(t, []int{0}, g.cells[gridKey{x: 0, y: 0}])
	assert.Equal(t, []int{1}, g.cells[gridKey{x: 1, y: 0}])
	assert.Equal(t, []int{2}, g.cells[gridKey{x: 0, y: 1}])
	assert.Equal(t, []int{3}, g.cells[gridKey{x: 2, y: 2}])
}

func TestSpatialGrid_RebuildReusesCells(t *testing.T) {
	g := newSpatialGrid(100)

	g.rebuild([]geometry.Vector2D{{X: 50, Y: 50}})
	g.rebuild([]geometry.Vector2D{{X: 150, Y: 50}})

	// The old cell must be emptied, not left with a stale index.
	assert.Empty(t, g.cells[gridKey{x: 0, y: 0}])
	assert.Equal(t, []int{0}, g.cells[gridKey{x: 1, y: 0}])
}

func TestSpatialGrid_MinimumCellSize(t *testing.T) {
	g := newSpatialGrid(0.001)
	assert.Equal(t, 10.0, g.cellSize)
}

func TestSpatialGrid_NearbyCovers3x3Block(t *testing.T) {
	g := newSpatialGrid(100)

	positions := []geometry.Vector2D{
		{X: 150, Y: 150}, // center, cell 1,1
		{X: 50, Y: 50},   // corner neighbor, cell 0,0
		{X: 350, Y: 350}, // cell 3,3, outside the block
	}
	g.rebuild(positions)

	var hits []int
	g.nearby(150, 150, func(i int) { hits = append(hits, i) })

	assert.Contains(t, hits, 0)
	assert.Contains(t, hits, 1)
	assert.NotContains(t, hits, 2)
}

func TestSpatialGrid_NegativeCoordinates(t *testing.T) {
	// Bounce overshoot handling can momentarily query near 0; make sure
	// cells straddling the origin resolve consistently.
	g := newSpatialGrid(100)
	g.rebuild([]geometry.Vector2D{{X: 5, Y: 5}})

	var hits []int
	g.nearby(2, 2, func(i int) { hits = append(hits, i) })
	require.Equal(t, []int{0}, hits)
}

func BenchmarkSpatialGrid_Rebuild(b *testing.B) {
	g := newSpatialGrid(75)
	rng := rand.New(rand.NewSource(42))
	positions := make([]geometry.Vector2D, 1000)
	for i := range positions {
		positions[i] = geometry.Vector2D{X: rng.Float64() * 1024, Y: rng.Float64() * 768}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.rebuild(positions)
	}
}

func BenchmarkSpatialGrid_Nearby(b *testing.B) {
	g := newSpatialGrid(75)
	rng := rand.New(rand.NewSource(42))
	positions := make([]geometry.Vector2D, 1000)
	for i := range positions {
		positions[i] = geometry.Vector2D{X: rng.Float64() * 1024, Y: rng.Float64() * 768}
	}
	g.rebuild(positions)

	b.ResetTimer()
	count := 0
	for i := 0; i < b.N; i++ {
		g.nearby(512, 384, func(int) { count++ })
	}
}
