package flock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lao-tseu-is-alive/go-boids-trails/pkg/geometry"
)

func TestTrail_PushAndOrder(t *testing.T) {
	tr := NewTrail(3)
	assert.Equal(t, 0, tr.Len())
	assert.Equal(t, 3, tr.Cap())

	tr.Push(geometry.Vector2D{X: 1})
	tr.Push(geometry.Vector2D{X: 2})
	require.Equal(t, 2, tr.Len())

	got := tr.Positions()
	require.Len(t, got, 2)
	assert.Equal(t, geometry.Vector2D{X: 1}, got[0])
	assert.Equal(t, geometry.Vector2D{X: 2}, got[1])
}

func TestTrail_EvictsOldestAtCapacity(t *testing.T) {
	tr := NewTrail(3)
	for i := 1; i <= 5; i++ {
		tr.Push(geometry.Vector2D{X: float64(i)})
		assert.LessOrEqual(t, tr.Len(), 3)
	}

	require.Equal(t, 3, tr.Len())
	got := tr.Positions()
	assert.Equal(t, geometry.Vector2D{X: 3}, got[0])
	assert.Equal(t, geometry.Vector2D{X: 4}, got[1])
	assert.Equal(t, geometry.Vector2D{X: 5}, got[2])
}

func TestTrail_PositionsIsACopy(t *testing.T) {
	tr := NewTrail(2)
	tr.Push(geometry.Vector2D{X: 1})

	got := tr.Positions()
	got[0].X = 99

	assert.Equal(t, geometry.Vector2D{X: 1}, tr.At(0))
}

func TestHistory_Delayed(t *testing.T) {
	h := newHistory(3)

	// Empty history is defined to return the zero sample.
	assert.Equal(t, sample{}, h.delayed(0))

	h.push(sample{Pos: geometry.Vector2D{X: 1}})
	h.push(sample{Pos: geometry.Vector2D{X: 2}})
	h.push(sample{Pos: geometry.Vector2D{X: 3}})

	assert.Equal(t, 3.0, h.delayed(0).Pos.X)
	assert.Equal(t, 2.0, h.delayed(1).Pos.X)
	assert.Equal(t, 1.0, h.delayed(2).Pos.X)

	// Wrap-around keeps the k-ago semantics intact.
	h.push(sample{Pos: geometry.Vector2D{X: 4}})
	assert.Equal(t, 4.0, h.delayed(0).Pos.X)
	assert.Equal(t, 2.0, h.delayed(2).Pos.X)

	// Asking further back than recorded clamps to the oldest entry.
	assert.Equal(t, 2.0, h.delayed(9).Pos.X)
}
