package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircleIntersection(t *testing.T) {
	a := Circle{Center: Vec2{0, 0}, Radius: 2}
	b := Circle{Center: Vec2{3, 0}, Radius: 2}

	p1, p2, ok := CircleIntersection(a, b)
	require.True(t, ok)

	for _, p := range []Vec2{p1, p2} {
		assert.InDelta(t, 2, p.Sub(a.Center).Len(), 1e-4)
		assert.InDelta(t, 2, p.Sub(b.Center).Len(), 1e-4)
	}
	assert.InDelta(t, 1.5, p1.X, 1e-12)
	assert.Greater(t, p1.Y, 0.0)
	assert.InDelta(t, -p1.Y, p2.Y, 1e-12)
}

func TestCircleIntersectionTangent(t *testing.T) {
	a := Circle{Center: Vec2{0, 0}, Radius: 1}
	b := Circle{Center: Vec2{2, 0}, Radius: 1}

	p1, p2, ok := CircleIntersection(a, b)
	require.True(t, ok)
	assert.False(t, math.IsNaN(p1.X) || math.IsNaN(p1.Y))
	assert.InDelta(t, 1, p1.X, 1e-9)
	assert.InDelta(t, 0, p1.Y, 1e-9)
	assert.Equal(t, p1, p2)
}

func TestCircleIntersectionInternalTangent(t *testing.T) {
	a := Circle{Center: Vec2{0, 0}, Radius: 3}
	b := Circle{Center: Vec2{1, 0}, Radius: 2}

	p1, _, ok := CircleIntersection(a, b)
	require.True(t, ok)
	assert.InDelta(t, 3, p1.X, 1e-9)
	assert.InDelta(t, 0, p1.Y, 1e-9)
}

func TestCircleIntersectionNoOverlap(t *testing.T) {
	tests := []struct {
		name string
		a, b Circle
	}{
		{"far apart", Circle{Vec2{0, 0}, 1}, Circle{Vec2{3, 0}, 1}},
		{"contained", Circle{Vec2{0, 0}, 5}, Circle{Vec2{1, 0}, 1}},
		{"concentric", Circle{Vec2{2, 2}, 5}, Circle{Vec2{2, 2}, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p1, p2, ok := CircleIntersection(tt.a, tt.b)
			assert.False(t, ok)
			assert.Equal(t, Vec2{}, p1)
			assert.Equal(t, Vec2{}, p2)
			assert.False(t, CircleIntersects(tt.a, tt.b))
		})
	}
}

func TestCoincidentCircles(t *testing.T) {
	a := Circle{Center: Vec2{1, 1}, Radius: 2}

	assert.True(t, CircleIntersects(a, a))

	p1, p2, ok := CircleIntersection(a, a)
	assert.False(t, ok)
	assert.Equal(t, Vec2{}, p1)
	assert.Equal(t, Vec2{}, p2)
}

func TestCircleIntersects(t *testing.T) {
	assert.False(t, CircleIntersects(Circle{Vec2{0, 0}, 1}, Circle{Vec2{3, 0}, 1}))
	assert.True(t, CircleIntersects(Circle{Vec2{0, 0}, 2}, Circle{Vec2{3, 0}, 2}))
	assert.True(t, CircleIntersects(Circle{Vec2{0, 0}, 1}, Circle{Vec2{2, 0}, 1}))
}
