package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsOrthogonal(t *testing.T) {
	tests := []struct {
		name string
		a, b Vec2
		want bool
	}{
		{"axes", Vec2{1, 0}, Vec2{0, 1}, true},
		{"same direction", Vec2{1, 0}, Vec2{1, 0}, false},
		{"opposite", Vec2{1, 0}, Vec2{-1, 0}, false},
		{"within epsilon", Vec2{1, 0}, Vec2{Epsilon / 2, 1}, true},
		{"outside epsilon", Vec2{1, 0}, Vec2{Epsilon * 2, 1}, false},
		{"zero vector", Vec2{}, Vec2{5, 5}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsOrthogonal(tt.a, tt.b))
		})
	}

	assert.True(t, IsOrthogonal(Vec3{1, 0, 0}, Vec3{0, 0, 1}))
	assert.False(t, IsOrthogonal(Vec3{1, 1, 0}, Vec3{0, 1, 1}))
}

func TestIsParallelExact(t *testing.T) {
	tests := []struct {
		name string
		a, b Vec2
		want bool
	}{
		{"same axis", Vec2{1, 0}, Vec2{3, 0}, true},
		{"opposite axis", Vec2{0, 2}, Vec2{0, -7}, true},
		{"perpendicular", Vec2{1, 0}, Vec2{0, 1}, false},
		{"slightly off", Vec2{1, 0}, Vec2{1, 1e-3}, false},
		{"zero vector", Vec2{}, Vec2{1, 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsParallel(tt.a, tt.b))
		})
	}

	assert.True(t, IsParallel(Vec3{0, 0, 1}, Vec3{0, 0, -4}))
	assert.False(t, IsParallel(Vec3{0, 0, 1}, Vec3{0, 1, 0}))
}

func TestIsParallelTol(t *testing.T) {
	assert.True(t, IsParallelTol(Vec2{1, 0}, Vec2{1, 1e-3}, 0.1))
	assert.True(t, IsParallelTol(Vec2{1, 0}, Vec2{-1, 1e-3}, 0.1))
	assert.False(t, IsParallelTol(Vec2{1, 0}, Vec2{1, 1}, 0.1))
	assert.True(t, IsParallelTol(Vec3{1, 1, 1}, Vec3{2, 2, 2}, 1e-3))
}

func TestIsBetween(t *testing.T) {
	a, b := Vec2{0, 0}, Vec2{10, 0}
	tests := []struct {
		name string
		c    Vec2
		want bool
	}{
		{"midpoint", Vec2{5, 0}, true},
		{"off the line but within extent", Vec2{5, 3}, true},
		{"behind a", Vec2{-1, 0}, false},
		{"at a", Vec2{0, 0}, false},
		{"at b", Vec2{10, 0}, true},
		{"past b", Vec2{11, 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsBetween(a, b, tt.c))
		})
	}

	assert.True(t, IsBetween(Vec3{0, 0, 0}, Vec3{0, 0, 4}, Vec3{0, 1, 2}))
	assert.False(t, IsBetween(Vec3{0, 0, 0}, Vec3{0, 0, 4}, Vec3{0, 0, -2}))
}

func TestLeftOf(t *testing.T) {
	a, b := Vec2{0, 0}, Vec2{1, 0}
	assert.Greater(t, LeftOf(a, b, Vec2{0, 1}), 0.0)
	assert.Less(t, LeftOf(a, b, Vec2{0, -1}), 0.0)
	assert.Equal(t, 0.0, LeftOf(a, b, Vec2{5, 0}))
}
