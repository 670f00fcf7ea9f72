package geom

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistSqPointLineSegment(t *testing.T) {
	tests := []struct {
		name    string
		a, b, c Vec2
		want    float64
	}{
		{"perpendicular foot", Vec2{0, 0}, Vec2{10, 0}, Vec2{5, 5}, 25},
		{"before a", Vec2{0, 0}, Vec2{10, 0}, Vec2{-3, 4}, 25},
		{"past b", Vec2{0, 0}, Vec2{10, 0}, Vec2{13, -4}, 25},
		{"on segment", Vec2{0, 0}, Vec2{10, 10}, Vec2{4, 4}, 0},
		{"degenerate segment", Vec2{1, 1}, Vec2{1, 1}, Vec2{4, 5}, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, DistSqPointLineSegment(tt.a, tt.b, tt.c), 1e-9)
		})
	}
}

func TestDistSqDegenerateSegmentNeverNaN(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for i := 0; i < 200; i++ {
		a, c := randVec2(r), randVec2(r)
		got := DistSqPointLineSegment(a, a, c)
		assert.False(t, math.IsNaN(got))
		assert.Equal(t, AbsSq(c.Sub(a)), got)

		a3, c3 := randVec3(r), randVec3(r)
		assert.Equal(t, AbsSq(c3.Sub(a3)), DistSqPointLineSegment(a3, a3, c3))
	}
}

func TestDistPointLineSegment3D(t *testing.T) {
	a, b := Vec3{0, 0, 0}, Vec3{0, 0, 10}
	assert.InDelta(t, 3, DistPointLineSegment(a, b, Vec3{3, 0, 5}), 1e-12)
	assert.InDelta(t, 5, DistPointLineSegment(a, b, Vec3{0, 3, 14}), 1e-12)
}
