package geom

import "math"

// Circle is a 2D circle. Radius is expected to be non-negative.
type Circle struct {
	Center Vec2    `json:"center"`
	Radius float64 `json:"radius"`
}

// overlap returns the center distance and whether the circles touch or
// overlap: |ra - rb| <= d <= ra + rb.
func overlap(a, b Circle) (float64, bool) {
	d := b.Center.Sub(a.Center).Len()
	return d, d <= a.Radius+b.Radius && d >= math.Abs(a.Radius-b.Radius)
}

// CircleIntersects reports whether two circles touch or overlap without
// computing the intersection points. Coincident circles overlap.
func CircleIntersects(a, b Circle) bool {
	_, ok := overlap(a, b)
	return ok
}

// CircleIntersection returns the intersection points of two circles.
//
// When the circles do not overlap, or share the same center (coincident
// circles have no two distinct intersection points), ok is false and both
// points are zero; callers must check ok rather than the points. At
// tangency p1 and p2 are equal.
func CircleIntersection(a, b Circle) (p1, p2 Vec2, ok bool) {
	d, overlaps := overlap(a, b)
	if !overlaps || d == 0 {
		return Vec2{}, Vec2{}, false
	}

	e := b.Center.Sub(a.Center).Scale(1 / d)
	x := (a.Radius*a.Radius - b.Radius*b.Radius + d*d) / (2 * d)
	// Clamp absorbs rounding that would push the radicand below zero at
	// tangency.
	h := math.Sqrt(math.Max(0, a.Radius*a.Radius-x*x))

	mid := a.Center.Add(e.Scale(x))
	off := e.Perp().Scale(h)
	return mid.Add(off), mid.Sub(off), true
}
