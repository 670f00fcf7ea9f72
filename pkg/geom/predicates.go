package geom

import "math"

// IsOrthogonal reports whether a and b are perpendicular, i.e. whether their
// dot product lies strictly inside (-Epsilon, Epsilon).
func IsOrthogonal[V Vector[V]](a, b V) bool {
	d := a.Dot(b)
	return d < Epsilon && d > -Epsilon
}

// angleDeg returns the angle between a and b in degrees, in [0, 180].
// Zero-length inputs normalize to the zero vector and yield 90.
func angleDeg[V Vector[V]](a, b V) float64 {
	an, bn := a.Normalize(), b.Normalize()
	return math.Acos(Clamp(an.Dot(bn), -1, 1)) * (180 / math.Pi)
}

// IsParallel reports whether the angle between a and b is exactly 0 or
// exactly 180 degrees. The comparison is exact floating-point equality, so
// directions that are parallel in theory can fail after rounding; use
// IsParallelTol when a tolerance is wanted.
func IsParallel[V Vector[V]](a, b V) bool {
	angle := angleDeg(a, b)
	return angle == 0 || angle == 180
}

// IsParallelTol reports whether the angle between a and b is within tolDeg
// degrees of 0 or 180.
func IsParallelTol[V Vector[V]](a, b V, tolDeg float64) bool {
	angle := angleDeg(a, b)
	return angle <= tolDeg || angle >= 180-tolDeg
}

// IsBetween reports whether c projects onto the segment a-b: c must lie in
// the direction of b as seen from a and no farther from a than b is. c does
// not have to lie on the line itself.
func IsBetween[V Vector[V]](a, b, c V) bool {
	ab := b.Sub(a)
	ac := c.Sub(a)
	if ab.Dot(ac) <= 0 {
		return false
	}
	return ab.Dot(ab) >= ac.Dot(ac)
}

// LeftOf returns the signed orientation of c relative to the directed line
// a→b: positive when c lies to the left, zero on the line, negative on the
// right.
func LeftOf(a, b, c Vec2) float64 {
	return Det(a.Sub(c), b.Sub(a))
}
