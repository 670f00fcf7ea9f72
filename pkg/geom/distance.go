package geom

import "math"

// DistSqPointLineSegment returns the squared distance from c to the segment
// a-b. A degenerate segment (a == b) is treated as the single point a.
func DistSqPointLineSegment[V Vector[V]](a, b, c V) float64 {
	ba := b.Sub(a)
	ca := c.Sub(a)

	lenSq := ba.Dot(ba)
	if lenSq == 0 {
		return ca.Dot(ca)
	}

	r := ca.Dot(ba) / lenSq
	if r < 0 {
		return ca.Dot(ca)
	}
	if r > 1 {
		cb := c.Sub(b)
		return cb.Dot(cb)
	}

	d := c.Sub(a.Add(ba.Scale(r)))
	return d.Dot(d)
}

// DistPointLineSegment returns the distance from c to the segment a-b.
func DistPointLineSegment[V Vector[V]](a, b, c V) float64 {
	return math.Sqrt(DistSqPointLineSegment(a, b, c))
}
