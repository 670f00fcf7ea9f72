// Package geom is the vector-math core of plumb: 2D and 3D vector value
// types, scalar helpers, geometric predicates, segment distance queries and
// circle-circle intersection. Everything here is pure and safe for
// concurrent use.
package geom

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Epsilon is the tolerance used by the tolerance-based predicates and by
// unit-length checks on normalized vectors.
const Epsilon = 1e-5

// Vec2 is a 2D vector or point.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Vec3 is a 3D vector or point.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Common axis vectors.
var (
	Up      = Vec3{0, 1, 0}
	Forward = Vec3{0, 0, 1}
	Right   = Vec3{1, 0, 0}
)

// Vector is satisfied by Vec2 and Vec3. Functions constrained by it work on
// either dimension.
type Vector[V any] interface {
	Vec2 | Vec3
	Add(V) V
	Sub(V) V
	Scale(float64) V
	Mul(V) V
	Dot(V) float64
	Normalize() V
}

func (a Vec2) Add(b Vec2) Vec2 { return Vec2{a.X + b.X, a.Y + b.Y} }
func (a Vec2) Sub(b Vec2) Vec2 { return Vec2{a.X - b.X, a.Y - b.Y} }

func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Mul is the component-wise product.
func (a Vec2) Mul(b Vec2) Vec2 { return Vec2{a.X * b.X, a.Y * b.Y} }

func (a Vec2) Dot(b Vec2) float64 { return a.X*b.X + a.Y*b.Y }

// Det is the z component of the cross product of a and b extended to 3D.
func (a Vec2) Det(b Vec2) float64 { return a.X*b.Y - a.Y*b.X }

func (v Vec2) Len() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y) }

// Normalize returns the unit vector in the direction of v, or the zero
// vector when v is too short to have a direction.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l < 1e-12 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Perp rotates v by 90 degrees counter-clockwise.
func (v Vec2) Perp() Vec2 { return Vec2{-v.Y, v.X} }

func (a Vec3) Add(b Vec3) Vec3 { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }
func (a Vec3) Sub(b Vec3) Vec3 { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }

func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Mul is the component-wise product.
func (a Vec3) Mul(b Vec3) Vec3 { return Vec3{a.X * b.X, a.Y * b.Y, a.Z * b.Z} }

func (a Vec3) Dot(b Vec3) float64 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

func (v Vec3) Len() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

// Normalize returns the unit vector in the direction of v, or the zero
// vector when v is too short to have a direction.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l < 1e-12 {
		return Vec3{}
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

// ---------------------------------------------------------------------------
// Free functions
// ---------------------------------------------------------------------------

// Dot returns the sum of the component products of a and b.
func Dot[V Vector[V]](a, b V) float64 {
	return a.Dot(b)
}

// Det returns a.X*b.Y - a.Y*b.X, the signed area of the parallelogram
// spanned by a and b.
func Det(a, b Vec2) float64 {
	return a.X*b.Y - a.Y*b.X
}

// Cross returns the 3D cross product a × b.
func Cross(a, b Vec3) Vec3 {
	return a.Cross(b)
}

// AbsSq returns the squared length of v.
func AbsSq[V Vector[V]](v V) float64 {
	return v.Dot(v)
}

// Abs returns the length of v.
func Abs[V Vector[V]](v V) float64 {
	return math.Sqrt(AbsSq(v))
}

// Mult returns the component-wise (Hadamard) product of a and b.
// It is not a dot product.
func Mult[V Vector[V]](a, b V) V {
	return a.Mul(b)
}

// Sqr returns x*x.
func Sqr[T constraints.Integer | constraints.Float](x T) T {
	return x * x
}

// Lerp interpolates from a to b. t is clamped to [0, 1].
func Lerp[V Vector[V]](a, b V, t float64) V {
	t = Clamp(t, 0, 1)
	return a.Add(b.Sub(a).Scale(t))
}

// Clamp limits x to [lo, hi].
func Clamp[T constraints.Ordered](x, lo, hi T) T {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
