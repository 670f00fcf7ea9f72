// Package solid places kernel values onto signed-distance solids from the
// github.com/deadsy/sdfx CAD library. It lets transforms and circles built
// by the kernel be checked against an independent geometry implementation.
// No meshing or rendering happens here.
package solid

import (
	"fmt"
	"math"

	"github.com/chazu/plumb/pkg/geom"
	"github.com/chazu/plumb/pkg/xform"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Solid wraps an sdf.SDF3.
type Solid struct {
	s sdf.SDF3
}

// Wrap returns a Solid for s.
func Wrap(s sdf.SDF3) *Solid {
	return &Solid{s: s}
}

// Bounds returns the axis-aligned bounding box.
func (s *Solid) Bounds() (min, max geom.Vec3) {
	bb := s.s.BoundingBox()
	return FromV3(bb.Min), FromV3(bb.Max)
}

// Distance returns the signed distance from p to the surface; negative
// inside.
func (s *Solid) Distance(p geom.Vec3) float64 {
	return s.s.Evaluate(V3(p))
}

// ---------------------------------------------------------------------------
// Conversions
// ---------------------------------------------------------------------------

func V2(v geom.Vec2) v2.Vec { return v2.Vec{X: v.X, Y: v.Y} }

func V3(v geom.Vec3) v3.Vec { return v3.Vec{X: v.X, Y: v.Y, Z: v.Z} }

func FromV3(v v3.Vec) geom.Vec3 { return geom.Vec3{X: v.X, Y: v.Y, Z: v.Z} }

// M44 rebuilds m as an sdfx matrix from its decomposed parts:
// translate · rotate · scale. Like xform.Decompose it assumes m has no
// shear and a positive scale.
func M44(m xform.Mat4) sdf.M44 {
	t, q, s := xform.Decompose(m)
	axis, angle := axisAngle(q)
	return sdf.Translate3d(V3(t)).
		Mul(sdf.Rotate3d(V3(axis), angle)).
		Mul(sdf.Scale3d(V3(s)))
}

// axisAngle converts q to a unit axis and an angle in [0, π]. A rotation
// too small to have an axis comes back as zero radians about +Z.
func axisAngle(q xform.Quat) (geom.Vec3, float64) {
	q = q.Normalize()
	if q.W < 0 {
		q = q.Scale(-1)
	}
	sinHalf := math.Sqrt(math.Max(0, 1-q.W*q.W))
	if sinHalf < 1e-12 {
		return geom.Forward, 0
	}
	axis := geom.Vec3{X: q.V[0] / sinHalf, Y: q.V[1] / sinHalf, Z: q.V[2] / sinHalf}
	return axis, 2 * math.Acos(geom.Clamp(q.W, -1, 1))
}

// ---------------------------------------------------------------------------
// Primitives and placement
// ---------------------------------------------------------------------------

// Box creates a box with its minimum corner at the origin. sdf.Box3D
// centers the box, so it is shifted by half its size.
func Box(size geom.Vec3) (*Solid, error) {
	s, err := sdf.Box3D(V3(size), 0)
	if err != nil {
		return nil, fmt.Errorf("solid: box: %w", err)
	}
	return Wrap(sdf.Transform3D(s, sdf.Translate3d(V3(size.Scale(0.5))))), nil
}

// Sphere creates a sphere of radius r centered at the origin.
func Sphere(r float64) (*Solid, error) {
	s, err := sdf.Sphere3D(r)
	if err != nil {
		return nil, fmt.Errorf("solid: sphere: %w", err)
	}
	return Wrap(s), nil
}

// Place applies the kernel transform m to s.
func Place(s *Solid, m xform.Mat4) *Solid {
	return Wrap(sdf.Transform3D(s.s, M44(m)))
}

// Translate moves s by offset.
func Translate(s *Solid, offset geom.Vec3) *Solid {
	return Wrap(sdf.Transform3D(s.s, sdf.Translate3d(V3(offset))))
}

// Union returns the union of the given solids.
func Union(solids ...*Solid) *Solid {
	ss := make([]sdf.SDF3, len(solids))
	for i, s := range solids {
		ss[i] = s.s
	}
	return Wrap(sdf.Union3D(ss...))
}

// Difference returns a - b.
func Difference(a, b *Solid) *Solid {
	return Wrap(sdf.Difference3D(a.s, b.s))
}

// Intersection returns the intersection of a and b.
func Intersection(a, b *Solid) *Solid {
	return Wrap(sdf.Intersect3D(a.s, b.s))
}

// Disc returns the 2D signed-distance field of c.
func Disc(c geom.Circle) (sdf.SDF2, error) {
	s, err := sdf.Circle2D(c.Radius)
	if err != nil {
		return nil, fmt.Errorf("solid: disc: %w", err)
	}
	return sdf.Transform2D(s, sdf.Translate2d(V2(c.Center))), nil
}
