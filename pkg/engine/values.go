package engine

import (
	"fmt"
	"strings"

	"github.com/chazu/plumb/pkg/geom"
	"github.com/chazu/plumb/pkg/solid"
	"github.com/chazu/plumb/pkg/xform"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Custom Sexp types for passing kernel values through the zygomys environment
// ---------------------------------------------------------------------------

type sexpVec2 struct {
	vec geom.Vec2
}

func (v *sexpVec2) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec2 %g %g)", v.vec.X, v.vec.Y)
}
func (v *sexpVec2) Type() *zygo.RegisteredType { return nil }

type sexpVec3 struct {
	vec geom.Vec3
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// sexpQuat wraps a rotation produced by euler, look-rotation or
// extract-rotation.
type sexpQuat struct {
	q xform.Quat
}

func (q *sexpQuat) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(quat %g %g %g %g)", q.q.W, q.q.V[0], q.q.V[1], q.q.V[2])
}
func (q *sexpQuat) Type() *zygo.RegisteredType { return nil }

type sexpMat4 struct {
	m xform.Mat4
}

func (m *sexpMat4) SexpString(ps *zygo.PrintState) string {
	rows := make([]string, 4)
	for r := 0; r < 4; r++ {
		rows[r] = fmt.Sprintf("[%g %g %g %g]", m.m.At(r, 0), m.m.At(r, 1), m.m.At(r, 2), m.m.At(r, 3))
	}
	return "(mat4 " + strings.Join(rows, " ") + ")"
}
func (m *sexpMat4) Type() *zygo.RegisteredType { return nil }

type sexpCircle struct {
	c geom.Circle
}

func (c *sexpCircle) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(circle (vec2 %g %g) %g)", c.c.Center.X, c.c.Center.Y, c.c.Radius)
}
func (c *sexpCircle) Type() *zygo.RegisteredType { return nil }

type sexpSolid struct {
	s *solid.Solid
}

func (s *sexpSolid) SexpString(ps *zygo.PrintState) string {
	min, max := s.s.Bounds()
	return fmt.Sprintf("(solid (%g %g %g) (%g %g %g))", min.X, min.Y, min.Z, max.X, max.Y, max.Z)
}
func (s *sexpSolid) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

func describe(s zygo.Sexp) string {
	return fmt.Sprintf("%T (%s)", s, s.SexpString(nil))
}

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %s", describe(s))
}

func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %s", describe(s))
}

func toBool(s zygo.Sexp) (bool, error) {
	if v, ok := s.(*zygo.SexpBool); ok {
		return v.Val, nil
	}
	return false, fmt.Errorf("expected boolean, got %s", describe(s))
}

func toVec2(s zygo.Sexp) (geom.Vec2, error) {
	if v, ok := s.(*sexpVec2); ok {
		return v.vec, nil
	}
	return geom.Vec2{}, fmt.Errorf("expected vec2, got %s", describe(s))
}

func toVec3(s zygo.Sexp) (geom.Vec3, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return geom.Vec3{}, fmt.Errorf("expected vec3, got %s", describe(s))
}

func toQuat(s zygo.Sexp) (xform.Quat, error) {
	if q, ok := s.(*sexpQuat); ok {
		return q.q, nil
	}
	return xform.Quat{}, fmt.Errorf("expected rotation, got %s", describe(s))
}

// toRotation accepts a rotation or a vec3 of Euler angles in degrees.
func toRotation(s zygo.Sexp) (xform.Quat, error) {
	if v, ok := s.(*sexpVec3); ok {
		return xform.Euler(v.vec), nil
	}
	q, err := toQuat(s)
	if err != nil {
		return xform.Quat{}, fmt.Errorf("expected rotation or euler vec3, got %s", describe(s))
	}
	return q, nil
}

func toMat4(s zygo.Sexp) (xform.Mat4, error) {
	if m, ok := s.(*sexpMat4); ok {
		return m.m, nil
	}
	return xform.Mat4{}, fmt.Errorf("expected mat4, got %s", describe(s))
}

func toCircle(s zygo.Sexp) (geom.Circle, error) {
	if c, ok := s.(*sexpCircle); ok {
		return c.c, nil
	}
	return geom.Circle{}, fmt.Errorf("expected circle, got %s", describe(s))
}

func toSolid(s zygo.Sexp) (*solid.Solid, error) {
	if v, ok := s.(*sexpSolid); ok {
		return v.s, nil
	}
	return nil, fmt.Errorf("expected solid, got %s", describe(s))
}

// ---------------------------------------------------------------------------
// Result construction
// ---------------------------------------------------------------------------

func sexpFloat(f float64) zygo.Sexp { return &zygo.SexpFloat{Val: f} }

func sexpInt(i int64) zygo.Sexp { return &zygo.SexpInt{Val: i} }

func sexpBool(b bool) zygo.Sexp { return &zygo.SexpBool{Val: b} }

func sexpInts(xs []int) zygo.Sexp {
	items := make([]zygo.Sexp, len(xs))
	for i, x := range xs {
		items[i] = sexpInt(int64(x))
	}
	return zygo.MakeList(items)
}

// SolidBounds is the Go form of a solid returned from an evaluation.
type SolidBounds struct {
	Min geom.Vec3 `json:"min"`
	Max geom.Vec3 `json:"max"`
}

// toValue converts an evaluation result to a plain Go value: float64,
// int64, bool, string, geom.Vec2, geom.Vec3, geom.Circle, xform.Quat,
// xform.Mat4, SolidBounds, []any for lists and arrays, or nil for the empty
// list. Anything else is returned as its printed form.
func toValue(s zygo.Sexp) any {
	switch v := s.(type) {
	case nil:
		return nil
	case *zygo.SexpInt:
		return v.Val
	case *zygo.SexpFloat:
		return v.Val
	case *zygo.SexpBool:
		return v.Val
	case *zygo.SexpStr:
		return v.S
	case *sexpVec2:
		return v.vec
	case *sexpVec3:
		return v.vec
	case *sexpQuat:
		return v.q
	case *sexpMat4:
		return v.m
	case *sexpCircle:
		return v.c
	case *sexpSolid:
		min, max := v.s.Bounds()
		return SolidBounds{Min: min, Max: max}
	case *zygo.SexpPair:
		items, err := zygo.ListToArray(v)
		if err != nil {
			return v.SexpString(nil)
		}
		return toValues(items)
	case *zygo.SexpArray:
		return toValues(v.Val)
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil
		}
	}
	return s.SexpString(nil)
}

func toValues(items []zygo.Sexp) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = toValue(item)
	}
	return out
}
