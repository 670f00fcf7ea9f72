package xform

import (
	"github.com/chazu/plumb/pkg/geom"
	"github.com/go-gl/mathgl/mgl64"
)

func toMgl(v geom.Vec3) mgl64.Vec3 { return mgl64.Vec3{v.X, v.Y, v.Z} }

func fromMgl(v mgl64.Vec3) geom.Vec3 { return geom.Vec3{X: v[0], Y: v[1], Z: v[2]} }

// LookRotation returns the rotation that maps +Z onto forward and +Y as
// close to up as the forward direction allows.
//
// A zero forward gives the identity. When up is parallel to forward the
// basis is undefined and the shortest-arc rotation from +Z to forward is
// returned instead.
func LookRotation(forward, up geom.Vec3) Quat {
	f := forward.Normalize()
	if f == (geom.Vec3{}) {
		return mgl64.QuatIdent()
	}
	right := up.Cross(f).Normalize()
	if right == (geom.Vec3{}) {
		return mgl64.QuatBetweenVectors(toMgl(geom.Forward), toMgl(f))
	}
	u := f.Cross(right)
	basis := mgl64.Mat3FromCols(toMgl(right), toMgl(u), toMgl(f))
	return mgl64.Mat4ToQuat(basis.Mat4()).Normalize()
}

// AngleAxis returns a rotation of rad radians about axis. The axis need not
// be normalized; a zero axis gives the identity.
func AngleAxis(rad float64, axis geom.Vec3) Quat {
	a := axis.Normalize()
	if a == (geom.Vec3{}) {
		return mgl64.QuatIdent()
	}
	return mgl64.QuatRotate(rad, toMgl(a))
}

// Euler builds a rotation from per-axis angles in degrees. Z is applied
// first, then X, then Y.
func Euler(anglesDeg geom.Vec3) Quat {
	qx := mgl64.QuatRotate(geom.Radians(anglesDeg.X), mgl64.Vec3{1, 0, 0})
	qy := mgl64.QuatRotate(geom.Radians(anglesDeg.Y), mgl64.Vec3{0, 1, 0})
	qz := mgl64.QuatRotate(geom.Radians(anglesDeg.Z), mgl64.Vec3{0, 0, 1})
	return qy.Mul(qx).Mul(qz)
}

// Rotate applies q to v.
func Rotate(q Quat, v geom.Vec3) geom.Vec3 {
	return fromMgl(q.Rotate(toMgl(v)))
}

// RotateAroundPivot rotates point by q about pivot.
func RotateAroundPivot(point, pivot geom.Vec3, q Quat) geom.Vec3 {
	return Rotate(q, point.Sub(pivot)).Add(pivot)
}

// RotateAroundPivotEuler rotates point about pivot by per-axis angles in
// degrees, in the order used by Euler.
func RotateAroundPivotEuler(point, pivot, anglesDeg geom.Vec3) geom.Vec3 {
	return RotateAroundPivot(point, pivot, Euler(anglesDeg))
}

// RotatePointAroundAxisDir returns the point at distance radius from origin
// along the normal of the plane spanned by axis and dir, after that normal
// has been turned radAngle radians about axis.
func RotatePointAroundAxisDir(origin, axis, dir geom.Vec3, radius, radAngle float64) geom.Vec3 {
	n := axis.Cross(dir).Normalize()
	n = Rotate(AngleAxis(radAngle, axis), n)
	return origin.Add(n.Scale(radius))
}
