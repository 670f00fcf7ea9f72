// Package xform decomposes homogeneous 4×4 transforms into translation,
// rotation and scale, and builds the matrices and quaternions the rest of
// plumb works with.
//
// Matrices are mgl64.Mat4 values (column-major). Every function assumes the
// matrix is an affine translation·rotation·scale composition with no shear
// or projective part; that precondition is not checked, and other matrices
// produce unspecified results.
package xform

import (
	"github.com/chazu/plumb/pkg/geom"
	"github.com/go-gl/mathgl/mgl64"
)

// Mat4 is a column-major homogeneous transform.
type Mat4 = mgl64.Mat4

// Quat is a rotation quaternion (W, V).
type Quat = mgl64.Quat

// Identity returns the 4×4 identity matrix.
func Identity() Mat4 {
	return mgl64.Ident4()
}

// TranslationMatrix returns the identity matrix with its translation column
// set to offset.
func TranslationMatrix(offset geom.Vec3) Mat4 {
	m := mgl64.Ident4()
	m.Set(0, 3, offset.X)
	m.Set(1, 3, offset.Y)
	m.Set(2, 3, offset.Z)
	return m
}

// ExtractTranslation returns rows 0-2 of the translation column.
func ExtractTranslation(m Mat4) geom.Vec3 {
	return geom.Vec3{X: m.At(0, 3), Y: m.At(1, 3), Z: m.At(2, 3)}
}

// ExtractRotation returns the rotation encoded by the forward (column 2) and
// up (column 1) basis vectors. Scale in those columns is normalized away by
// LookRotation.
func ExtractRotation(m Mat4) Quat {
	forward := geom.Vec3{X: m.At(0, 2), Y: m.At(1, 2), Z: m.At(2, 2)}
	up := geom.Vec3{X: m.At(0, 1), Y: m.At(1, 1), Z: m.At(2, 1)}
	return LookRotation(forward, up)
}

// ExtractScale returns the length of each of the three basis columns,
// including their homogeneous row. A mirrored (negative) scale cannot be
// recovered this way and comes back positive.
func ExtractScale(m Mat4) geom.Vec3 {
	return geom.Vec3{
		X: m.Col(0).Len(),
		Y: m.Col(1).Len(),
		Z: m.Col(2).Len(),
	}
}

// Decompose splits m into translation, rotation and scale. The three parts
// are extracted independently.
func Decompose(m Mat4) (translation geom.Vec3, rotation Quat, scale geom.Vec3) {
	return ExtractTranslation(m), ExtractRotation(m), ExtractScale(m)
}

// TRS composes translation · rotation · scale into one matrix. For positive
// scale it is the inverse of Decompose.
func TRS(translation geom.Vec3, rotation Quat, scale geom.Vec3) Mat4 {
	t := TranslationMatrix(translation)
	r := rotation.Normalize().Mat4()
	s := mgl64.Scale3D(scale.X, scale.Y, scale.Z)
	return t.Mul4(r).Mul4(s)
}

// TransformPoint applies m to p with w = 1.
func TransformPoint(m Mat4, p geom.Vec3) geom.Vec3 {
	v := m.Mul4x1(mgl64.Vec4{p.X, p.Y, p.Z, 1})
	return geom.Vec3{X: v[0], Y: v[1], Z: v[2]}
}
