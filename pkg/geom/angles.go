package geom

import "math"

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * (180 / math.Pi)
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * (math.Pi / 180)
}

// FindDegree returns the heading of the 2D point (x, y) in degrees, in
// [0, 360). The heading is measured from +Y towards +X.
func FindDegree(x, y float64) float64 {
	value := math.Atan2(x, y) / math.Pi * 180
	if value < 0 {
		value += 360
	}
	return value
}

// PreserveRatio returns the uniform scale factor that fits content inside
// container without distortion.
func PreserveRatio(container, content Vec2) float64 {
	contentRatio := content.X / content.Y
	containerRatio := container.X / container.Y
	if containerRatio > contentRatio {
		return container.Y / content.Y
	}
	return container.X / content.X
}

// NrmRemap maps val from [min, max] onto [0, 1]. Values at or below min map
// to 0; values above max are not clamped.
func NrmRemap(val, min, max float64) float64 {
	diff := val - min
	if diff <= 0 {
		return 0
	}
	return diff / (max - min)
}

// Normal returns the unit normal of the triangle a, b, c, computed as
// (b-a) × (a-c). Degenerate triangles yield the zero vector.
func Normal(a, b, c Vec3) Vec3 {
	return b.Sub(a).Cross(a.Sub(c)).Normalize()
}

// Perp returns the normal of the vertical plane through a and b.
func Perp(a, b Vec3) Vec3 {
	return Normal(a, b, b.Add(Up))
}

// NormalDir returns the normal of the plane through a and b that also
// contains the direction dir taken at b.
func NormalDir(a, b, dir Vec3) Vec3 {
	return Normal(a, b, b.Add(dir))
}
