package solid

import (
	"math"
	"testing"

	"github.com/chazu/plumb/pkg/geom"
	"github.com/chazu/plumb/pkg/xform"
)

const tol = 1e-9

func near(a, b geom.Vec3, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps && math.Abs(a.Z-b.Z) <= eps
}

func TestBoxBounds(t *testing.T) {
	box, err := Box(geom.Vec3{X: 100, Y: 50, Z: 25})
	if err != nil {
		t.Fatalf("Box failed: %v", err)
	}
	min, max := box.Bounds()
	if !near(min, geom.Vec3{}, tol) {
		t.Errorf("min = %v, want origin", min)
	}
	if !near(max, geom.Vec3{X: 100, Y: 50, Z: 25}, tol) {
		t.Errorf("max = %v, want (100, 50, 25)", max)
	}
}

func TestPlaceTranslatesBounds(t *testing.T) {
	box, err := Box(geom.Vec3{X: 2, Y: 4, Z: 6})
	if err != nil {
		t.Fatalf("Box failed: %v", err)
	}
	offset := geom.Vec3{X: 10, Y: -5, Z: 3}
	placed := Place(box, xform.TranslationMatrix(offset))

	min, max := placed.Bounds()
	if !near(min, offset, tol) {
		t.Errorf("min = %v, want %v", min, offset)
	}
	if want := offset.Add(geom.Vec3{X: 2, Y: 4, Z: 6}); !near(max, want, tol) {
		t.Errorf("max = %v, want %v", max, want)
	}
}

func TestM44MatchesKernelTransform(t *testing.T) {
	tests := []struct {
		name string
		m    xform.Mat4
	}{
		{"identity", xform.Identity()},
		{"translation", xform.TranslationMatrix(geom.Vec3{X: 1, Y: 2, Z: 3})},
		{"rotation", xform.TRS(geom.Vec3{}, xform.Euler(geom.Vec3{X: 10, Y: 70, Z: -30}), geom.Vec3{X: 1, Y: 1, Z: 1})},
		{"half turn", xform.TRS(geom.Vec3{}, xform.AngleAxis(math.Pi, geom.Up), geom.Vec3{X: 1, Y: 1, Z: 1})},
		{"trs", xform.TRS(geom.Vec3{X: -4, Y: 0, Z: 8}, xform.Euler(geom.Vec3{X: 45, Y: 45, Z: 45}), geom.Vec3{X: 2, Y: 0.5, Z: 3})},
	}
	points := []geom.Vec3{{}, {X: 1}, {Y: 1}, {Z: 1}, {X: 3, Y: -2, Z: 5}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m44 := M44(tt.m)
			for _, p := range points {
				got := FromV3(m44.MulPosition(V3(p)))
				want := xform.TransformPoint(tt.m, p)
				if !near(got, want, 1e-9) {
					t.Errorf("point %v: sdfx = %v, kernel = %v", p, got, want)
				}
			}
		})
	}
}

func TestDiscZeroAtIntersections(t *testing.T) {
	a := geom.Circle{Center: geom.Vec2{X: 0, Y: 0}, Radius: 2}
	b := geom.Circle{Center: geom.Vec2{X: 3, Y: 0}, Radius: 2}
	p1, p2, ok := geom.CircleIntersection(a, b)
	if !ok {
		t.Fatal("expected intersection")
	}

	da, err := Disc(a)
	if err != nil {
		t.Fatalf("Disc(a) failed: %v", err)
	}
	db, err := Disc(b)
	if err != nil {
		t.Fatalf("Disc(b) failed: %v", err)
	}
	for _, p := range []geom.Vec2{p1, p2} {
		if d := da.Evaluate(V2(p)); math.Abs(d) > 1e-4 {
			t.Errorf("disc a at %v = %v, want 0", p, d)
		}
		if d := db.Evaluate(V2(p)); math.Abs(d) > 1e-4 {
			t.Errorf("disc b at %v = %v, want 0", p, d)
		}
	}
}

func TestBooleans(t *testing.T) {
	a, _ := Box(geom.Vec3{X: 2, Y: 2, Z: 2})
	b := Translate(a, geom.Vec3{X: 1, Y: 1, Z: 1})

	inBoth := geom.Vec3{X: 1.5, Y: 1.5, Z: 1.5}
	onlyA := geom.Vec3{X: 0.5, Y: 0.5, Z: 0.5}

	if d := Union(a, b).Distance(onlyA); d >= 0 {
		t.Errorf("union should contain %v, distance %v", onlyA, d)
	}
	if d := Intersection(a, b).Distance(onlyA); d <= 0 {
		t.Errorf("intersection should not contain %v, distance %v", onlyA, d)
	}
	if d := Intersection(a, b).Distance(inBoth); d >= 0 {
		t.Errorf("intersection should contain %v, distance %v", inBoth, d)
	}
	if d := Difference(a, b).Distance(inBoth); d <= 0 {
		t.Errorf("difference should not contain %v, distance %v", inBoth, d)
	}
}

func TestSphereDistance(t *testing.T) {
	s, err := Sphere(5)
	if err != nil {
		t.Fatalf("Sphere failed: %v", err)
	}
	if d := s.Distance(geom.Vec3{X: 8}); math.Abs(d-3) > tol {
		t.Errorf("distance = %v, want 3", d)
	}
}
