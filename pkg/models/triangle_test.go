package models

import (
	"math"
	"testing"

	"github.com/taigrr/facet/pkg/math3d"
)

func TestNewTriangleNormal(t *testing.T) {
	tests := []struct {
		name     string
		a, b, c  math3d.Vec3
		expected math3d.Vec3
	}{
		{"ccw in xy plane", math3d.V3(0, 0, 0), math3d.V3(1, 0, 0), math3d.V3(0, 1, 0), math3d.V3(0, 0, 1)},
		{"cw in xy plane", math3d.V3(0, 0, 0), math3d.V3(0, 1, 0), math3d.V3(1, 0, 0), math3d.V3(0, 0, -1)},
		{"scaled", math3d.V3(0, 0, 0), math3d.V3(0, 0, 10), math3d.V3(10, 0, 0), math3d.V3(0, 1, 0)},
		{"colinear", math3d.V3(0, 0, 0), math3d.V3(1, 1, 1), math3d.V3(2, 2, 2), math3d.V3(0, 0, 0)},
		{"coincident", math3d.V3(3, 3, 3), math3d.V3(3, 3, 3), math3d.V3(3, 3, 3), math3d.V3(0, 0, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tri := NewTriangle(tc.a, tc.b, tc.c)
			if !tri.Normal().Equal(tc.expected) {
				t.Errorf("normal = %v, want %v", tri.Normal(), tc.expected)
			}
			if tri.HasNormal() != (tc.expected != math3d.Vec3{}) {
				t.Errorf("HasNormal = %v", tri.HasNormal())
			}
		})
	}
}

func TestTriangleSetVerticesRecomputesNormal(t *testing.T) {
	tri := NewTriangle(math3d.V3(0, 0, 0), math3d.V3(1, 0, 0), math3d.V3(0, 1, 0))
	tri.SetVertices(math3d.V3(0, 0, 0), math3d.V3(0, 1, 0), math3d.V3(1, 0, 0))

	if !tri.Normal().Equal(math3d.V3(0, 0, -1)) {
		t.Errorf("normal after SetVertices = %v, want (0, 0, -1)", tri.Normal())
	}
}

func TestTriangleSwapVerticesFlipsNormal(t *testing.T) {
	tri := NewTriangle(math3d.V3(0, 0, 5), math3d.V3(0, 1, 5), math3d.V3(1, 0, 5))
	before := tri.Normal()

	tri.SetVertices(tri.A(), tri.C(), tri.B())

	if !tri.Normal().Equal(before.Negate()) {
		t.Errorf("normal after swapping B and C = %v, want %v", tri.Normal(), before.Negate())
	}
	if tri.B() != math3d.V3(1, 0, 5) || tri.C() != math3d.V3(0, 1, 5) {
		t.Errorf("vertices = %v %v %v", tri.A(), tri.B(), tri.C())
	}
}

func TestTriangleZeroValueIsDegenerate(t *testing.T) {
	var tri Triangle
	if tri.HasNormal() {
		t.Errorf("zero triangle has normal %v", tri.Normal())
	}
	if tri.Area() != 0 {
		t.Errorf("zero triangle area = %v", tri.Area())
	}
}

func TestTriangleCentroidAndArea(t *testing.T) {
	tri := NewTriangle(math3d.V3(0, 0, 0), math3d.V3(3, 0, 0), math3d.V3(0, 3, 0))

	if c := tri.Centroid(); !c.Equal(math3d.V3(1, 1, 0)) {
		t.Errorf("centroid = %v, want (1, 1, 0)", c)
	}
	if a := tri.Area(); math.Abs(a-4.5) > 1e-12 {
		t.Errorf("area = %v, want 4.5", a)
	}
}
