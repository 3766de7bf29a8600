package models

import "github.com/taigrr/facet/pkg/math3d"

// DegenerateEpsilon is the raw cross-product length below which a triangle
// is treated as having no valid orientation.
const DegenerateEpsilon = 1e-12

// Triangle is three vertices in winding order plus the unit normal derived
// from them. The normal is (B-A)×(C-A) normalized, or the zero vector for
// degenerate triangles. Vertices only change through SetVertices, so the
// normal always matches them. The zero value is a degenerate triangle.
type Triangle struct {
	a, b, c math3d.Vec3
	normal  math3d.Vec3
}

// NewTriangle creates a triangle and derives its normal.
func NewTriangle(a, b, c math3d.Vec3) Triangle {
	t := Triangle{a: a, b: b, c: c}
	t.updateNormal()
	return t
}

// SetVertices replaces the vertices and recomputes the normal.
func (t *Triangle) SetVertices(a, b, c math3d.Vec3) {
	t.a, t.b, t.c = a, b, c
	t.updateNormal()
}

func (t *Triangle) updateNormal() {
	cross := t.b.Sub(t.a).Cross(t.c.Sub(t.a))
	if cross.Len() < DegenerateEpsilon {
		t.normal = math3d.Vec3{}
		return
	}
	t.normal = cross.Normalize()
}

// A returns the first vertex.
func (t Triangle) A() math3d.Vec3 { return t.a }

// B returns the second vertex.
func (t Triangle) B() math3d.Vec3 { return t.b }

// C returns the third vertex.
func (t Triangle) C() math3d.Vec3 { return t.c }

// Normal returns the unit normal, or the zero vector if the triangle is
// degenerate.
func (t Triangle) Normal() math3d.Vec3 {
	return t.normal
}

// HasNormal reports whether the triangle has a valid orientation.
func (t Triangle) HasNormal() bool {
	return t.normal != math3d.Vec3{}
}

// Centroid returns the average of the three vertices.
func (t Triangle) Centroid() math3d.Vec3 {
	return t.a.Add(t.b).Add(t.c).Scale(1.0 / 3.0)
}

// Area returns the surface area.
func (t Triangle) Area() float64 {
	return t.b.Sub(t.a).Cross(t.c.Sub(t.a)).Len() * 0.5
}

// translate moves every vertex by offset. The normal is unchanged by a pure
// translation, so it is not recomputed.
func (t *Triangle) translate(offset math3d.Vec3) {
	t.a = t.a.Add(offset)
	t.b = t.b.Add(offset)
	t.c = t.c.Add(offset)
}

func (t *Triangle) flipNormal() {
	t.normal = t.normal.Negate()
}
