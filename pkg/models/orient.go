package models

import (
	"math"

	"github.com/taigrr/facet/pkg/math3d"
)

// OrientationReport describes what EnsureNormalsFaceOutward did.
type OrientationReport struct {
	Center     math3d.Vec3 // Area-weighted mesh center used as the reference point
	Flipped    int         // Triangles whose normal was reversed
	Degenerate int         // Triangles with no valid orientation, left untouched
	Occluded   int         // Triangles whose centroid is hidden from Center by another triangle
	OnPlane    int         // Triangles whose plane passes through Center
	Confident  bool        // False when the center-visibility assumption was seen to fail
}

// ComputeCenter returns the area-weighted centroid of the mesh:
// Σ(area·centroid) / Σ(area). A mesh with zero total area returns the origin.
func ComputeCenter(m *Mesh) math3d.Vec3 {
	var weighted math3d.Vec3
	var total float64

	for _, t := range m.Triangles {
		area := t.Area()
		weighted = weighted.Add(t.Centroid().Scale(area))
		total += area
	}

	if total == 0 {
		return math3d.Zero3()
	}
	return weighted.Scale(1.0 / total)
}

// EnsureNormalsFaceOutward flips every normal that points toward the mesh
// center. This is only correct when the center is inside the solid and each
// triangle centroid can be seen from it along a straight line; the report's
// Confident flag is cleared when a check shows otherwise. The repair is
// applied either way and is idempotent.
//
// The visibility check is quadratic in the triangle count.
func EnsureNormalsFaceOutward(m *Mesh) OrientationReport {
	center := ComputeCenter(m)
	report := OrientationReport{Center: center}

	for i := range m.Triangles {
		t := &m.Triangles[i]
		if !t.HasNormal() {
			report.Degenerate++
			continue
		}

		toCentroid := t.Centroid().Sub(center)
		d := t.Normal().Dot(toCentroid)

		if math.Abs(d) <= planeTolerance(toCentroid) {
			report.OnPlane++
		} else if occluded(m, i, center) {
			report.Occluded++
		}

		if d < 0 {
			t.flipNormal()
			report.Flipped++
		}
	}

	report.Confident = report.Occluded == 0 && report.OnPlane == 0
	return report
}

func planeTolerance(v math3d.Vec3) float64 {
	return 1e-9 * math.Max(1, v.Len())
}

// occluded reports whether the segment from center to the centroid of
// triangle idx passes through any other non-degenerate triangle.
func occluded(m *Mesh, idx int, center math3d.Vec3) bool {
	target := m.Triangles[idx].Centroid()
	dir := target.Sub(center)

	for j, other := range m.Triangles {
		if j == idx || !other.HasNormal() {
			continue
		}
		if hit, s := segmentHit(center, dir, other); hit && s > 1e-9 && s < 1-1e-9 {
			return true
		}
	}
	return false
}

// segmentHit intersects the ray origin + s·dir with t using the
// Möller–Trumbore method and returns the ray parameter of the hit.
func segmentHit(origin, dir math3d.Vec3, t Triangle) (bool, float64) {
	const eps = 1e-12

	e1 := t.b.Sub(t.a)
	e2 := t.c.Sub(t.a)
	p := dir.Cross(e2)
	det := e1.Dot(p)
	if math.Abs(det) < eps {
		return false, 0
	}
	inv := 1 / det

	s := origin.Sub(t.a)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return false, 0
	}

	q := s.Cross(e1)
	v := dir.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return false, 0
	}

	return true, e2.Dot(q) * inv
}
