// Package models provides the triangle mesh model and mesh loading for facet.
package models

import (
	"github.com/google/uuid"
	"github.com/taigrr/facet/pkg/math3d"
)

// Mesh is an ordered collection of triangles. The order is the input order
// handed to the renderer and carries no other meaning.
type Mesh struct {
	ID        uuid.UUID
	Name      string
	Triangles []Triangle
}

// NewMesh creates a mesh with a fresh identity.
func NewMesh(name string, tris []Triangle) *Mesh {
	return &Mesh{
		ID:        uuid.New(),
		Name:      name,
		Triangles: tris,
	}
}

// Translate moves every vertex of every triangle by offset.
func (m *Mesh) Translate(offset math3d.Vec3) {
	for i := range m.Triangles {
		m.Triangles[i].translate(offset)
	}
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles)
}

// Bounds returns the axis-aligned bounding box of all vertices.
// An empty mesh reports a zero box.
func (m *Mesh) Bounds() (min, max math3d.Vec3) {
	if len(m.Triangles) == 0 {
		return math3d.Zero3(), math3d.Zero3()
	}

	min, max = m.Triangles[0].a, m.Triangles[0].a
	for _, t := range m.Triangles {
		for _, v := range [3]math3d.Vec3{t.a, t.b, t.c} {
			min = min.Min(v)
			max = max.Max(v)
		}
	}
	return min, max
}
