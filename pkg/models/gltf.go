package models

import (
	"fmt"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/taigrr/facet/pkg/math3d"
)

// LoadGLTF loads a GLTF or GLB file into a single triangle mesh. Every
// triangle primitive of every mesh in the document is de-indexed into
// Triangles, keeping glTF's counter-clockwise winding so normals face out.
func LoadGLTF(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	var tris []Triangle
	for _, m := range doc.Meshes {
		tris, err = appendPrimitives(doc, m, tris)
		if err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}

	return NewMesh(filepath.Base(path), tris), nil
}

func appendPrimitives(doc *gltf.Document, m *gltf.Mesh, tris []Triangle) ([]Triangle, error) {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			// Skip non-triangle primitives (lines, points, etc)
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}

		raw, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
		if err != nil {
			return nil, fmt.Errorf("read positions: %w", err)
		}
		positions := make([]math3d.Vec3, len(raw))
		for i, p := range raw {
			positions[i] = math3d.V3(float64(p[0]), float64(p[1]), float64(p[2]))
		}

		indices, err := primitiveIndices(doc, prim, len(positions))
		if err != nil {
			return nil, err
		}

		for i := 0; i+2 < len(indices); i += 3 {
			a, b, c := indices[i], indices[i+1], indices[i+2]
			if int(max(a, b, c)) >= len(positions) {
				return nil, fmt.Errorf("index out of range: %d >= %d", max(a, b, c), len(positions))
			}
			tris = append(tris, NewTriangle(positions[a], positions[b], positions[c]))
		}
	}

	return tris, nil
}

// primitiveIndices returns the primitive's index list, or the sequential
// list 0..count-1 for non-indexed geometry.
func primitiveIndices(doc *gltf.Document, prim *gltf.Primitive, count int) ([]uint32, error) {
	if prim.Indices == nil {
		seq := make([]uint32, count)
		for i := range seq {
			seq[i] = uint32(i)
		}
		return seq, nil
	}

	indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
	if err != nil {
		return nil, fmt.Errorf("read indices: %w", err)
	}
	return indices, nil
}
