package models

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/taigrr/facet/pkg/math3d"
)

// ErrUnsupportedFormat is returned by Load for unknown file extensions.
var ErrUnsupportedFormat = errors.New("unsupported mesh format")

// LoadOptions controls the one-time fixups applied after a mesh is read.
type LoadOptions struct {
	// RepairOrientation forces EnsureNormalsFaceOutward even when the file
	// does not request it.
	RepairOrientation bool
	// Translate is applied to every vertex once, after any repair.
	Translate math3d.Vec3
	Logger    *log.Logger
}

// Load reads a mesh from a .txt, .gltf or .glb file. The orientation report
// is nil when no repair was performed.
func Load(path string, opts LoadOptions) (*Mesh, *OrientationReport, error) {
	logger := loggerOrDiscard(opts.Logger)

	var (
		mesh   *Mesh
		repair = opts.RepairOrientation
		err    error
	)

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".txt":
		var dir TextDirectives
		mesh, dir, err = LoadText(path, logger)
		if err != nil {
			return nil, nil, err
		}
		if dir.Skipped > 0 {
			logger.Warn("skipped malformed lines", "mesh", mesh.Name, "count", dir.Skipped)
		}
		repair = repair || dir.RepairOrientation
	case ".glb", ".gltf":
		mesh, err = LoadGLTF(path)
		if err != nil {
			return nil, nil, err
		}
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	var report *OrientationReport
	if repair {
		r := EnsureNormalsFaceOutward(mesh)
		report = &r
		logger.Debug("repaired orientation", "mesh", mesh.Name, "flipped", r.Flipped, "degenerate", r.Degenerate)
		if !r.Confident {
			logger.Warn("orientation repair may be wrong for this mesh",
				"mesh", mesh.Name, "occluded", r.Occluded, "on_plane", r.OnPlane)
		}
	}

	if opts.Translate != (math3d.Vec3{}) {
		mesh.Translate(opts.Translate)
	}

	lo, hi := mesh.Bounds()
	logger.Info("loaded mesh", "mesh", mesh.Name, "id", mesh.ID, "triangles", mesh.TriangleCount(),
		"min", lo, "max", hi)
	return mesh, report, nil
}
