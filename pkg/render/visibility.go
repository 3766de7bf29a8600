package render

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/taigrr/facet/pkg/math3d"
	"github.com/taigrr/facet/pkg/models"
)

var (
	// ErrInvalidLightDirection is returned for a zero or non-finite light vector.
	ErrInvalidLightDirection = errors.New("invalid light direction")
	// ErrInvalidVisibility is returned for an unusable cull epsilon.
	ErrInvalidVisibility = errors.New("invalid visibility config")
)

// VisibilityConfig controls backface culling.
type VisibilityConfig struct {
	// CullEpsilon is the tolerance below zero that n·view must reach for a
	// triangle to count as front-facing.
	CullEpsilon float64
}

// DefaultVisibility returns a cull epsilon of 1e-4.
func DefaultVisibility() VisibilityConfig {
	return VisibilityConfig{CullEpsilon: 1e-4}
}

// Validate checks that the epsilon is finite and non-negative.
func (c VisibilityConfig) Validate() error {
	if !finite(c.CullEpsilon) || c.CullEpsilon < 0 {
		return fmt.Errorf("%w: cull epsilon %g", ErrInvalidVisibility, c.CullEpsilon)
	}
	return nil
}

// NormalizeLight returns the unit light direction.
func NormalizeLight(dir math3d.Vec3) (math3d.Vec3, error) {
	if !dir.IsFinite() || dir.LenSq() == 0 {
		return math3d.Vec3{}, fmt.Errorf("%w: %v", ErrInvalidLightDirection, dir)
	}
	return dir.Normalize(), nil
}

// Visible is a triangle that survived culling, with its per-frame shade
// and its distance from the camera.
type Visible struct {
	Mesh  int // Index into the mesh list passed to the renderer
	Index int // Triangle index within that mesh
	Color Color
	Depth float64 // Camera-to-centroid distance
}

// IsBackFacing reports whether tri faces away from a camera at eye, or is
// edge-on within eps. Degenerate triangles always count as back-facing.
func IsBackFacing(tri models.Triangle, eye math3d.Vec3, eps float64) bool {
	if !tri.HasNormal() {
		return true
	}
	view := tri.Centroid().Sub(eye)
	return tri.Normal().Dot(view) > -eps
}

// ShadeIntensity returns round(max(0, n·light)·255). Both vectors are
// expected to be unit length.
func ShadeIntensity(normal, light math3d.Vec3) uint8 {
	f := math.Max(0, normal.Dot(light))
	return uint8(math3d.Clamp(math.Round(f*255), 0, 255))
}

// CullAndShade returns the front-facing triangles of mesh with their flat
// gray shade, in mesh order. light must already be normalized.
func CullAndShade(meshIdx int, mesh *models.Mesh, eye, light math3d.Vec3, cfg VisibilityConfig) []Visible {
	if mesh == nil {
		return nil
	}

	var out []Visible
	for i, tri := range mesh.Triangles {
		if IsBackFacing(tri, eye, cfg.CullEpsilon) {
			continue
		}
		out = append(out, Visible{
			Mesh:  meshIdx,
			Index: i,
			Color: Gray(ShadeIntensity(tri.Normal(), light)),
			Depth: tri.Centroid().Distance(eye),
		})
	}
	return out
}

// DepthSort orders triangles farthest first. The sort is stable, so equal
// depths keep their input order.
func DepthSort(v []Visible) {
	slices.SortStableFunc(v, func(a, b Visible) int {
		return cmp.Compare(b.Depth, a.Depth)
	})
}
