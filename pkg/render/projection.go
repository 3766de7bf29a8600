package render

import (
	"errors"
	"fmt"
	"math"

	"github.com/taigrr/facet/pkg/math3d"
)

// ErrInvalidProjection is returned for unusable projection parameters.
var ErrInvalidProjection = errors.New("invalid projection")

// Floors applied to |W| before the perspective divide.
const (
	wFloor     = 1e-4
	wFloorFine = 1e-6
)

// ProjectionConfig holds the perspective parameters.
type ProjectionConfig struct {
	FOV  float64 // Vertical field of view in radians
	Near float64 // Near clipping plane
	Far  float64 // Far clipping plane
}

// DefaultProjection returns a 45° field of view with near 0.001 and far 1000.
func DefaultProjection() ProjectionConfig {
	return ProjectionConfig{
		FOV:  math.Pi / 4,
		Near: 0.001,
		Far:  1000,
	}
}

// Validate checks 0 < FOV < π and 0 < Near < Far.
func (c ProjectionConfig) Validate() error {
	switch {
	case !finite(c.FOV) || !finite(c.Near) || !finite(c.Far):
		return fmt.Errorf("%w: non-finite parameter in %+v", ErrInvalidProjection, c)
	case c.FOV <= 0 || c.FOV >= math.Pi:
		return fmt.Errorf("%w: fov %g outside (0, π)", ErrInvalidProjection, c.FOV)
	case c.Near <= 0:
		return fmt.Errorf("%w: near plane %g must be positive", ErrInvalidProjection, c.Near)
	case c.Far <= c.Near:
		return fmt.Errorf("%w: far plane %g must be beyond near plane %g", ErrInvalidProjection, c.Far, c.Near)
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// BuildProjectionMatrix returns the right-handed perspective matrix that maps
// view-space depth near→-1 and far→+1, with W carrying the divide.
func BuildProjectionMatrix(fov, aspect, near, far float64) (math3d.Mat4, error) {
	if err := (ProjectionConfig{FOV: fov, Near: near, Far: far}).Validate(); err != nil {
		return math3d.Mat4{}, err
	}
	if !finite(aspect) || aspect <= 0 {
		return math3d.Mat4{}, fmt.Errorf("%w: aspect ratio %g", ErrInvalidProjection, aspect)
	}
	return math3d.Perspective(fov, aspect, near, far), nil
}

// Projector maps world points to pixel coordinates for one camera and one
// image size. Build a new one whenever either changes.
type Projector struct {
	proj   math3d.Mat4
	view   math3d.Mat3 // Y flip applied after the camera rotation
	origin math3d.Vec3
	width  float64
	height float64
}

// NewProjector validates cfg and precomputes the matrices for cam.
func NewProjector(cfg ProjectionConfig, cam Camera, width, height int) (*Projector, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: image size %dx%d", ErrInvalidProjection, width, height)
	}

	proj, err := BuildProjectionMatrix(cfg.FOV, float64(width)/float64(height), cfg.Near, cfg.Far)
	if err != nil {
		return nil, err
	}

	return &Projector{
		proj:   proj,
		view:   math3d.FlipY3().Mul(cam.Rotation()),
		origin: cam.Position,
		width:  float64(width),
		height: float64(height),
	}, nil
}

// ProjectToScreen returns the pixel position of a world point. The result
// always lies in [0, width-1] × [0, height-1]; points behind or on the
// camera plane are not rejected, only kept from blowing up.
func (p *Projector) ProjectToScreen(world math3d.Vec3) math3d.Vec2 {
	v := p.view.MulVec3(world.Sub(p.origin))
	clip := p.proj.MulVec4(math3d.V4FromV3(v, 1))

	w := floorW(floorW(clip.W, wFloor), wFloorFine)
	ndcX := clip.X / w
	ndcY := clip.Y / w

	x := (ndcX + 1) * 0.5 * p.width
	y := (1 - ndcY) * 0.5 * p.height

	return math3d.V2(clampAxis(x, p.width-1), clampAxis(y, p.height-1))
}

func floorW(w, eps float64) float64 {
	if math.Abs(w) < eps {
		return eps
	}
	return w
}

func clampAxis(v, high float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math3d.Clamp(v, 0, high)
}
