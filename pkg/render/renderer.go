package render

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/taigrr/facet/pkg/math3d"
	"github.com/taigrr/facet/pkg/models"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidFramebuffer is returned when the renderer has nowhere to draw.
var ErrInvalidFramebuffer = errors.New("invalid framebuffer")

// Stats describes one render pass.
type Stats struct {
	Meshes    int // Meshes in the pass
	Triangles int // Triangles considered
	Culled    int // Triangles dropped as back-facing or degenerate
	Drawn     int // Triangles handed to the rasterizer
	Pixels    int // Pixel writes made by the rasterizer
}

// Renderer runs the full pipeline into a framebuffer it owns for the
// duration of each pass.
type Renderer struct {
	fb         *Framebuffer
	projection ProjectionConfig
	visibility VisibilityConfig
	background Color
	wireframe  bool
	wireColor  Color
	workers    int
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithProjection sets the perspective parameters.
func WithProjection(cfg ProjectionConfig) Option {
	return func(r *Renderer) { r.projection = cfg }
}

// WithVisibility sets the culling parameters.
func WithVisibility(cfg VisibilityConfig) Option {
	return func(r *Renderer) { r.visibility = cfg }
}

// WithBackground sets the color every pass clears to.
func WithBackground(c Color) Option {
	return func(r *Renderer) { r.background = c }
}

// WithWireframe strokes the edges of every drawn triangle in c.
func WithWireframe(c Color) Option {
	return func(r *Renderer) {
		r.wireframe = true
		r.wireColor = c
	}
}

// WithWorkers runs cull and shade on up to n meshes at once.
func WithWorkers(n int) Option {
	return func(r *Renderer) { r.workers = n }
}

// NewRenderer creates a renderer drawing into fb. Configuration is checked
// here so Render only fails on per-call inputs.
func NewRenderer(fb *Framebuffer, opts ...Option) (*Renderer, error) {
	if fb == nil || fb.Width <= 0 || fb.Height <= 0 || len(fb.Pixels) != fb.Width*fb.Height {
		return nil, ErrInvalidFramebuffer
	}

	r := &Renderer{
		fb:         fb,
		projection: DefaultProjection(),
		visibility: DefaultVisibility(),
		background: ColorMagenta,
		wireColor:  ColorCyan,
		workers:    1,
	}
	for _, opt := range opts {
		opt(r)
	}

	if err := r.projection.Validate(); err != nil {
		return nil, err
	}
	if err := r.visibility.Validate(); err != nil {
		return nil, err
	}
	r.workers = max(r.workers, 1)

	return r, nil
}

// Framebuffer returns the target buffer.
func (r *Renderer) Framebuffer() *Framebuffer {
	return r.fb
}

// SetWireframe turns the edge overlay on or off.
func (r *Renderer) SetWireframe(on bool) {
	r.wireframe = on
}

// Wireframe reports whether the edge overlay is on.
func (r *Renderer) Wireframe() bool {
	return r.wireframe
}

// Render clears the framebuffer and draws meshes as seen by cam, lit by a
// directional light. Triangles from all meshes are sorted together and
// filled farthest first. Nil meshes are skipped.
func (r *Renderer) Render(ctx context.Context, meshes []*models.Mesh, cam Camera, light math3d.Vec3) (Stats, error) {
	stats := Stats{Meshes: len(meshes)}

	unit, err := NormalizeLight(light)
	if err != nil {
		return stats, err
	}
	proj, err := NewProjector(r.projection, cam, r.fb.Width, r.fb.Height)
	if err != nil {
		return stats, err
	}

	r.fb.Clear(r.background)

	visible, err := r.cullAndShade(ctx, meshes, cam.Position, unit)
	if err != nil {
		return stats, err
	}
	for _, m := range meshes {
		if m != nil {
			stats.Triangles += m.TriangleCount()
		}
	}
	stats.Culled = stats.Triangles - len(visible)

	if err := ctx.Err(); err != nil {
		return stats, err
	}
	DepthSort(visible)

	for _, v := range visible {
		tri := meshes[v.Mesh].Triangles[v.Index]
		p0 := proj.ProjectToScreen(tri.A())
		p1 := proj.ProjectToScreen(tri.B())
		p2 := proj.ProjectToScreen(tri.C())

		stats.Pixels += FillTriangle(r.fb, p0, p1, p2, v.Color)
		if r.wireframe {
			r.strokeTriangle(p0, p1, p2)
		}
	}
	stats.Drawn = len(visible)

	return stats, nil
}

func (r *Renderer) cullAndShade(ctx context.Context, meshes []*models.Mesh, eye, light math3d.Vec3) ([]Visible, error) {
	if r.workers == 1 || len(meshes) < 2 {
		var out []Visible
		for i, m := range meshes {
			out = append(out, CullAndShade(i, m, eye, light, r.visibility)...)
		}
		return out, nil
	}

	// One slot per mesh keeps the concatenated order identical to the
	// sequential path, so the stable sort gives the same image.
	parts := make([][]Visible, len(meshes))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i, m := range meshes {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			parts[i] = CullAndShade(i, m, eye, light, r.visibility)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("cull and shade: %w", err)
	}

	return slices.Concat(parts...), nil
}

func (r *Renderer) strokeTriangle(p0, p1, p2 math3d.Vec2) {
	x0, y0 := int(p0.X), int(p0.Y)
	x1, y1 := int(p1.X), int(p1.Y)
	x2, y2 := int(p2.X), int(p2.Y)

	r.fb.DrawLine(x0, y0, x1, y1, r.wireColor)
	r.fb.DrawLine(x1, y1, x2, y2, r.wireColor)
	r.fb.DrawLine(x2, y2, x0, y0, r.wireColor)
}
