package render

import (
	"math"

	"github.com/taigrr/facet/pkg/math3d"
)

// minArea is the smallest |signed area| (in pixels²) a projected triangle
// needs before it is filled.
const minArea = 1e-12

// farCoord is the vertex magnitude past which edge-function products could
// overflow.
const farCoord = 1e100

// edgeCoeffs returns A, B, C for the edge function of (x0,y0)→(x1,y1):
// edge(x,y) = A*x + B*y + C, the signed area spanned by the edge and (x,y).
func edgeCoeffs(x0, y0, x1, y1 float64) (A, B, C float64) {
	A = y0 - y1 // dy
	B = x1 - x0 // -dx
	C = x0*y1 - x1*y0
	return
}

// edgeFunc evaluates edge function at point (x, y)
func edgeFunc(A, B, C, x, y float64) float64 {
	return A*x + B*y + C
}

// FillTriangle writes c to every pixel whose integer coordinates fall inside
// or on the edge of the screen-space triangle, and returns how many pixels
// were written. Either winding is accepted. Degenerate triangles write
// nothing.
func FillTriangle(fb *Framebuffer, p0, p1, p2 math3d.Vec2, c Color) int {
	// Clamp before truncating so far off-screen vertices cannot overflow int.
	hiX, hiY := float64(fb.Width-1), float64(fb.Height-1)
	minX := int(math3d.Clamp(min(p0.X, p1.X, p2.X), 0, hiX))
	maxX := int(math3d.Clamp(max(p0.X, p1.X, p2.X), 0, hiX))
	minY := int(math3d.Clamp(min(p0.Y, p1.Y, p2.Y), 0, hiY))
	maxY := int(math3d.Clamp(max(p0.Y, p1.Y, p2.Y), 0, hiY))

	// Weights are invariant under uniform scaling, so far vertices are
	// brought into range by an exact power of two before the edge products.
	scale := 1.0
	if m := max(math.Abs(p0.X), math.Abs(p0.Y), math.Abs(p1.X), math.Abs(p1.Y),
		math.Abs(p2.X), math.Abs(p2.Y)); m > farCoord && !math.IsInf(m, 0) {
		_, exp := math.Frexp(m)
		scale = math.Ldexp(1, -exp)
		p0, p1, p2 = p0.Scale(scale), p1.Scale(scale), p2.Scale(scale)
	}

	area := math3d.Mat2FromCols(p1.Sub(p0), p2.Sub(p0)).Det()
	if !(math.Abs(area) >= minArea*scale*scale) || area == 0 || math.IsInf(area, 0) {
		return 0
	}

	// Weight of each vertex is the edge opposite it over the full area.
	a0, b0, c0 := edgeCoeffs(p1.X, p1.Y, p2.X, p2.Y)
	a1, b1, c1 := edgeCoeffs(p2.X, p2.Y, p0.X, p0.Y)
	a2, b2, c2 := edgeCoeffs(p0.X, p0.Y, p1.X, p1.Y)
	inv := 1 / area

	written := 0
	for y := minY; y <= maxY; y++ {
		py := float64(y) * scale
		for x := minX; x <= maxX; x++ {
			px := float64(x) * scale

			w0 := edgeFunc(a0, b0, c0, px, py) * inv
			w1 := edgeFunc(a1, b1, c1, px, py) * inv
			w2 := edgeFunc(a2, b2, c2, px, py) * inv

			if w0 >= 0 && w1 >= 0 && w2 >= 0 {
				fb.Pixels[y*fb.Width+x] = c
				written++
			}
		}
	}
	return written
}
