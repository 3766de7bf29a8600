package render

import (
	"testing"

	"github.com/taigrr/facet/pkg/math3d"
)

func TestFillTriangleRightTriangle(t *testing.T) {
	tests := []struct {
		name       string
		p0, p1, p2 math3d.Vec2
	}{
		{"counter-clockwise", math3d.V2(0, 0), math3d.V2(10, 0), math3d.V2(0, 10)},
		{"clockwise", math3d.V2(0, 0), math3d.V2(0, 10), math3d.V2(10, 0)},
		{"rotated order", math3d.V2(10, 0), math3d.V2(0, 10), math3d.V2(0, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fb := NewFramebuffer(20, 20)
			fb.Clear(ColorBlack)

			// Pixels with x+y <= 10, edges included.
			n := FillTriangle(fb, tc.p0, tc.p1, tc.p2, ColorRed)
			if n != 66 {
				t.Errorf("written = %d, want 66", n)
			}
			if got := fb.Count(ColorRed); got != 66 {
				t.Errorf("red pixels = %d, want 66", got)
			}
			if fb.GetPixel(5, 5) != ColorRed || fb.GetPixel(6, 5) != ColorBlack {
				t.Error("hypotenuse boundary is wrong")
			}
		})
	}
}

func TestFillTriangleDegenerate(t *testing.T) {
	tests := []struct {
		name       string
		p0, p1, p2 math3d.Vec2
	}{
		{"colinear", math3d.V2(1, 1), math3d.V2(5, 5), math3d.V2(9, 9)},
		{"point", math3d.V2(3, 3), math3d.V2(3, 3), math3d.V2(3, 3)},
		{"horizontal", math3d.V2(0, 4), math3d.V2(8, 4), math3d.V2(15, 4)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fb := NewFramebuffer(16, 16)
			fb.Clear(ColorBlack)

			if n := FillTriangle(fb, tc.p0, tc.p1, tc.p2, ColorRed); n != 0 {
				t.Errorf("written = %d, want 0", n)
			}
			if fb.Count(ColorBlack) != 16*16 {
				t.Error("degenerate triangle modified the buffer")
			}
		})
	}
}

func TestFillTriangleClipsToBuffer(t *testing.T) {
	fb := NewFramebuffer(10, 10)

	n := FillTriangle(fb, math3d.V2(-5, -5), math3d.V2(30, -5), math3d.V2(-5, 30), ColorGreen)
	if n != 100 {
		t.Errorf("written = %d, want 100", n)
	}
}

func TestFillTriangleFarVertices(t *testing.T) {
	tests := []struct {
		name       string
		p0, p1, p2 math3d.Vec2
	}{
		{"beyond int range", math3d.V2(-1e19, -1e19), math3d.V2(3e19, -1e19), math3d.V2(-1e19, 3e19)},
		{"beyond int range reversed", math3d.V2(-1e19, -1e19), math3d.V2(-1e19, 3e19), math3d.V2(3e19, -1e19)},
		{"edge products overflow", math3d.V2(-1e300, -1e300), math3d.V2(3e300, -1e300), math3d.V2(-1e300, 3e300)},
		{"edge products overflow reversed", math3d.V2(-1e300, -1e300), math3d.V2(-1e300, 3e300), math3d.V2(3e300, -1e300)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fb := NewFramebuffer(10, 10)
			fb.Clear(ColorBlack)

			if n := FillTriangle(fb, tc.p0, tc.p1, tc.p2, ColorGreen); n != 100 {
				t.Errorf("written = %d, want 100", n)
			}
			if got := fb.Count(ColorGreen); got != 100 {
				t.Errorf("green pixels = %d, want 100", got)
			}
		})
	}
}

func TestFillTriangleSharedEdge(t *testing.T) {
	fb := NewFramebuffer(12, 12)
	fb.Clear(ColorBlack)

	a := FillTriangle(fb, math3d.V2(0, 0), math3d.V2(10, 0), math3d.V2(0, 10), ColorWhite)
	b := FillTriangle(fb, math3d.V2(10, 0), math3d.V2(10, 10), math3d.V2(0, 10), ColorWhite)

	if a+b != 132 {
		t.Errorf("writes = %d, want 132 (diagonal drawn twice)", a+b)
	}
	if got := fb.Count(ColorWhite); got != 121 {
		t.Errorf("covered = %d, want 121 with no gap on the shared edge", got)
	}
}

func TestFillTriangleOverwrites(t *testing.T) {
	fb := NewFramebuffer(8, 8)
	FillTriangle(fb, math3d.V2(0, 0), math3d.V2(7, 0), math3d.V2(0, 7), ColorRed)
	FillTriangle(fb, math3d.V2(0, 0), math3d.V2(7, 0), math3d.V2(0, 7), ColorBlue)

	if fb.Count(ColorRed) != 0 {
		t.Error("later triangle should overwrite earlier one")
	}
}

func BenchmarkFillTriangle(b *testing.B) {
	fb := NewFramebuffer(1100, 800)
	p0, p1, p2 := math3d.V2(100, 50), math3d.V2(900, 200), math3d.V2(400, 750)

	for b.Loop() {
		FillTriangle(fb, p0, p1, p2, ColorWhite)
	}
}
