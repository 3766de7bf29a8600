package render

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/taigrr/facet/pkg/math3d"
)

func TestProjectionConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ProjectionConfig
		wantErr bool
	}{
		{"default", DefaultProjection(), false},
		{"wide", ProjectionConfig{FOV: 3, Near: 0.1, Far: 10}, false},
		{"zero fov", ProjectionConfig{FOV: 0, Near: 0.1, Far: 10}, true},
		{"fov pi", ProjectionConfig{FOV: math.Pi, Near: 0.1, Far: 10}, true},
		{"zero near", ProjectionConfig{FOV: 1, Near: 0, Far: 10}, true},
		{"negative near", ProjectionConfig{FOV: 1, Near: -1, Far: 10}, true},
		{"far equals near", ProjectionConfig{FOV: 1, Near: 5, Far: 5}, true},
		{"far before near", ProjectionConfig{FOV: 1, Near: 5, Far: 1}, true},
		{"nan fov", ProjectionConfig{FOV: math.NaN(), Near: 0.1, Far: 10}, true},
		{"infinite far", ProjectionConfig{FOV: 1, Near: 0.1, Far: math.Inf(1)}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr && !errors.Is(err, ErrInvalidProjection) {
				t.Errorf("err = %v, want ErrInvalidProjection", err)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestBuildProjectionMatrix(t *testing.T) {
	m, err := BuildProjectionMatrix(math.Pi/4, 1.5, 0.001, 1000)
	if err != nil {
		t.Fatalf("BuildProjectionMatrix: %v", err)
	}
	if m != math3d.Perspective(math.Pi/4, 1.5, 0.001, 1000) {
		t.Error("matrix differs from math3d.Perspective")
	}

	for _, aspect := range []float64{0, -1, math.Inf(1)} {
		if _, err := BuildProjectionMatrix(math.Pi/4, aspect, 0.1, 10); !errors.Is(err, ErrInvalidProjection) {
			t.Errorf("aspect %v: err = %v, want ErrInvalidProjection", aspect, err)
		}
	}
}

func TestNewProjectorRejectsEmptyImage(t *testing.T) {
	if _, err := NewProjector(DefaultProjection(), Camera{}, 0, 10); !errors.Is(err, ErrInvalidProjection) {
		t.Errorf("err = %v, want ErrInvalidProjection", err)
	}
}

func TestProjectToScreenCenterAndUp(t *testing.T) {
	p, err := NewProjector(DefaultProjection(), Camera{}, 100, 80)
	if err != nil {
		t.Fatalf("NewProjector: %v", err)
	}

	center := p.ProjectToScreen(math3d.V3(0, 0, 5))
	if center != math3d.V2(50, 40) {
		t.Errorf("straight ahead projected to %v, want (50, 40)", center)
	}

	up := p.ProjectToScreen(math3d.V3(0, 1, 5))
	if up.Y >= center.Y {
		t.Errorf("world up projected to row %v, expected above %v", up.Y, center.Y)
	}

	farther := p.ProjectToScreen(math3d.V3(0, 1, 50))
	if math.Abs(farther.Y-center.Y) >= math.Abs(up.Y-center.Y) {
		t.Errorf("farther point should project closer to center: %v vs %v", farther, up)
	}
}

func TestProjectToScreenFollowsCamera(t *testing.T) {
	// Moving the camera and the point together must not change the result.
	cam := Camera{Position: math3d.V3(3, -2, 7), Pitch: 0.2, Yaw: -0.4}
	moved := cam
	moved.Position = moved.Position.Add(math3d.V3(10, 10, 10))

	a, _ := NewProjector(DefaultProjection(), cam, 64, 48)
	b, _ := NewProjector(DefaultProjection(), moved, 64, 48)

	pt := math3d.V3(4, -1.5, 12)
	pa := a.ProjectToScreen(pt)
	pb := b.ProjectToScreen(pt.Add(math3d.V3(10, 10, 10)))
	if math.Abs(pa.X-pb.X) > 1e-6 || math.Abs(pa.Y-pb.Y) > 1e-6 {
		t.Errorf("projection changed under joint translation: %v vs %v", pa, pb)
	}
}

func TestProjectToScreenAlwaysInBounds(t *testing.T) {
	const w, h = 120, 90
	cam := Camera{Position: math3d.V3(0.5, 1, -3), Pitch: 0.3, Yaw: 1.1}
	p, err := NewProjector(DefaultProjection(), cam, w, h)
	if err != nil {
		t.Fatalf("NewProjector: %v", err)
	}

	points := []math3d.Vec3{
		cam.Position,                          // On the camera
		cam.Position.Add(math3d.V3(0, 0, -1)), // Behind
		math3d.V3(1e300, -1e300, 1e300),
		math3d.V3(-1e-300, 1e-300, 0),
		math3d.V3(math.MaxFloat64, math.MaxFloat64, -math.MaxFloat64),
	}
	rng := rand.New(rand.NewPCG(1, 2))
	for range 1000 {
		points = append(points, math3d.V3(
			(rng.Float64()-0.5)*200,
			(rng.Float64()-0.5)*200,
			(rng.Float64()-0.5)*200,
		))
	}

	for _, pt := range points {
		s := p.ProjectToScreen(pt)
		if !(s.X >= 0 && s.X <= w-1 && s.Y >= 0 && s.Y <= h-1) {
			t.Errorf("ProjectToScreen(%v) = %v, outside [0,%d]x[0,%d]", pt, s, w-1, h-1)
		}
	}
}

func BenchmarkProjectToScreen(b *testing.B) {
	p, _ := NewProjector(DefaultProjection(), Camera{Pitch: 0.1, Yaw: 0.2}, 1100, 800)
	pt := math3d.V3(1, 2, 10)

	for b.Loop() {
		_ = p.ProjectToScreen(pt)
	}
}
