package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/taigrr/facet/pkg/math3d"
	"github.com/taigrr/facet/pkg/render"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}

	if cfg.Width != 1100 || cfg.Height != 800 {
		t.Errorf("size = %dx%d, want 1100x800", cfg.Width, cfg.Height)
	}
	if cfg.BackgroundColor() != render.ColorMagenta {
		t.Errorf("background = %v, want magenta", cfg.BackgroundColor())
	}
	if cfg.ProjectionConfig() != render.DefaultProjection() {
		t.Errorf("projection = %+v", cfg.ProjectionConfig())
	}
	if cfg.VisibilityConfig() != render.DefaultVisibility() {
		t.Errorf("visibility = %+v", cfg.VisibilityConfig())
	}
	if cfg.StartCamera().Position != math3d.V3(0, 0, -3) {
		t.Errorf("camera = %v", cfg.StartCamera().Position)
	}
	if cfg.LightDirection() != math3d.V3(150, 150, -200) {
		t.Errorf("light = %v", cfg.LightDirection())
	}
	if cfg.Level() != log.InfoLevel {
		t.Errorf("level = %v", cfg.Level())
	}
}

func TestDecodeOverridesDefaults(t *testing.T) {
	input := `
width = 320
log_level = "debug"

[camera]
position = [1.0, 2.0, -10.0]
yaw = 0.5

[light]
follow_camera = true

[mesh]
path = "models/remy.txt"
translate = [0.0, -0.5, 0.0]
repair_orientation = true
`
	cfg, err := Decode(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if cfg.Width != 320 || cfg.Height != 800 {
		t.Errorf("size = %dx%d, want 320x800", cfg.Width, cfg.Height)
	}
	if cfg.Level() != log.DebugLevel {
		t.Errorf("level = %v, want debug", cfg.Level())
	}
	cam := cfg.StartCamera()
	if cam.Position != math3d.V3(1, 2, -10) || cam.Yaw != 0.5 {
		t.Errorf("camera = %+v", cam)
	}
	if !cfg.Light.FollowCamera {
		t.Error("follow_camera not decoded")
	}
	if cfg.Mesh.Path != "models/remy.txt" || !cfg.Mesh.RepairOrientation {
		t.Errorf("mesh = %+v", cfg.Mesh)
	}
	if cfg.MeshTranslate() != math3d.V3(0, -0.5, 0) {
		t.Errorf("translate = %v", cfg.MeshTranslate())
	}
	if cfg.Projection.FOV != render.DefaultProjection().FOV {
		t.Error("untouched sections should keep defaults")
	}
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	if _, err := Decode(strings.NewReader("widht = 10\n")); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestDecodeValidation(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"zero width", "width = 0"},
		{"no workers", "workers = 0"},
		{"bad log level", `log_level = "loud"`},
		{"fov too wide", "[projection]\nfov = 3.5"},
		{"near behind far", "[projection]\nnear = 10.0\nfar = 1.0"},
		{"negative epsilon", "[projection]\ncull_epsilon = -0.1"},
		{"zero light", "[light]\ndirection = [0.0, 0.0, 0.0]"},
		{"zero move speed", "[controls]\nmove_speed = 0.0"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tc.input))
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("err = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestValidateWrapsRenderErrors(t *testing.T) {
	cfg := Default()
	cfg.Projection.Near = -1
	if err := cfg.Validate(); !errors.Is(err, render.ErrInvalidProjection) {
		t.Errorf("err = %v, want ErrInvalidProjection in chain", err)
	}

	cfg = Default()
	cfg.Light.Direction = [3]float64{}
	if err := cfg.Validate(); !errors.Is(err, render.ErrInvalidLightDirection) {
		t.Errorf("err = %v, want ErrInvalidLightDirection in chain", err)
	}
}

func TestStartCameraClampsPitch(t *testing.T) {
	cfg := Default()
	cfg.Camera.Pitch = 3
	if got := cfg.StartCamera().Pitch; got != render.MaxPitch {
		t.Errorf("pitch = %v, want %v", got, render.MaxPitch)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "facet.toml")
	if err := os.WriteFile(path, []byte("height = 600\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Height != 600 {
		t.Errorf("height = %d, want 600", cfg.Height)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}
