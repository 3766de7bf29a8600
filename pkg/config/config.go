// Package config loads facet's TOML configuration.
package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/charmbracelet/log"
	"github.com/pelletier/go-toml/v2"
	"github.com/taigrr/facet/pkg/math3d"
	"github.com/taigrr/facet/pkg/render"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the full set of user settings. Zero values are not meaningful;
// start from Default and decode over it.
type Config struct {
	Width      int        `toml:"width"`
	Height     int        `toml:"height"`
	Background [3]uint8   `toml:"background"`
	LogLevel   string     `toml:"log_level"`
	Workers    int        `toml:"workers"`
	Projection Projection `toml:"projection"`
	Camera     Camera     `toml:"camera"`
	Light      Light      `toml:"light"`
	Controls   Controls   `toml:"controls"`
	Mesh       Mesh       `toml:"mesh"`
}

// Projection mirrors render.ProjectionConfig plus the cull tolerance.
type Projection struct {
	FOV         float64 `toml:"fov"`
	Near        float64 `toml:"near"`
	Far         float64 `toml:"far"`
	CullEpsilon float64 `toml:"cull_epsilon"`
}

// Camera is the starting camera pose.
type Camera struct {
	Position [3]float64 `toml:"position"`
	Pitch    float64    `toml:"pitch"`
	Yaw      float64    `toml:"yaw"`
}

// Light is the directional light.
type Light struct {
	Direction [3]float64 `toml:"direction"`
	// FollowCamera replaces the direction with the camera position every
	// frame. Direction is still used while the camera sits at the origin.
	FollowCamera bool `toml:"follow_camera"`
}

// Controls sets the viewer's motion rates.
type Controls struct {
	MoveSpeed float64 `toml:"move_speed"` // World units per second
	TurnSpeed float64 `toml:"turn_speed"` // Radians per second
}

// Mesh selects the model and its one-time fixups.
type Mesh struct {
	Path              string     `toml:"path"`
	Translate         [3]float64 `toml:"translate"`
	RepairOrientation bool       `toml:"repair_orientation"`
}

// Default returns the built-in settings.
func Default() Config {
	proj := render.DefaultProjection()
	return Config{
		Width:      1100,
		Height:     800,
		Background: [3]uint8{255, 0, 255},
		LogLevel:   "info",
		Workers:    1,
		Projection: Projection{
			FOV:         proj.FOV,
			Near:        proj.Near,
			Far:         proj.Far,
			CullEpsilon: render.DefaultVisibility().CullEpsilon,
		},
		Camera: Camera{Position: [3]float64{0, 0, -3}},
		Light:  Light{Direction: [3]float64{150, 150, -200}},
		Controls: Controls{
			MoveSpeed: 1,
			TurnSpeed: 1,
		},
	}
}

// Load reads a TOML file over Default and validates the result.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode reads TOML from r over Default and validates the result. Unknown
// keys are rejected.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every setting the renderer and viewer depend on.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: image size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers %d", ErrInvalidConfig, c.Workers)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.LogLevel)
	}
	if err := c.ProjectionConfig().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := c.VisibilityConfig().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := render.NormalizeLight(c.LightDirection()); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if !positive(c.Controls.MoveSpeed) || !positive(c.Controls.TurnSpeed) {
		return fmt.Errorf("%w: control speeds must be positive", ErrInvalidConfig)
	}
	return nil
}

func positive(f float64) bool {
	return f > 0 && !math.IsInf(f, 0)
}

// ProjectionConfig returns the perspective settings for the renderer.
func (c Config) ProjectionConfig() render.ProjectionConfig {
	return render.ProjectionConfig{
		FOV:  c.Projection.FOV,
		Near: c.Projection.Near,
		Far:  c.Projection.Far,
	}
}

// VisibilityConfig returns the culling settings for the renderer.
func (c Config) VisibilityConfig() render.VisibilityConfig {
	return render.VisibilityConfig{CullEpsilon: c.Projection.CullEpsilon}
}

// BackgroundColor returns the clear color.
func (c Config) BackgroundColor() render.Color {
	return render.RGB(c.Background[0], c.Background[1], c.Background[2])
}

// StartCamera returns the configured starting pose.
func (c Config) StartCamera() render.Camera {
	cam := render.NewCamera(vec(c.Camera.Position))
	cam.Turn(c.Camera.Pitch, c.Camera.Yaw)
	return cam
}

// LightDirection returns the configured light vector, not normalized.
func (c Config) LightDirection() math3d.Vec3 {
	return vec(c.Light.Direction)
}

// MeshTranslate returns the one-time mesh offset.
func (c Config) MeshTranslate() math3d.Vec3 {
	return vec(c.Mesh.Translate)
}

// Level returns the parsed log level. Call after Validate.
func (c Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

func vec(a [3]float64) math3d.Vec3 {
	return math3d.V3(a[0], a[1], a[2])
}
