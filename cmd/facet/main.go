// facet - software rasterizer for triangle meshes.
// Renders .txt and .glb/.gltf meshes with flat shading and painter's-algorithm
// ordering, either headless to PNG or live in the terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/taigrr/facet/pkg/config"
	"github.com/taigrr/facet/pkg/math3d"
	"github.com/taigrr/facet/pkg/models"
	"github.com/taigrr/facet/pkg/render"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	logLevel   string
	repair     bool
	workers    int
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := fang.Execute(ctx, newRootCmd()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var gf globalFlags

	root := &cobra.Command{
		Use:   "facet",
		Short: "Software rasterizer for triangle meshes",
		Long: "facet draws triangle meshes with a from-scratch pipeline: perspective\n" +
			"projection, backface culling, flat shading and painter's-algorithm fill.",
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&gf.configPath, "config", "c", "", "TOML config file")
	pf.StringVar(&gf.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.BoolVar(&gf.repair, "repair", false, "force outward-normal repair on load")
	pf.IntVar(&gf.workers, "workers", 0, "meshes culled and shaded in parallel")

	root.AddCommand(newRenderCmd(&gf), newViewCmd(&gf))
	return root
}

// settings resolves config file, flag overrides and the logger.
func (gf *globalFlags) settings() (config.Config, *log.Logger, error) {
	cfg := config.Default()
	if gf.configPath != "" {
		var err error
		cfg, err = config.Load(gf.configPath)
		if err != nil {
			return cfg, nil, err
		}
	}

	if gf.logLevel != "" {
		cfg.LogLevel = gf.logLevel
	}
	if gf.repair {
		cfg.Mesh.RepairOrientation = true
	}
	if gf.workers > 0 {
		cfg.Workers = gf.workers
	}
	if err := cfg.Validate(); err != nil {
		return cfg, nil, err
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          "facet",
	})
	logger.SetLevel(cfg.Level())

	return cfg, logger, nil
}

// meshPaths returns the positional arguments, or the configured mesh.
func meshPaths(cfg config.Config, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if cfg.Mesh.Path != "" {
		return []string{cfg.Mesh.Path}, nil
	}
	return nil, fmt.Errorf("no mesh given: pass a path or set [mesh] path in the config")
}

func loadOptions(cfg config.Config, logger *log.Logger) models.LoadOptions {
	return models.LoadOptions{
		RepairOrientation: cfg.Mesh.RepairOrientation,
		Translate:         cfg.MeshTranslate(),
		Logger:            logger,
	}
}

func loadMeshes(paths []string, opts models.LoadOptions) ([]*models.Mesh, error) {
	meshes := make([]*models.Mesh, 0, len(paths))
	for _, p := range paths {
		m, _, err := models.Load(p, opts)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", p, err)
		}
		meshes = append(meshes, m)
	}
	return meshes, nil
}

func newRenderer(cfg config.Config, fb *render.Framebuffer, wireframe bool) (*render.Renderer, error) {
	r, err := render.NewRenderer(fb,
		render.WithProjection(cfg.ProjectionConfig()),
		render.WithVisibility(cfg.VisibilityConfig()),
		render.WithBackground(cfg.BackgroundColor()),
		render.WithWorkers(cfg.Workers),
		render.WithWireframe(render.RGB(0, 255, 128)),
	)
	if err != nil {
		return nil, err
	}
	r.SetWireframe(wireframe)
	return r, nil
}

// lightFor returns the light vector for a frame. With FollowCamera the light
// vector is the camera position; a camera at the origin falls back to the
// configured direction.
func lightFor(cfg config.Config, cam render.Camera) math3d.Vec3 {
	if cfg.Light.FollowCamera && cam.Position.LenSq() > 0 {
		return cam.Position
	}
	return cfg.LightDirection()
}
