package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/taigrr/facet/pkg/render"
)

type renderFlags struct {
	output    string
	scale     int
	width     int
	height    int
	wireframe bool
}

func newRenderCmd(gf *globalFlags) *cobra.Command {
	var rf renderFlags

	cmd := &cobra.Command{
		Use:   "render [mesh...]",
		Short: "Render meshes to a PNG image",
		Example: "  facet render models/remy.txt -o remy.png\n" +
			"  facet render --config scene.toml --scale 2",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := gf.settings()
			if err != nil {
				return err
			}
			if rf.width > 0 {
				cfg.Width = rf.width
			}
			if rf.height > 0 {
				cfg.Height = rf.height
			}

			paths, err := meshPaths(cfg, args)
			if err != nil {
				return err
			}
			meshes, err := loadMeshes(paths, loadOptions(cfg, logger))
			if err != nil {
				return err
			}

			fb := render.NewFramebuffer(cfg.Width, cfg.Height)
			r, err := newRenderer(cfg, fb, rf.wireframe)
			if err != nil {
				return err
			}

			cam := cfg.StartCamera()
			stats, err := r.Render(cmd.Context(), meshes, cam, lightFor(cfg, cam))
			if err != nil {
				return fmt.Errorf("render: %w", err)
			}
			covered := cfg.Width*cfg.Height - fb.Count(cfg.BackgroundColor())
			logger.Debug("frame", "triangles", stats.Triangles, "culled", stats.Culled,
				"drawn", stats.Drawn, "pixels", stats.Pixels, "covered", covered)

			if err := fb.SavePNG(rf.output, rf.scale); err != nil {
				return fmt.Errorf("save %s: %w", rf.output, err)
			}
			logger.Info("wrote image", "path", rf.output,
				"width", cfg.Width*rf.scale, "height", cfg.Height*rf.scale)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&rf.output, "output", "o", "facet.png", "output PNG path")
	f.IntVar(&rf.scale, "scale", 1, "integer upscale factor (nearest neighbour)")
	f.IntVar(&rf.width, "width", 0, "image width (overrides config)")
	f.IntVar(&rf.height, "height", 0, "image height (overrides config)")
	f.BoolVarP(&rf.wireframe, "wireframe", "x", false, "overlay triangle edges")

	return cmd
}
