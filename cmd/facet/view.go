package main

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/spf13/cobra"
	"github.com/taigrr/facet/pkg/config"
	"github.com/taigrr/facet/pkg/models"
	"github.com/taigrr/facet/pkg/render"
)

type viewFlags struct {
	fps   int
	watch bool
}

func newViewCmd(gf *globalFlags) *cobra.Command {
	var vf viewFlags

	cmd := &cobra.Command{
		Use:   "view [mesh...]",
		Short: "Explore meshes interactively in the terminal",
		Long: "Controls:\n" +
			"  W/S         - Move forward/back\n" +
			"  A/D         - Strafe left/right\n" +
			"  Q/E         - Move up/down\n" +
			"  Arrows      - Pitch and yaw\n" +
			"  L           - Toggle light follows camera\n" +
			"  X           - Toggle wireframe\n" +
			"  R           - Reset view\n" +
			"  ?           - Toggle status line\n" +
			"  Esc         - Quit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := gf.settings()
			if err != nil {
				return err
			}
			if vf.fps < 1 {
				return fmt.Errorf("invalid fps %d", vf.fps)
			}

			paths, err := meshPaths(cfg, args)
			if err != nil {
				return err
			}
			opts := loadOptions(cfg, logger)
			meshes, err := loadMeshes(paths, opts)
			if err != nil {
				return err
			}

			v := &viewer{
				cfg:    cfg,
				logger: logger,
				meshes: meshes,
				ctrl:   NewController(cfg.StartCamera(), cfg.Controls.MoveSpeed, cfg.Controls.TurnSpeed, vf.fps),
				fps:    vf.fps,
				status: true,
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			if vf.watch {
				// Quiet the loader while the alt screen is up.
				watchOpts := opts
				watchOpts.Logger = nil
				v.reloads = make(chan reload, 1)
				for i, p := range paths {
					go func() {
						err := models.Watch(ctx, p, meshes[i], watchOpts, func(m *models.Mesh, err error) {
							select {
							case v.reloads <- reload{index: i, mesh: m, err: err}:
							case <-ctx.Done():
							}
						})
						if err != nil {
							logger.Error("watch failed", "path", p, "err", err)
						}
					}()
				}
			}

			return v.run(ctx, cancel)
		},
	}

	f := cmd.Flags()
	f.IntVar(&vf.fps, "fps", 30, "target frames per second")
	f.BoolVarP(&vf.watch, "watch", "w", false, "reload meshes when their files change")

	return cmd
}

type reload struct {
	index int
	mesh  *models.Mesh
	err   error
}

// viewer owns all interactive state. Only the run loop touches it.
type viewer struct {
	cfg     config.Config
	logger  *log.Logger
	meshes  []*models.Mesh
	ctrl    *Controller
	fps     int
	reloads chan reload

	fb       *render.Framebuffer
	renderer *render.Renderer
	status   bool
	message  string
	stats    render.Stats
	// dirty forces a redraw on the next tick even if the camera is still.
	dirty bool
}

func (v *viewer) resize(cols, rows int) error {
	// Two pixel rows per terminal row.
	wireframe := v.renderer != nil && v.renderer.Wireframe()
	v.fb = render.NewFramebuffer(max(cols, 1), max(rows*2, 2))
	r, err := newRenderer(v.cfg, v.fb, wireframe)
	if err != nil {
		return err
	}
	v.renderer = r
	v.dirty = true
	return nil
}

func (v *viewer) run(ctx context.Context, cancel context.CancelFunc) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	defer func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}()

	if err := v.resize(width, height); err != nil {
		return err
	}

	frame := time.Second / time.Duration(v.fps)
	ticker := time.NewTicker(frame)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-term.Events():
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
				if err := v.resize(width, height); err != nil {
					return err
				}
			case uv.KeyPressEvent:
				if v.handleKey(ev) {
					cancel()
				}
				v.dirty = true
			}

		case r := <-v.reloads:
			v.applyReload(r)
			v.dirty = true

		case now := <-ticker.C:
			dt := min(now.Sub(last).Seconds(), 0.1)
			last = now

			// Skip the frame when nothing changed.
			moving := v.ctrl.Moving()
			v.ctrl.Step(dt)
			if !moving && !v.dirty {
				continue
			}
			v.dirty = false

			cam := v.ctrl.Camera
			stats, err := v.renderer.Render(ctx, v.meshes, cam, lightFor(v.cfg, cam))
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("render: %w", err)
			}
			v.stats = stats

			area := uv.Rect(0, 0, width, height)
			v.fb.Draw(term, area)
			if v.status {
				v.drawStatus(term, area)
			}
			if err := term.Display(); err != nil {
				return fmt.Errorf("display: %w", err)
			}
		}
	}
}

// handleKey applies a key press and reports whether the viewer should quit.
func (v *viewer) handleKey(ev uv.KeyPressEvent) bool {
	switch {
	case ev.MatchString("escape", "ctrl+c"):
		return true
	case ev.MatchString("w"):
		v.ctrl.Press(MoveForward)
	case ev.MatchString("s"):
		v.ctrl.Press(MoveBack)
	case ev.MatchString("a"):
		v.ctrl.Press(MoveLeft)
	case ev.MatchString("d"):
		v.ctrl.Press(MoveRight)
	case ev.MatchString("q"):
		v.ctrl.Press(MoveUp)
	case ev.MatchString("e"):
		v.ctrl.Press(MoveDown)
	case ev.MatchString("up"):
		v.ctrl.Press(PitchUp)
	case ev.MatchString("down"):
		v.ctrl.Press(PitchDown)
	case ev.MatchString("left"):
		v.ctrl.Press(YawLeft)
	case ev.MatchString("right"):
		v.ctrl.Press(YawRight)
	case ev.MatchString("l"):
		v.cfg.Light.FollowCamera = !v.cfg.Light.FollowCamera
	case ev.MatchString("x"):
		v.renderer.SetWireframe(!v.renderer.Wireframe())
	case ev.MatchString("r"):
		v.ctrl.Reset()
	case ev.MatchString("?", "shift+/"):
		v.status = !v.status
	}
	return false
}

func (v *viewer) applyReload(r reload) {
	if r.err != nil {
		v.message = fmt.Sprintf("reload failed: %v", r.err)
		return
	}
	v.meshes[r.index] = r.mesh
	v.message = fmt.Sprintf("reloaded %s (%d triangles)", r.mesh.Name, r.mesh.TriangleCount())
}

// drawStatus writes a one-line summary over the bottom terminal row.
func (v *viewer) drawStatus(scr uv.Screen, area uv.Rectangle) {
	cam := v.ctrl.Camera
	light := "fixed"
	if v.cfg.Light.FollowCamera {
		light = "camera"
	}
	mode := "solid"
	if v.renderer.Wireframe() {
		mode = "xray"
	}
	line := fmt.Sprintf(" pos %.2f,%.2f,%.2f  pitch %.2f yaw %.2f  drawn %d/%d  light %s  %s  %s",
		cam.Position.X, cam.Position.Y, cam.Position.Z, cam.Pitch, cam.Yaw,
		v.stats.Drawn, v.stats.Triangles, light, mode, v.message)

	row := area.Max.Y - 1
	col := area.Min.X
	for _, r := range line {
		if col >= area.Max.X {
			break
		}
		scr.SetCell(col, row, &uv.Cell{
			Content: string(r),
			Width:   1,
			Style: uv.Style{
				Fg: render.ColorWhite,
				Bg: render.ColorBlack,
			},
		})
		col++
	}
}
