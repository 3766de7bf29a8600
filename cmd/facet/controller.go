package main

import (
	"github.com/charmbracelet/harmonica"
	"github.com/taigrr/facet/pkg/render"
)

// Action is one camera control.
type Action int

const (
	MoveForward Action = iota // W
	MoveBack                  // S
	MoveLeft                  // A
	MoveRight                 // D
	MoveUp                    // Q
	MoveDown                  // E
	PitchUp                   // Up arrow
	PitchDown                 // Down arrow
	YawLeft                   // Left arrow
	YawRight                  // Right arrow
)

// axis tracks a velocity that a spring eases back to zero, so motion keeps
// going briefly after a key and then settles.
type axis struct {
	Velocity  float64
	velSpring harmonica.Spring
	velAccel  float64 // internal spring velocity (for animating Velocity toward 0)
}

func newAxis(fps int) axis {
	return axis{
		// Frequency 6.0 settles in a few frames, damping 1.0 = no overshoot
		velSpring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
	}
}

func (a *axis) decay() {
	a.Velocity, a.velAccel = a.velSpring.Update(a.Velocity, a.velAccel, 0)
}

// Controller turns key presses into smoothed camera motion.
type Controller struct {
	Camera    render.Camera
	MoveSpeed float64 // World units per second
	TurnSpeed float64 // Radians per second

	forward, right, up axis
	pitch, yaw         axis
	fps                int
	start              render.Camera
}

// NewController creates a controller starting at cam, updated fps times a
// second.
func NewController(cam render.Camera, moveSpeed, turnSpeed float64, fps int) *Controller {
	c := &Controller{
		Camera:    cam,
		MoveSpeed: moveSpeed,
		TurnSpeed: turnSpeed,
		fps:       fps,
		start:     cam,
	}
	c.resetAxes()
	return c
}

func (c *Controller) resetAxes() {
	c.forward = newAxis(c.fps)
	c.right = newAxis(c.fps)
	c.up = newAxis(c.fps)
	c.pitch = newAxis(c.fps)
	c.yaw = newAxis(c.fps)
}

// Press sets the velocity of the axis the action drives.
func (c *Controller) Press(a Action) {
	switch a {
	case MoveForward:
		c.forward.Velocity = c.MoveSpeed
	case MoveBack:
		c.forward.Velocity = -c.MoveSpeed
	case MoveRight:
		c.right.Velocity = c.MoveSpeed
	case MoveLeft:
		c.right.Velocity = -c.MoveSpeed
	case MoveUp:
		c.up.Velocity = c.MoveSpeed
	case MoveDown:
		c.up.Velocity = -c.MoveSpeed
	case PitchUp:
		c.pitch.Velocity = c.TurnSpeed
	case PitchDown:
		c.pitch.Velocity = -c.TurnSpeed
	case YawLeft:
		c.yaw.Velocity = -c.TurnSpeed
	case YawRight:
		c.yaw.Velocity = c.TurnSpeed
	}
}

// Step advances the camera by dt seconds and lets every axis decay.
func (c *Controller) Step(dt float64) {
	c.Camera.MoveForward(c.forward.Velocity * dt)
	c.Camera.MoveRight(c.right.Velocity * dt)
	c.Camera.MoveUp(c.up.Velocity * dt)
	c.Camera.Turn(c.pitch.Velocity*dt, c.yaw.Velocity*dt)

	for _, a := range []*axis{&c.forward, &c.right, &c.up, &c.pitch, &c.yaw} {
		a.decay()
	}
}

// Moving reports whether any axis still has noticeable velocity.
func (c *Controller) Moving() bool {
	const still = 1e-4
	for _, a := range []axis{c.forward, c.right, c.up, c.pitch, c.yaw} {
		if a.Velocity > still || a.Velocity < -still {
			return true
		}
	}
	return false
}

// Reset returns to the starting pose and stops all motion.
func (c *Controller) Reset() {
	c.Camera = c.start
	c.resetAxes()
}
