package render

import (
	"math"

	"github.com/taigrr/facet/pkg/math3d"
)

// MaxPitch is the largest pitch magnitude Turn allows, just short of
// straight up or down.
const MaxPitch = math.Pi/2 - 0.01

// Camera is a position plus pitch and yaw in radians. There is no roll.
// The renderer reads it by value and never mutates it.
type Camera struct {
	Position math3d.Vec3
	Pitch    float64 // Rotation around X axis (look up/down)
	Yaw      float64 // Rotation around Y axis (look left/right)
}

// NewCamera creates a camera at pos looking down +Z.
func NewCamera(pos math3d.Vec3) Camera {
	return Camera{Position: pos}
}

// Forward returns the horizontal direction MoveForward travels along.
func (c Camera) Forward() math3d.Vec3 {
	return math3d.V3(-math.Sin(c.Yaw), 0, math.Cos(c.Yaw))
}

// Right returns the horizontal direction MoveRight travels along.
func (c Camera) Right() math3d.Vec3 {
	return math3d.V3(-math.Cos(c.Yaw), 0, -math.Sin(c.Yaw))
}

// MoveForward moves the camera forward (or backward if negative) in the
// horizontal plane. Pitch does not affect movement.
func (c *Camera) MoveForward(distance float64) {
	c.Position = c.Position.Add(c.Forward().Scale(distance))
}

// MoveRight moves the camera right (or left if negative).
func (c *Camera) MoveRight(distance float64) {
	c.Position = c.Position.Add(c.Right().Scale(distance))
}

// MoveUp moves the camera up (or down if negative) along world Y.
func (c *Camera) MoveUp(distance float64) {
	c.Position.Y += distance
}

// Turn rotates the camera by the given angles. Pitch is clamped to
// ±MaxPitch; yaw is unbounded.
func (c *Camera) Turn(deltaPitch, deltaYaw float64) {
	c.Pitch = math3d.Clamp(c.Pitch+deltaPitch, -MaxPitch, MaxPitch)
	c.Yaw += deltaYaw
}

// Rotation returns the view rotation, pitch about X composed with yaw
// about Y.
func (c Camera) Rotation() math3d.Mat3 {
	return math3d.RotationX3(c.Pitch).Mul(math3d.RotationY3(c.Yaw))
}
