// Package camera holds the demo camera and the controller that moves it
// from keyboard and pointer input.
package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Home is the position the camera starts at and returns to.
var Home = mgl32.Vec3{0, -1, -5}

// Camera is a perspective camera. Rotation holds Euler angles in radians
// around x, y and z.
type Camera struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	FovY     float32
	Aspect   float32
	Near     float32
	Far      float32
}

// New returns a camera at Home with a 45 degree field of view.
func New(aspect float32) *Camera {
	return &Camera{
		Position: Home,
		FovY:     mgl32.DegToRad(45),
		Aspect:   aspect,
		Near:     0.1,
		Far:      100,
	}
}

// Orientation returns the rotation as a quaternion. The angles compose as
// qz * qy * qx.
func (c *Camera) Orientation() mgl32.Quat {
	return mgl32.AnglesToQuat(c.Rotation[2], c.Rotation[1], c.Rotation[0], mgl32.ZYX)
}

// Projection returns the perspective matrix with y flipped for Vulkan clip
// space.
func (c *Camera) Projection() mgl32.Mat4 {
	p := mgl32.Perspective(c.FovY, c.Aspect, c.Near, c.Far)
	p[5] *= -1
	return p
}

// View rotates after translating, so the camera turns around its own
// position.
func (c *Camera) View() mgl32.Mat4 {
	return c.Orientation().Mat4().Mul4(mgl32.Translate3D(c.Position[0], c.Position[1], c.Position[2]))
}

// Transform returns projection * view * model.
func (c *Camera) Transform(model mgl32.Mat4) mgl32.Mat4 {
	return c.Projection().Mul4(c.View()).Mul4(model)
}

// Reset moves the camera back to Home and clears the rotation.
func (c *Camera) Reset() {
	c.Position = Home
	c.Rotation = mgl32.Vec3{}
}
