package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Key is a camera command bound to a keyboard key.
type Key int

const (
	KeyNone     Key = iota
	KeyForward      // W
	KeyBack         // S
	KeyLeft         // A
	KeyRight        // D
	KeyDown         // Q
	KeyUp           // E
	KeyRollPlus     // keypad +
	KeyRollMinus    // keypad -
	KeyHome
	KeyClose // escape
)

// Action is what happened to a key.
type Action int

const (
	Press Action = iota
	Repeat
	Release
)

const (
	initialSpeed = 1.0
	releaseSpeed = 0.1
	speedStep    = 0.1
	cursorScale  = 0.001
)

// Controller applies input to a camera. Holding a key accelerates it;
// releasing any key drops back to a slow speed.
type Controller struct {
	Camera *Camera
	Center mgl32.Vec2

	speed          float32
	closeRequested bool
}

// NewController returns a controller for a window of the given size. The
// pointer is expected to be re-centred after every Cursor call.
func NewController(c *Camera, width, height int) *Controller {
	return &Controller{
		Camera: c,
		Center: mgl32.Vec2{float32(width) / 2, float32(height) / 2},
		speed:  initialSpeed,
	}
}

// Speed returns the current movement step.
func (c *Controller) Speed() float32 { return c.speed }

// CloseRequested reports whether KeyClose was pressed.
func (c *Controller) CloseRequested() bool { return c.closeRequested }

// Key applies a key event and reports whether the camera may have changed.
func (c *Controller) Key(key Key, action Action) bool {
	switch action {
	case Repeat:
		c.speed += speedStep
		return c.apply(key)
	case Press:
		return c.apply(key)
	case Release:
		c.speed = releaseSpeed
	}
	return false
}

func (c *Controller) apply(key Key) bool {
	cam := c.Camera
	s := c.speed
	switch key {
	case KeyForward:
		cam.Position[2] += s
	case KeyBack:
		cam.Position[2] -= s
	case KeyLeft:
		cam.Position[0] += s
	case KeyRight:
		cam.Position[0] -= s
	case KeyDown:
		cam.Position[1] -= s
	case KeyUp:
		cam.Position[1] += s
	case KeyRollPlus:
		cam.Rotation[2] += s
	case KeyRollMinus:
		cam.Rotation[2] -= s
	case KeyHome:
		cam.Reset()
	case KeyClose:
		c.closeRequested = true
		return false
	}
	return true
}

// Cursor turns the camera by the pointer's offset from Center.
func (c *Controller) Cursor(x, y float64) {
	c.Camera.Rotation[1] += float32(x-float64(c.Center[0])) * cursorScale
	c.Camera.Rotation[0] += float32(y-float64(c.Center[1])) * cursorScale
}
