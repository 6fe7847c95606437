package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestController() *Controller {
	return NewController(New(1), 800, 600)
}

func TestControllerMoves(t *testing.T) {
	for _, tc := range []struct {
		key  Key
		want mgl32.Vec3
	}{
		{KeyForward, Home.Add(mgl32.Vec3{0, 0, 1})},
		{KeyBack, Home.Add(mgl32.Vec3{0, 0, -1})},
		{KeyLeft, Home.Add(mgl32.Vec3{1, 0, 0})},
		{KeyRight, Home.Add(mgl32.Vec3{-1, 0, 0})},
		{KeyDown, Home.Add(mgl32.Vec3{0, -1, 0})},
		{KeyUp, Home.Add(mgl32.Vec3{0, 1, 0})},
	} {
		c := newTestController()
		assert.True(t, c.Key(tc.key, Press))
		assert.True(t, c.Camera.Position.ApproxEqual(tc.want), "key %d: got %v", tc.key, c.Camera.Position)
	}
}

func TestControllerRoll(t *testing.T) {
	c := newTestController()
	c.Key(KeyRollPlus, Press)
	c.Key(KeyRollPlus, Press)
	c.Key(KeyRollMinus, Press)
	assert.InDelta(t, 1, c.Camera.Rotation[2], 1e-6)
}

func TestControllerSpeed(t *testing.T) {
	c := newTestController()
	require.InDelta(t, 1, c.Speed(), 1e-6)

	c.Key(KeyForward, Repeat)
	assert.InDelta(t, 1.1, c.Speed(), 1e-6)
	assert.InDelta(t, Home[2]+1.1, c.Camera.Position[2], 1e-5)

	assert.False(t, c.Key(KeyForward, Release))
	assert.InDelta(t, 0.1, c.Speed(), 1e-6)

	c.Key(KeyForward, Press)
	assert.InDelta(t, Home[2]+1.2, c.Camera.Position[2], 1e-5)
}

func TestControllerHome(t *testing.T) {
	c := newTestController()
	c.Key(KeyLeft, Press)
	c.Key(KeyRollPlus, Press)
	c.Cursor(500, 400)

	c.Key(KeyHome, Press)
	assert.Equal(t, Home, c.Camera.Position)
	assert.Equal(t, mgl32.Vec3{}, c.Camera.Rotation)
}

func TestControllerClose(t *testing.T) {
	c := newTestController()
	assert.False(t, c.CloseRequested())
	assert.False(t, c.Key(KeyClose, Press))
	assert.True(t, c.CloseRequested())
	assert.Equal(t, Home, c.Camera.Position)
}

func TestControllerCursor(t *testing.T) {
	c := newTestController()
	assert.Equal(t, mgl32.Vec2{400, 300}, c.Center)

	c.Cursor(400, 300)
	assert.Equal(t, mgl32.Vec3{}, c.Camera.Rotation)

	c.Cursor(500, 250)
	assert.InDelta(t, 0.1, c.Camera.Rotation[1], 1e-6)
	assert.InDelta(t, -0.05, c.Camera.Rotation[0], 1e-6)
}
