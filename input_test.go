package main

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/ibd1279/vks-examples/tutorial-camera/camera"
	"github.com/stretchr/testify/assert"
)

func TestCameraKey(t *testing.T) {
	assert.Equal(t, camera.KeyForward, cameraKey(glfw.KeyW))
	assert.Equal(t, camera.KeyRollMinus, cameraKey(glfw.KeyKPSubtract))
	assert.Equal(t, camera.KeyClose, cameraKey(glfw.KeyEscape))
	assert.Equal(t, camera.KeyNone, cameraKey(glfw.KeyF1))
}

func TestCameraAction(t *testing.T) {
	for action, want := range map[glfw.Action]camera.Action{
		glfw.Press:   camera.Press,
		glfw.Repeat:  camera.Repeat,
		glfw.Release: camera.Release,
	} {
		got, ok := cameraAction(action)
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}

	_, ok := cameraAction(glfw.Action(42))
	assert.False(t, ok)
}
