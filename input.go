package main

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/ibd1279/vks-examples/tutorial-camera/camera"
)

var keyBindings = map[glfw.Key]camera.Key{
	glfw.KeyW:          camera.KeyForward,
	glfw.KeyS:          camera.KeyBack,
	glfw.KeyA:          camera.KeyLeft,
	glfw.KeyD:          camera.KeyRight,
	glfw.KeyQ:          camera.KeyDown,
	glfw.KeyE:          camera.KeyUp,
	glfw.KeyKPAdd:      camera.KeyRollPlus,
	glfw.KeyKPSubtract: camera.KeyRollMinus,
	glfw.KeyHome:       camera.KeyHome,
	glfw.KeyEscape:     camera.KeyClose,
}

// cameraKey maps a glfw key to a camera command. Unbound keys map to
// camera.KeyNone.
func cameraKey(key glfw.Key) camera.Key {
	return keyBindings[key]
}

func cameraAction(action glfw.Action) (camera.Action, bool) {
	switch action {
	case glfw.Press:
		return camera.Press, true
	case glfw.Repeat:
		return camera.Repeat, true
	case glfw.Release:
		return camera.Release, true
	}
	return 0, false
}

// bindInput routes keyboard and pointer events to the controller. The
// pointer is hidden and kept at the window centre.
func (app *CameraApplication) bindInput() {
	app.window.SetKeyCallback(app.onKey)
	app.window.SetCursorPosCallback(app.onCursor)
	app.window.SetInputMode(glfw.CursorMode, glfw.CursorHidden)
	app.recenterCursor(app.window)
}

func (app *CameraApplication) recenterCursor(w *glfw.Window) {
	c := app.controller.Center
	w.SetCursorPos(float64(c[0]), float64(c[1]))
}

func (app *CameraApplication) onKey(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	a, ok := cameraAction(action)
	if !ok {
		return
	}
	changed := app.controller.Key(cameraKey(key), a)
	if app.controller.CloseRequested() {
		w.SetShouldClose(true)
		return
	}
	if changed {
		app.updateTransform()
	}
}

func (app *CameraApplication) onCursor(w *glfw.Window, x, y float64) {
	app.controller.Cursor(x, y)
	app.recenterCursor(w)
	app.updateTransform()
}
