package game

import (
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"raycaster/internal/engine"
)

// Input samples the keyboard and mouse once per frame.
type Input struct {
	prevMouse   map[glfw.MouseButton]bool
	prevKeys    map[glfw.Key]bool
	prevCursorX float64
	haveCursor  bool
	captured    bool
}

func NewInput() *Input {
	return &Input{
		prevMouse: make(map[glfw.MouseButton]bool),
		prevKeys:  make(map[glfw.Key]bool),
	}
}

func (in *Input) JustPressed(window *glfw.Window, key glfw.Key) bool {
	down := window.GetKey(key) == glfw.Press
	jp := down && !in.prevKeys[key]
	in.prevKeys[key] = down
	return jp
}

func (in *Input) JustClicked(window *glfw.Window, btn glfw.MouseButton) bool {
	down := window.GetMouseButton(btn) == glfw.Press
	jp := down && !in.prevMouse[btn]
	in.prevMouse[btn] = down
	return jp
}

func anyDown(window *glfw.Window, keys ...glfw.Key) bool {
	for _, k := range keys {
		if window.GetKey(k) == glfw.Press {
			return true
		}
	}
	return false
}

// Capture grabs the cursor for mouse look.
func (in *Input) Capture(window *glfw.Window) {
	captureCursor(window, true)
	in.captured = true
	in.haveCursor = false
}

// Poll turns the current device state into one tick of input. Escape
// releases the cursor and a left click grabs it again; mouse motion only
// rotates while the cursor is grabbed.
func (in *Input) Poll(window *glfw.Window, elapsed time.Duration) engine.Input {
	if in.JustPressed(window, glfw.KeyEscape) && in.captured {
		captureCursor(window, false)
		in.captured = false
	}
	if in.JustClicked(window, glfw.MouseButtonLeft) && !in.captured {
		in.Capture(window)
	}

	out := engine.Input{
		Quit:        window.ShouldClose() || anyDown(window, glfw.KeyQ),
		Forward:     anyDown(window, glfw.KeyUp, glfw.KeyW),
		Backward:    anyDown(window, glfw.KeyDown, glfw.KeyS),
		RotateLeft:  anyDown(window, glfw.KeyLeft, glfw.KeyA),
		RotateRight: anyDown(window, glfw.KeyRight, glfw.KeyD),
		Elapsed:     elapsed,
	}

	cx, _ := window.GetCursorPos()
	if in.captured && in.haveCursor {
		out.MouseDX = cx - in.prevCursorX
	}
	in.prevCursorX, in.haveCursor = cx, true
	return out
}
