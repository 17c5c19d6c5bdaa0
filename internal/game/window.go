package game

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"

	"raycaster/internal/engine"
)

func initWindow() (*glfw.Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.Decorated, glfw.True)

	window, err := glfw.CreateWindow(engine.WindowWidth, engine.WindowHeight, engine.WindowTitle, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	return window, nil
}

// captureCursor hides and locks the cursor for mouse look, or releases it.
func captureCursor(window *glfw.Window, on bool) {
	mode := glfw.CursorNormal
	if on {
		mode = glfw.CursorDisabled
	}
	window.SetInputMode(glfw.CursorMode, mode)
}
