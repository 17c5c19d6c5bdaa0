package game

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"raycaster/internal/engine"
	"raycaster/internal/logger"
)

// RunDesktop opens a window and drives session until it ends, the window
// closes or ctx is cancelled. It must run on the main goroutine.
func RunDesktop(ctx context.Context, session *engine.Session, cfg engine.Config) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	window, err := initWindow()
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}
	logger.Log.WithField("gl_version", gl.GoStr(gl.GetString(gl.VERSION))).Debug("OpenGL ready")

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)

	rend, err := NewRenderer()
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer rend.Destroy()

	input := NewInput()
	input.Capture(window)
	delay := cfg.FrameDelay()

	last := glfw.GetTime()
	for !session.Terminal() {
		if ctx.Err() != nil {
			session.Quit()
			break
		}

		now := glfw.GetTime()
		elapsed := time.Duration((now - last) * float64(time.Second))
		last = now

		glfw.PollEvents()
		if err := session.Step(input.Poll(window, elapsed)); err != nil {
			logger.Log.WithError(err).Warn("rotation rejected")
		}
		if session.Terminal() {
			break
		}

		fbW, fbH := window.GetFramebufferSize()
		w, h := rend.BeginFrame(fbW, fbH)
		if w <= 0 || h <= 0 {
			continue
		}
		frame, err := session.Render(w, h)
		if err != nil {
			if errors.Is(err, engine.ErrTraversalBound) {
				return fmt.Errorf("rendering frame %d: %w", session.Frames, err)
			}
			logger.Log.WithError(err).Warn("skipping frame")
			continue
		}
		rend.DrawFrame(frame)
		window.SwapBuffers()

		time.Sleep(delay)
	}
	return nil
}
