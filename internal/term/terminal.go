// Package term renders the game into a terminal with tcell, two pixels per
// character cell using upper half blocks.
package term

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"raycaster/internal/engine"
	"raycaster/internal/logger"
)

const halfBlock = '▀'

// Run drives session on screen until it ends or ctx is cancelled. The
// caller owns screen: it must be initialised and is not finalised here.
func Run(ctx context.Context, screen tcell.Screen, session *engine.Session, cfg engine.Config) error {
	screen.EnableMouse(tcell.MouseMotionEvents)
	defer screen.DisableMouse()
	screen.Clear()

	events := make(chan tcell.Event, 64)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	var keys Keys
	canvas := engine.NewCanvas(0, 0)
	delay := cfg.FrameDelay()
	last := time.Now()

	for !session.Terminal() {
		// Drain pending input without blocking the frame.
	drain:
		for {
			select {
			case ev := <-events:
				if _, ok := ev.(*tcell.EventResize); ok {
					screen.Sync()
					continue
				}
				keys.Apply(ev, time.Now())
			default:
				break drain
			}
		}

		now := time.Now()
		if err := session.Step(keys.Input(now, now.Sub(last))); err != nil {
			logger.Log.WithError(err).Warn("rotation rejected")
		}
		last = now
		if session.Terminal() {
			break
		}

		if err := draw(screen, session, canvas); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			session.Quit()
		case <-time.After(delay):
		}
	}
	return nil
}

func draw(screen tcell.Screen, session *engine.Session, canvas *engine.Canvas) error {
	cols, rows := screen.Size()
	w, h := engine.Viewport(cols, rows*2)
	if w == 0 || h == 0 {
		return nil
	}
	frame, err := session.Render(w, h)
	if err != nil {
		if errors.Is(err, engine.ErrTraversalBound) {
			return fmt.Errorf("rendering frame %d: %w", session.Frames, err)
		}
		logger.Log.WithError(err).Warn("skipping frame")
		return nil
	}
	canvas.DrawFrame(frame)
	Blit(screen, canvas)
	screen.Show()
	return nil
}

// Blit copies canvas onto screen. Row pair (2y, 2y+1) becomes text row y:
// the top pixel is the foreground of a half block, the bottom its background.
func Blit(screen tcell.Screen, canvas *engine.Canvas) {
	for y := 0; y*2 < canvas.Height; y++ {
		for x := 0; x < canvas.Width; x++ {
			top := canvas.At(x, y*2)
			bottom := canvas.At(x, y*2+1)
			style := tcell.StyleDefault.
				Foreground(color(top)).
				Background(color(bottom))
			screen.SetContent(x, y, halfBlock, nil, style)
		}
	}
}

func color(c engine.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
