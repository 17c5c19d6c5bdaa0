package term

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"raycaster/internal/engine"
)

// Terminals report key presses, never releases. A key counts as held for
// holdWindow after its last press or autorepeat.
const holdWindow = 150 * time.Millisecond

// mouseScale converts one cell of mouse travel into window pixels.
const mouseScale = 4.0

type action int

const (
	actForward action = iota
	actBackward
	actLeft
	actRight
	numActions
)

// Keys tracks press times and accumulated mouse motion between ticks.
type Keys struct {
	pressed [numActions]time.Time
	quit    bool
	mouseDX float64
	mouseX  int
	haveX   bool
}

// Apply folds one tcell event into the key state.
func (k *Keys) Apply(ev tcell.Event, now time.Time) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			k.quit = true
		case tcell.KeyUp:
			k.pressed[actForward] = now
		case tcell.KeyDown:
			k.pressed[actBackward] = now
		case tcell.KeyLeft:
			k.pressed[actLeft] = now
		case tcell.KeyRight:
			k.pressed[actRight] = now
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				k.quit = true
			case 'w', 'W':
				k.pressed[actForward] = now
			case 's', 'S':
				k.pressed[actBackward] = now
			case 'a', 'A':
				k.pressed[actLeft] = now
			case 'd', 'D':
				k.pressed[actRight] = now
			}
		}
	case *tcell.EventMouse:
		x, _ := ev.Position()
		if k.haveX {
			k.mouseDX += float64(x-k.mouseX) * mouseScale
		}
		k.mouseX, k.haveX = x, true
	}
}

func (k *Keys) held(a action, now time.Time) bool {
	t := k.pressed[a]
	return !t.IsZero() && now.Sub(t) < holdWindow
}

// Input drains the state into one tick of intent. Mouse motion is consumed.
func (k *Keys) Input(now time.Time, elapsed time.Duration) engine.Input {
	in := engine.Input{
		Quit:        k.quit,
		Forward:     k.held(actForward, now),
		Backward:    k.held(actBackward, now),
		RotateLeft:  k.held(actLeft, now),
		RotateRight: k.held(actRight, now),
		MouseDX:     k.mouseDX,
		Elapsed:     elapsed,
	}
	k.mouseDX = 0
	return in
}
