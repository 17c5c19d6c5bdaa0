package engine

import "time"

type GameState int

const (
	StateRunning  GameState = iota
	StateCaptured           // the entity reached the player
	StateQuit               // window closed, q pressed or context cancelled
)

func (s GameState) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateCaptured:
		return "captured"
	case StateQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Session drives one game: it feeds input to the world, moves the state
// machine and builds frames. Captured and Quit are terminal.
type Session struct {
	State   GameState
	World   *World
	Frames  int
	Elapsed time.Duration

	track Track
	bus   *EventBus
	opts  FrameOptions
}

func NewSession(w *World, bus *EventBus, opts FrameOptions) *Session {
	s := &Session{
		State: StateRunning,
		World: w,
		track: TrackNone,
		bus:   bus,
		opts:  opts,
	}
	if w.Captured() {
		s.capture()
	}
	return s
}

func (s *Session) Terminal() bool { return s.State != StateRunning }

// Track is the loop last signalled to subscribers.
func (s *Session) Track() Track { return s.track }

// Step advances one tick. It is a no-op once the session is terminal. The
// returned error is only ever a rejected rotation; the tick still counts.
func (s *Session) Step(in Input) error {
	if s.Terminal() {
		return nil
	}
	if in.Quit {
		s.Quit()
		return nil
	}
	if in.Elapsed > MaxFrameTime {
		in.Elapsed = MaxFrameTime
	}

	err := s.World.Update(in)
	s.Frames++
	s.Elapsed += in.Elapsed

	if t := s.World.Track(); t != s.track {
		s.track = t
		s.emit(EventTrackChanged)
	}
	if s.World.Captured() {
		s.capture()
	}
	return err
}

// Quit moves a running session to StateQuit.
func (s *Session) Quit() {
	if s.Terminal() {
		return
	}
	s.State = StateQuit
	s.emit(EventQuit)
}

func (s *Session) capture() {
	s.State = StateCaptured
	s.emit(EventCaptured)
}

func (s *Session) emit(t EventType) {
	s.bus.Emit(Event{
		Type:     t,
		Track:    s.track,
		Distance: s.World.Distance(),
		Frame:    s.Frames,
	})
}

// Render builds the frame for the current state at the given viewport size.
func (s *Session) Render(width, height int) (*Frame, error) {
	return BuildFrame(s.World, width, height, s.opts)
}
