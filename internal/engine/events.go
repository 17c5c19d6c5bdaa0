package engine

type EventType int

const (
	EventCaptured EventType = iota
	EventQuit
	EventTrackChanged
)

func (t EventType) String() string {
	switch t {
	case EventCaptured:
		return "captured"
	case EventQuit:
		return "quit"
	case EventTrackChanged:
		return "track_changed"
	default:
		return "unknown"
	}
}

type Event struct {
	Type     EventType
	Track    Track   // the new track for EventTrackChanged
	Distance float64 // entity distance when the event fired
	Frame    int
}

type EventHandler func(Event)

type EventBus struct {
	handlers map[EventType][]EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(t EventType, fn EventHandler) {
	eb.handlers[t] = append(eb.handlers[t], fn)
}

func (eb *EventBus) Emit(e Event) {
	if eb == nil {
		return
	}
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
}
