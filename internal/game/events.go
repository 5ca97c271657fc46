package game

// EventType identifies a session event.
type EventType int

const (
	EventStarted EventType = iota
	EventCatch
	EventLevelUp
	EventStopped
)

// String returns the wire name of the event type.
func (t EventType) String() string {
	switch t {
	case EventStarted:
		return "started"
	case EventCatch:
		return "catch"
	case EventLevelUp:
		return "level_up"
	case EventStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Event is sent on Session.Events when something noteworthy happens.
type Event struct {
	Type  EventType
	Score int
	Level int
	Mouse Mouse // For catch events
	Pos   Point // Where the catch happened
}
