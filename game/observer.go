package game

import "github.com/plus3/blockquiz/trivia"

// EventKind tells observers what happened.
type EventKind int

const (
	EventPlaced EventKind = iota
	EventRejected
	EventPhaseChanged
	EventCountdownTick
	EventAnswered
	EventSessionStarted
)

func (k EventKind) String() string {
	switch k {
	case EventPlaced:
		return "placed"
	case EventRejected:
		return "rejected"
	case EventPhaseChanged:
		return "phase-changed"
	case EventCountdownTick:
		return "countdown-tick"
	case EventAnswered:
		return "answered"
	case EventSessionStarted:
		return "session-started"
	default:
		return "unknown"
	}
}

// Event is delivered to the observer after the controller has applied a change.
// Only the fields relevant to Kind are set.
type Event struct {
	Kind      EventKind
	From, To  Phase
	Placement PlacementResult
	Err       error
	Outcome   trivia.Outcome
	Remaining int
}

// Observer receives controller events. It runs synchronously on the caller's
// goroutine and must not call back into the controller.
type Observer func(Event)

// Observers fans every event out to each non-nil observer in order.
func Observers(observers ...Observer) Observer {
	return func(e Event) {
		for _, o := range observers {
			if o != nil {
				o(e)
			}
		}
	}
}
