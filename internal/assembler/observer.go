package assembler

import (
	"fmt"
	"time"

	"github.com/go-logr/logr"
)

// Observer receives structured events while a graph is assembled.
type Observer interface {
	Event(event Event)
}

// Event is one structured assembly event. Events never carry payloads, so
// secret material cannot reach an observer.
type Event struct {
	Type     EventType
	Phase    State
	Resource string
	Kind     string
	Message  string
	Err      error
}

// EventType classifies events.
type EventType string

const (
	// EventPhaseStarted indicates a phase has started.
	EventPhaseStarted EventType = "phase.started"
	// EventPhaseCompleted indicates a phase completed successfully.
	EventPhaseCompleted EventType = "phase.completed"
	// EventPhaseFailed indicates a phase failed.
	EventPhaseFailed EventType = "phase.failed"
	// EventResourceBuilt indicates a descriptor was built.
	EventResourceBuilt EventType = "resource.built"
	// EventDeprecation reports a deprecated setting in the input.
	EventDeprecation EventType = "validation.warning"
)

// LogObserver writes events to a logr.Logger. Resource events are logged at V(1).
type LogObserver struct {
	log logr.Logger
}

// NewLogObserver creates an observer writing to log.
func NewLogObserver(log logr.Logger) *LogObserver {
	return &LogObserver{log: log}
}

// Event implements Observer.
func (o *LogObserver) Event(event Event) {
	kv := []any{"event", string(event.Type)}
	if event.Phase != "" {
		kv = append(kv, "phase", string(event.Phase))
	}
	if event.Resource != "" {
		kv = append(kv, "resource", event.Resource, "kind", event.Kind)
	}

	switch event.Type {
	case EventPhaseFailed:
		o.log.Error(event.Err, event.Message, kv...)
	case EventResourceBuilt:
		o.log.V(1).Info(event.Message, kv...)
	default:
		o.log.Info(event.Message, kv...)
	}
}

func logPhaseStart(o Observer, phase State, label string) {
	o.Event(Event{Type: EventPhaseStarted, Phase: phase, Message: fmt.Sprintf("[%s] starting", label)})
}

func logPhaseComplete(o Observer, phase State, label string, d time.Duration) {
	o.Event(Event{
		Type:    EventPhaseCompleted,
		Phase:   phase,
		Message: fmt.Sprintf("[%s] completed in %v", label, d.Round(time.Microsecond)),
	})
}

func logPhaseFailed(o Observer, phase State, label string, err error) {
	o.Event(Event{Type: EventPhaseFailed, Phase: phase, Message: fmt.Sprintf("[%s] failed", label), Err: err})
}
