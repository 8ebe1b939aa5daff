package assembler

import "fmt"

// State is a step of the generation state machine.
type State string

const (
	StateInitializing State = "Initializing"
	StateNormalizing  State = "Normalizing"
	StateAllocating   State = "Allocating"
	StateBuilding     State = "Building"
	StateLinking      State = "Linking"
	StateDone         State = "Done"
	StateFailed       State = "Failed"
)

// next lists the single forward transition of each non-terminal state.
var next = map[State]State{
	StateInitializing: StateNormalizing,
	StateNormalizing:  StateAllocating,
	StateAllocating:   StateBuilding,
	StateBuilding:     StateLinking,
	StateLinking:      StateDone,
}

// CanTransition reports whether the machine may move from s to to.
// Failed is reachable from every non-terminal state.
func (s State) CanTransition(to State) bool {
	if s.Terminal() {
		return false
	}
	return to == StateFailed || next[s] == to
}

// Terminal reports whether no transition leaves s.
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}

// machine tracks the current state and the states visited so far.
type machine struct {
	current State
	trace   []State
}

func newMachine() *machine {
	return &machine{current: StateInitializing, trace: []State{StateInitializing}}
}

func (m *machine) transition(to State) error {
	if !m.current.CanTransition(to) {
		return fmt.Errorf("invalid transition from %s to %s", m.current, to)
	}
	m.current = to
	m.trace = append(m.trace, to)
	return nil
}

// PhaseError is returned when a phase fails. State is the state the machine
// was in when the failure happened.
type PhaseError struct {
	State State
	Err   error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("%s phase failed: %v", e.State, e.Err)
}

func (e *PhaseError) Unwrap() error {
	return e.Err
}
