package assembler

import (
	"fmt"
	"time"
)

// RunPhases executes the phases sequentially, moving the state machine
// through each phase's state. On failure the machine moves to Failed and the
// error is returned as a PhaseError.
func RunPhases(ctx *Context, phases []Phase) ([]State, error) {
	m := newMachine()
	for i, phase := range phases {
		state := phase.State()
		label := fmt.Sprintf("%s (%d/%d)", state, i+1, len(phases))
		if err := m.transition(state); err != nil {
			return fail(m, err, state)
		}

		start := time.Now()
		logPhaseStart(ctx.Observer, state, label)
		if err := phase.Run(ctx); err != nil {
			logPhaseFailed(ctx.Observer, state, label, err)
			return fail(m, err, state)
		}
		elapsed := time.Since(start)
		recordPhaseMetric(state, elapsed.Seconds())
		logPhaseComplete(ctx.Observer, state, label, elapsed)
	}
	if err := m.transition(StateDone); err != nil {
		return fail(m, err, m.current)
	}
	return m.trace, nil
}

func fail(m *machine, err error, at State) ([]State, error) {
	_ = m.transition(StateFailed)
	return m.trace, &PhaseError{State: at, Err: err}
}
