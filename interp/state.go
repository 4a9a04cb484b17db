package interp

// State is the run-state machine of spec.md §4.3.3.
type State int

const (
	StateReady State = iota
	StateRunning
	StatePaused
	StateStopped
	StateError
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "READY"
	case StateRunning:
		return "RUNNING"
	case StatePaused:
		return "PAUSED"
	case StateStopped:
		return "STOPPED"
	case StateError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// State returns the interpreter's current run state. Safe to call from
// the host's own goroutine while a run is in progress (spec.md §5,
// "shared resources").
func (in *Interpreter) State() State {
	in.stateMu.Lock()
	defer in.stateMu.Unlock()
	return in.state
}

func (in *Interpreter) setState(s State) {
	in.stateMu.Lock()
	in.state = s
	in.stateMu.Unlock()
}

// Pause requests a transition from RUNNING to PAUSED, observed by the
// driver loop at the next statement boundary.
func (in *Interpreter) Pause() {
	in.stateMu.Lock()
	if in.state == StateRunning {
		in.state = StatePaused
	}
	in.stateMu.Unlock()
}

// Resume transitions PAUSED back to RUNNING.
func (in *Interpreter) Resume() {
	in.stateMu.Lock()
	if in.state == StatePaused {
		in.state = StateRunning
	}
	in.stateMu.Unlock()
}

// Stop requests cancellation: the driver loop exits after the current
// statement finishes (spec.md §5, "cancellation").
func (in *Interpreter) Stop() {
	in.stateMu.Lock()
	in.state = StateStopped
	in.stateMu.Unlock()
}
