package engine

// State is the lifecycle state of an Engine.
type State int32

const (
	// StateUninitialized is the state of a new engine.
	StateUninitialized State = iota
	// StateStopped means initialized but not processing.
	StateStopped
	// StateRunning means blocks are processed.
	StateRunning
	// StateReleased is terminal.
	StateReleased
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateStopped:
		return "stopped"
	case StateRunning:
		return "running"
	case StateReleased:
		return "released"
	default:
		return "unknown"
	}
}
