package pipeline

// State represents the pipeline lifecycle state. Exactly one value is
// active per coordinator at any time; transitions happen only through
// the coordinator.
type State string

const (
	StateStopped  State = "stopped"
	StateStarting State = "starting"
	StateRunning  State = "running"
	StateStopping State = "stopping"
	StateError    State = "error"
)

// String returns the state name.
func (s State) String() string {
	return string(s)
}
