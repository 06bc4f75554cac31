package types

// Application states. The capture coordinator moves through these states
// during a session's lifecycle. Transitions are triggered by assignment on
// the model; side effects belong to the model, not to the state value.
const (
	StateNotSet               ApplicationState = "not_set"
	StateReady                ApplicationState = "ready"
	StateCapturing            ApplicationState = "capturing"
	StatePrepareToReconstruct ApplicationState = "prepare_to_reconstruct"
	StateReconstructing       ApplicationState = "reconstructing"
	StateViewing              ApplicationState = "viewing"
	StateCompleted            ApplicationState = "completed"
	StateRestart              ApplicationState = "restart"
	StateFailed               ApplicationState = "failed"
)

// ApplicationState is the coordinator's discrete state. Exactly one value
// holds at a time.
type ApplicationState string

// validApplicationStates is the set of recognized state values.
var validApplicationStates = map[ApplicationState]bool{
	StateNotSet:               true,
	StateReady:                true,
	StateCapturing:            true,
	StatePrepareToReconstruct: true,
	StateReconstructing:       true,
	StateViewing:              true,
	StateCompleted:            true,
	StateRestart:              true,
	StateFailed:               true,
}

// Valid reports whether s is a recognized application state.
func (s ApplicationState) Valid() bool {
	return validApplicationStates[s]
}

func (s ApplicationState) String() string {
	return string(s)
}
