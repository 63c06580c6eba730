package sim

import "errors"

// Domain errors for state transitions.
var (
	// ErrNotInitialized indicates Step was called before Initialize.
	ErrNotInitialized = errors.New("sim: state not initialized")

	// ErrFinished indicates Step was called after the iteration limit.
	ErrFinished = errors.New("sim: simulation already finished")
)
