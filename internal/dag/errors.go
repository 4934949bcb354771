package dag

import (
	"errors"
	"fmt"
)

var (
	// ErrCycle is returned when the graph contains a dependency cycle.
	ErrCycle = errors.New("cycle detected")
	// ErrUnknownTask is returned when a plan names a step that is not in the graph.
	ErrUnknownTask = errors.New("unknown task")
)

// StepError wraps the failure of a single step.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("task '%s' failed: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
