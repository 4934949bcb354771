package procrun

import "fmt"

// ExitError reports a command that did not exit with status zero.
type ExitError struct {
	Command string
	// Code is the child's exit status, or -1 when it never ran or was killed by a signal.
	Code int
	// Cause holds the start or wait error, if any.
	Cause error
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("command %q failed: %v", e.Command, e.Cause)
	}
	return fmt.Sprintf("command %q exited with code %d", e.Command, e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.Cause
}
