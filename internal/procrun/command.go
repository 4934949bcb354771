package procrun

import "strings"

// Command describes a single invocation of an external tool.
type Command struct {
	// Name is the executable, resolved through PATH (or by the shell in shell mode).
	Name string
	// Args are passed to the executable in order.
	Args []string
	// Shell wraps the invocation in the platform shell.
	Shell bool
	// Dir is the working directory. Empty means the current directory.
	Dir string
	// Env holds extra KEY=VALUE pairs appended to the parent environment.
	Env []string
}

// String renders the command line roughly as a user would type it.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, c.Name)
	for _, a := range c.Args {
		parts = append(parts, quote(a))
	}
	return strings.Join(parts, " ")
}

// Result is the outcome of one Command.
type Result struct {
	Command  Command
	ExitCode int
	// cause is set when the process could not be started or waited on.
	cause error
}

// OK reports whether the command exited with status zero.
func (r Result) OK() bool {
	return r.ExitCode == 0 && r.cause == nil
}

// Err returns nil on success and an *ExitError otherwise.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	return &ExitError{Command: r.Command.String(), Code: r.ExitCode, Cause: r.cause}
}

// Succeeded builds a successful Result. It is mostly useful for fakes.
func Succeeded(cmd Command) Result {
	return Result{Command: cmd}
}

// Failed builds a failed Result with the given exit code.
func Failed(cmd Command, code int) Result {
	return Result{Command: cmd, ExitCode: code}
}
