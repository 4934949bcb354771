package procrun

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/specialistvlad/buildgridgo/internal/ctxlog"
)

// Runner starts a command and blocks until it exits.
type Runner interface {
	Run(ctx context.Context, cmd Command) Result
}

// Exec is the os/exec backed Runner.
type Exec struct {
	Stdout io.Writer
	Stderr io.Writer
}

// New returns an Exec that forwards child output to the process' own streams.
func New() *Exec {
	return &Exec{Stdout: os.Stdout, Stderr: os.Stderr}
}

// Run starts cmd immediately and waits for it to finish. The context is only
// used for logging: a started command is never killed, timed out or retried.
func (e *Exec) Run(ctx context.Context, cmd Command) Result {
	logger := ctxlog.FromContext(ctx).With("command", cmd.String())

	name, args := cmd.Name, cmd.Args
	if cmd.Shell {
		name, args = shellInvocation(cmd)
	}

	child := exec.Command(name, args...)
	child.Dir = cmd.Dir
	child.Stdout = e.Stdout
	child.Stderr = e.Stderr
	if len(cmd.Env) > 0 {
		child.Env = append(os.Environ(), cmd.Env...)
	}

	logger.Debug("Starting external command.", "shell", cmd.Shell, "dir", cmd.Dir)
	started := time.Now()
	err := child.Run()
	elapsed := time.Since(started)

	if err == nil {
		logger.Debug("External command succeeded.", "duration", elapsed)
		return Succeeded(cmd)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		logger.Debug("External command failed.", "exit_code", code, "duration", elapsed)
		return Failed(cmd, code)
	}

	logger.Error("External command could not be started.", "error", err)
	return Result{Command: cmd, ExitCode: -1, cause: err}
}
