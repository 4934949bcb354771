package testutil

import (
	"context"
	"sync"

	"github.com/specialistvlad/buildgridgo/internal/procrun"
)

// Recorder is a procrun.Runner that records every command instead of running it.
type Recorder struct {
	mu       sync.Mutex
	commands []procrun.Command
	// exitCodes maps an executable name to the exit code it should report.
	exitCodes map[string]int
	// OnRun, when set, is invoked for every command before the result is built.
	OnRun func(cmd procrun.Command)
}

// NewRecorder returns a Recorder where every command succeeds.
func NewRecorder() *Recorder {
	return &Recorder{exitCodes: make(map[string]int)}
}

// FailWith makes every future invocation of name report code.
func (r *Recorder) FailWith(name string, code int) *Recorder {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.exitCodes[name] = code
	return r
}

// Run implements procrun.Runner.
func (r *Recorder) Run(_ context.Context, cmd procrun.Command) procrun.Result {
	r.mu.Lock()
	r.commands = append(r.commands, cmd)
	code := r.exitCodes[cmd.Name]
	hook := r.OnRun
	r.mu.Unlock()

	if hook != nil {
		hook(cmd)
	}
	if code != 0 {
		return procrun.Failed(cmd, code)
	}
	return procrun.Succeeded(cmd)
}

// Commands returns a copy of the recorded commands in invocation order.
func (r *Recorder) Commands() []procrun.Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]procrun.Command, len(r.commands))
	copy(out, r.commands)
	return out
}

// Names returns the executable names in invocation order.
func (r *Recorder) Names() []string {
	var names []string
	for _, c := range r.Commands() {
		names = append(names, c.Name)
	}
	return names
}
