package dag

import (
	"context"
	"sync"
	"time"
)

// Action is the work a step performs.
type Action func(ctx context.Context) error

// Step describes a node to add to the graph.
type Step struct {
	// Name is the unique identifier used on the command line.
	Name string
	// Description is shown when tasks are listed.
	Description string
	// Action is nil for aggregate steps.
	Action Action
}

// Graph is a collection of steps and their dependencies, representing a DAG.
// All operations on the graph are concurrency-safe.
type Graph struct {
	// mutex protects the nodes map during concurrent access.
	mutex sync.RWMutex
	// nodes stores all nodes in the graph, keyed by their unique ID.
	nodes map[string]*node
	// order records insertion order so plans and listings are deterministic.
	order []string
}

// node is a single vertex in the graph. It is un-exported so callers go
// through the Graph API using string IDs.
type node struct {
	id          string
	description string
	action      Action
	// deps are the predecessors of this node, in the order the edges were added.
	deps []*node
	// dependents are the successors of this node, in the order the edges were added.
	dependents []*node
}

// StepInfo is a read-only view of a step, used for listings.
type StepInfo struct {
	Name         string
	Description  string
	Dependencies []string
	Aggregate    bool
}

// Status is the execution state of a step within one run.
type Status int

const (
	// Pending indicates the step has not been started.
	Pending Status = iota
	// Running indicates the step's action is executing.
	Running
	// Done indicates the step completed successfully.
	Done
	// Failed indicates the step's action returned an error.
	Failed
	// Skipped indicates the step never ran because an earlier step failed.
	Skipped
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Running:
		return "running"
	case Done:
		return "done"
	case Failed:
		return "failed"
	case Skipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Outcome records what happened to one planned step.
type Outcome struct {
	Step     string
	Status   Status
	Started  time.Time
	Duration time.Duration
	Err      error
}

// Result summarises a run.
type Result struct {
	// Outcomes holds one entry per planned step, in plan order.
	Outcomes []Outcome
	// Started lists the steps in the order they were started.
	Started []string
}

// Outcome returns the outcome recorded for step.
func (r *Result) Outcome(step string) (Outcome, bool) {
	for _, o := range r.Outcomes {
		if o.Step == step {
			return o, true
		}
	}
	return Outcome{}, false
}
