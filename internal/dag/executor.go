package dag

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/specialistvlad/buildgridgo/internal/ctxlog"
	"golang.org/x/sync/errgroup"
)

// Executor runs a plan produced by Graph.Plan or Graph.PlanOnly.
type Executor struct {
	Graph *Graph
	// Jobs bounds how many independent steps may run at once. Values below
	// one are treated as one, which runs the plan strictly in order.
	Jobs int
}

// NewExecutor creates an executor for g.
func NewExecutor(g *Graph, jobs int) *Executor {
	return &Executor{Graph: g, Jobs: jobs}
}

// completion is sent by a step's goroutine when its action returns.
type completion struct {
	index    int
	err      error
	duration time.Duration
}

// Run executes plan in dependency order. Only dependencies that are part of
// the plan are waited for. The first failure stops any further step from
// starting; it is returned as a *StepError once running steps have finished.
func (e *Executor) Run(ctx context.Context, plan []string) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	jobs := max(e.Jobs, 1)

	nodes, index, err := e.resolve(plan)
	if err != nil {
		return nil, err
	}

	// pending counts each step's unmet in-plan dependencies.
	pending := make([]int, len(nodes))
	var ready []int
	for i, n := range nodes {
		for _, dep := range n.deps {
			if _, ok := index[dep.id]; ok {
				pending[i]++
			}
		}
		if pending[i] == 0 {
			ready = append(ready, i)
		}
	}

	result := &Result{Outcomes: make([]Outcome, len(nodes))}
	for i, n := range nodes {
		result.Outcomes[i] = Outcome{Step: n.id, Status: Pending}
	}

	logger.Debug("Executor starting run.", "steps", len(nodes), "jobs", jobs)

	done := make(chan completion, len(nodes))
	// The loop below bounds concurrency with running < jobs so that no step is
	// launched after a failure has been observed; group only launches and joins.
	var group errgroup.Group

	running := 0
	var firstErr error
	for {
		for firstErr == nil && len(ready) > 0 && running < jobs {
			sort.Ints(ready)
			i := ready[0]
			ready = ready[1:]

			n := nodes[i]
			result.Outcomes[i].Status = Running
			result.Outcomes[i].Started = time.Now()
			result.Started = append(result.Started, n.id)
			running++

			group.Go(func() error {
				started := time.Now()
				err := e.runStep(ctx, n)
				done <- completion{index: i, err: err, duration: time.Since(started)}
				return nil
			})
		}

		if running == 0 {
			break
		}

		c := <-done
		running--
		outcome := &result.Outcomes[c.index]
		outcome.Duration = c.duration

		if c.err != nil {
			outcome.Status = Failed
			outcome.Err = c.err
			if firstErr == nil {
				firstErr = &StepError{Step: outcome.Step, Err: c.err}
			}
			continue
		}

		outcome.Status = Done
		for _, dependent := range nodes[c.index].dependents {
			j, ok := index[dependent.id]
			if !ok {
				continue
			}
			pending[j]--
			if pending[j] == 0 {
				logger.Debug("Unlocking dependent step.", "step", dependent.id, "dependency", outcome.Step)
				ready = append(ready, j)
			}
		}
	}
	_ = group.Wait()

	for i := range result.Outcomes {
		if result.Outcomes[i].Status == Pending {
			logger.Warn("Skipping task due to earlier failure.", "task", result.Outcomes[i].Step)
			result.Outcomes[i].Status = Skipped
		}
	}

	return result, firstErr
}

// resolve maps plan entries to nodes and records each entry's plan position.
func (e *Executor) resolve(plan []string) ([]*node, map[string]int, error) {
	e.Graph.mutex.RLock()
	defer e.Graph.mutex.RUnlock()

	nodes := make([]*node, 0, len(plan))
	index := make(map[string]int, len(plan))
	for _, id := range plan {
		n, ok := e.Graph.nodes[id]
		if !ok {
			return nil, nil, fmt.Errorf("%w: %s", ErrUnknownTask, id)
		}
		if _, dup := index[id]; dup {
			return nil, nil, fmt.Errorf("task %s planned more than once", id)
		}
		index[id] = len(nodes)
		nodes = append(nodes, n)
	}
	return nodes, index, nil
}

// runStep executes one node's action with a step-scoped logger.
func (e *Executor) runStep(ctx context.Context, n *node) error {
	ctx, logger := ctxlog.With(ctx, "task", n.id)

	if n.action == nil {
		logger.Debug("Aggregate task complete.")
		return nil
	}

	logger.Info("▶️ Starting task")
	started := time.Now()
	if err := n.action(ctx); err != nil {
		logger.Error("Task failed.", "error", err, "duration", time.Since(started))
		return err
	}
	logger.Info("✅ Finished task", "duration", time.Since(started))
	return nil
}
