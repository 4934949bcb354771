package dag

import (
	"fmt"
)

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*node),
	}
}

// AddNode adds a step to the graph. Step names must be unique.
func (g *Graph) AddNode(step Step) error {
	if step.Name == "" {
		return fmt.Errorf("step name must not be empty")
	}

	g.mutex.Lock()
	defer g.mutex.Unlock()

	if _, ok := g.nodes[step.Name]; ok {
		return fmt.Errorf("node already exists: %s", step.Name)
	}

	g.nodes[step.Name] = &node{
		id:          step.Name,
		description: step.Description,
		action:      step.Action,
	}
	g.order = append(g.order, step.Name)
	return nil
}

// AddEdge creates a directed edge from the `fromID` node to the `toID` node.
// This signifies that `toID` has a dependency on `fromID`. An error is returned
// if either node does not exist or if the edge would create a self-reference.
// Adding the same edge twice is a no-op.
func (g *Graph) AddEdge(fromID, toID string) error {
	if fromID == toID {
		return fmt.Errorf("self-referential edge not allowed: %s -> %s", fromID, fromID)
	}

	g.mutex.Lock()
	defer g.mutex.Unlock()

	fromNode, ok := g.nodes[fromID]
	if !ok {
		return fmt.Errorf("source node not found: %s", fromID)
	}

	toNode, ok := g.nodes[toID]
	if !ok {
		return fmt.Errorf("destination node not found: %s", toID)
	}

	for _, dep := range toNode.deps {
		if dep == fromNode {
			return nil
		}
	}

	toNode.deps = append(toNode.deps, fromNode)
	fromNode.dependents = append(fromNode.dependents, toNode)

	return nil
}

// Has reports whether a step with the given ID exists.
func (g *Graph) Has(id string) bool {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	_, ok := g.nodes[id]
	return ok
}

// Dependencies returns the IDs of the nodes that the given node depends on.
func (g *Graph) Dependencies(id string) ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}
	return ids(n.deps), nil
}

// Dependents returns the IDs of the nodes that depend on the given node.
func (g *Graph) Dependents(id string) ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}
	return ids(n.dependents), nil
}

// Steps lists every step in insertion order.
func (g *Graph) Steps() []StepInfo {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	steps := make([]StepInfo, 0, len(g.order))
	for _, id := range g.order {
		n := g.nodes[id]
		steps = append(steps, StepInfo{
			Name:         n.id,
			Description:  n.description,
			Dependencies: ids(n.deps),
			Aggregate:    n.action == nil,
		})
	}
	return steps
}

// DetectCycles checks the graph for any cycles. It returns a non-nil error
// if a cycle is found, indicating the first node involved in the detected cycle.
func (g *Graph) DetectCycles() error {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	// permanent: nodes fully visited and known not to be on a cycle.
	// temporary: nodes on the current recursion stack.
	permanent := make(map[string]bool)
	temporary := make(map[string]bool)

	var visit func(n *node) error
	visit = func(n *node) error {
		if permanent[n.id] {
			return nil
		}
		if temporary[n.id] {
			return fmt.Errorf("%w involving node '%s'", ErrCycle, n.id)
		}

		temporary[n.id] = true
		for _, dependent := range n.dependents {
			if err := visit(dependent); err != nil {
				return err
			}
		}
		delete(temporary, n.id)
		permanent[n.id] = true

		return nil
	}

	for _, id := range g.order {
		if err := visit(g.nodes[id]); err != nil {
			return err
		}
	}

	return nil
}

// Plan returns the targets together with all of their transitive
// predecessors, ordered so every step comes after its dependencies. Ties are
// broken by the order dependencies were declared, then by target order.
func (g *Graph) Plan(targets ...string) ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	const (
		unvisited = iota
		visiting
		visited
	)
	state := make(map[string]int)
	var plan []string

	var visit func(n *node) error
	visit = func(n *node) error {
		switch state[n.id] {
		case visited:
			return nil
		case visiting:
			return fmt.Errorf("%w involving node '%s'", ErrCycle, n.id)
		}

		state[n.id] = visiting
		for _, dep := range n.deps {
			if err := visit(dep); err != nil {
				return err
			}
		}
		state[n.id] = visited
		plan = append(plan, n.id)
		return nil
	}

	for _, target := range targets {
		n, ok := g.nodes[target]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownTask, target)
		}
		if err := visit(n); err != nil {
			return nil, err
		}
	}
	return plan, nil
}

// PlanOnly validates the targets and returns them de-duplicated, without
// pulling in their predecessors.
func (g *Graph) PlanOnly(targets ...string) ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	seen := make(map[string]bool, len(targets))
	plan := make([]string, 0, len(targets))
	for _, target := range targets {
		if _, ok := g.nodes[target]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownTask, target)
		}
		if seen[target] {
			continue
		}
		seen[target] = true
		plan = append(plan, target)
	}
	return plan, nil
}

func ids(nodes []*node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.id)
	}
	return out
}
