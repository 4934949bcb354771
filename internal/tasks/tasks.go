// Package tasks declares the build's static task graph: the built-in steps,
// their predecessors, and any custom tasks from the build file.
package tasks

import (
	"context"
	"fmt"

	"github.com/specialistvlad/buildgridgo/internal/buildfile"
	"github.com/specialistvlad/buildgridgo/internal/dag"
	"github.com/specialistvlad/buildgridgo/internal/pipeline"
)

// Names of the built-in tasks.
const (
	Schema         = "schema"
	CompileLibrary = "compile-library"
	CompileApp     = "compile-app"
	BundleLibrary  = "bundle-library"
	BundleApp      = "bundle-app"
	Docs           = "docs"
	Library        = "library"
	App            = "app"
	All            = "all"
	Default        = "default"
)

// Actions is the set of operations the built-in tasks call into.
// *pipeline.Pipeline implements it.
type Actions interface {
	Compile(ctx context.Context, flavour pipeline.Flavour) error
	Bundle(ctx context.Context) error
	Schema(ctx context.Context) error
	Docs(ctx context.Context) error
	Task(ctx context.Context, task *buildfile.Task) error
}

// edge is a declared predecessor relationship: To runs after From.
type edge struct{ From, To string }

// Build constructs the task graph. The default task depends on the build
// file's default_task, which may name a built-in or a custom task.
func Build(cfg *buildfile.File, actions Actions) (*dag.Graph, error) {
	g := dag.New()

	builtins := []dag.Step{
		{Name: Schema, Description: "Compile schema files into generated code and type declarations", Action: actions.Schema},
		{Name: CompileLibrary, Description: "Type-check and transpile sources as a redistributable library", Action: func(ctx context.Context) error {
			return actions.Compile(ctx, pipeline.Library)
		}},
		{Name: CompileApp, Description: "Type-check and transpile sources as a deployable program", Action: func(ctx context.Context) error {
			return actions.Compile(ctx, pipeline.App)
		}},
		{Name: BundleLibrary, Description: "Bundle the library build for the target runtime", Action: actions.Bundle},
		{Name: BundleApp, Description: "Bundle the program build for the target runtime", Action: actions.Bundle},
		{Name: Docs, Description: "Generate documentation from source comments", Action: actions.Docs},
		{Name: Library, Description: "Build the library: compile-library, then bundle-library"},
		{Name: App, Description: "Build the program: compile-app, then bundle-app"},
		{Name: All, Description: "Schema, library and docs"},
	}
	for _, step := range builtins {
		if err := g.AddNode(step); err != nil {
			return nil, err
		}
	}

	edges := []edge{
		{CompileLibrary, BundleLibrary},
		{CompileApp, BundleApp},
		{BundleLibrary, Library},
		{BundleApp, App},
		{Schema, All},
		{Library, All},
		{Docs, All},
	}
	for _, e := range edges {
		if err := g.AddEdge(e.From, e.To); err != nil {
			return nil, err
		}
	}

	if err := addCustomTasks(g, cfg.Tasks, actions); err != nil {
		return nil, err
	}

	target := cfg.Project.DefaultTask
	if target == Default {
		return nil, fmt.Errorf("default_task cannot be %q", Default)
	}
	if err := g.AddNode(dag.Step{Name: Default, Description: fmt.Sprintf("Alias for %s", target)}); err != nil {
		return nil, err
	}
	if err := g.AddEdge(target, Default); err != nil {
		return nil, fmt.Errorf("default_task %q: %w", target, err)
	}

	if err := g.DetectCycles(); err != nil {
		return nil, err
	}
	return g, nil
}

func addCustomTasks(g *dag.Graph, custom []*buildfile.Task, actions Actions) error {
	for _, task := range custom {
		task := task
		if g.Has(task.Name) || task.Name == Default {
			return fmt.Errorf("task %q conflicts with an existing task", task.Name)
		}
		description := task.Description
		if description == "" {
			description = "Run " + task.Command
		}
		if err := g.AddNode(dag.Step{
			Name:        task.Name,
			Description: description,
			Action: func(ctx context.Context) error {
				return actions.Task(ctx, task)
			},
		}); err != nil {
			return err
		}
	}

	for _, task := range custom {
		for _, dep := range task.DependsOn {
			if err := g.AddEdge(dep, task.Name); err != nil {
				return fmt.Errorf("task %q depends_on %q: %w", task.Name, dep, err)
			}
		}
	}
	return nil
}
