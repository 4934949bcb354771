package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/buildgridgo/internal/buildfile"
	"github.com/specialistvlad/buildgridgo/internal/ctxlog"
	"github.com/specialistvlad/buildgridgo/internal/dag"
	"github.com/specialistvlad/buildgridgo/internal/pipeline"
	"github.com/specialistvlad/buildgridgo/internal/procrun"
	"github.com/specialistvlad/buildgridgo/internal/tasks"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	build  *buildfile.File
	graph  *dag.Graph
}

// NewApp is the constructor for the main application. Listings go to outW,
// logs to logW. Every external tool is started through runner.
func NewApp(outW, logW io.Writer, cfg *Config, runner procrun.Runner) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	build, err := buildfile.Load(ctx, cfg.BuildFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load build file: %w", err)
	}

	p := pipeline.New(cfg.ProjectDir, build, runner)
	graph, err := tasks.Build(build, p)
	if err != nil {
		return nil, fmt.Errorf("failed to build task graph: %w", err)
	}
	logger.Debug("Task graph built.", "tasks", len(graph.Steps()), "default_task", build.Project.DefaultTask)

	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		build:  build,
		graph:  graph,
	}, nil
}

// Graph returns the application's task graph. This is primarily for testing.
func (a *App) Graph() *dag.Graph {
	return a.graph
}
