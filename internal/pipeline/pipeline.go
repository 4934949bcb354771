package pipeline

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/specialistvlad/buildgridgo/internal/buildfile"
	"github.com/specialistvlad/buildgridgo/internal/procrun"
	"github.com/specialistvlad/buildgridgo/internal/tsconfig"
)

// Pipeline runs build actions for one project directory.
type Pipeline struct {
	dir    string
	cfg    *buildfile.File
	runner procrun.Runner
}

// New creates a Pipeline for the project rooted at dir.
func New(dir string, cfg *buildfile.File, runner procrun.Runner) *Pipeline {
	return &Pipeline{dir: dir, cfg: cfg, runner: runner}
}

// command builds an invocation of a configured tool inside the project dir.
func (p *Pipeline) command(name string, args ...string) procrun.Command {
	return procrun.Command{
		Name:  name,
		Args:  args,
		Shell: p.cfg.UseShell(nil),
		Dir:   p.dir,
		Env:   p.cfg.Environment(),
	}
}

func (p *Pipeline) run(ctx context.Context, cmd procrun.Command) error {
	return p.runner.Run(ctx, cmd).Err()
}

// compilerConfig reads the project's compiler configuration.
func (p *Pipeline) compilerConfig() (*tsconfig.Config, error) {
	cfg, err := tsconfig.Load(filepath.Join(p.dir, p.cfg.Project.TSConfig))
	if err != nil {
		return nil, fmt.Errorf("loading compiler configuration: %w", err)
	}
	return cfg, nil
}

// Task runs a user-defined task from the build file.
func (p *Pipeline) Task(ctx context.Context, task *buildfile.Task) error {
	cmd := p.command(task.Command, task.Args...)
	cmd.Shell = p.cfg.UseShell(task)
	if task.Dir != "" {
		cmd.Dir = filepath.Join(p.dir, task.Dir)
	}
	return p.run(ctx, cmd)
}
