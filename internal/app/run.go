package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/specialistvlad/buildgridgo/internal/ctxlog"
	"github.com/specialistvlad/buildgridgo/internal/dag"
	"github.com/specialistvlad/buildgridgo/internal/report"
	"github.com/specialistvlad/buildgridgo/internal/tasks"
)

// Run executes the requested targets, or lists the tasks when the config asks for it.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.List {
		return a.list()
	}

	targets := a.config.Targets
	if len(targets) == 0 {
		targets = []string{tasks.Default}
	}

	started := time.Now()
	res, err := a.execute(ctx, targets)
	if a.config.ReportPath != "" {
		rep := report.New(targets, started, time.Since(started), res, err)
		if werr := rep.WriteFile(a.config.ReportPath); werr != nil {
			a.logger.Error("Failed to write run report.", "path", a.config.ReportPath, "error", werr)
		} else {
			a.logger.Debug("Run report written.", "path", a.config.ReportPath)
		}
	}
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

func (a *App) execute(ctx context.Context, targets []string) (*dag.Result, error) {
	var (
		plan []string
		err  error
	)
	if a.config.NoDeps {
		plan, err = a.graph.PlanOnly(targets...)
	} else {
		plan, err = a.graph.Plan(targets...)
	}
	if err != nil {
		return nil, err
	}

	a.logger.Info("🚀 Starting build...", "targets", targets, "plan", plan, "jobs", a.config.Jobs)
	start := time.Now()
	res, err := dag.NewExecutor(a.graph, a.config.Jobs).Run(ctx, plan)
	if err != nil {
		a.logger.Error("Build stopped.", "error", err, "duration", time.Since(start).Round(time.Millisecond))
		return res, err
	}
	a.logger.Info("🏁 Build finished.", "duration", time.Since(start).Round(time.Millisecond))
	return res, nil
}

// list prints every task with its predecessors and description.
func (a *App) list() error {
	table := tablewriter.NewWriter(a.outW)
	table.SetHeader([]string{"TASK", "KIND", "DEPENDS ON", "DESCRIPTION"})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	table.SetHeaderLine(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)

	for _, step := range a.graph.Steps() {
		kind := "action"
		if step.Aggregate {
			kind = "aggregate"
		}
		deps := "-"
		if len(step.Dependencies) > 0 {
			deps = strings.Join(step.Dependencies, ", ")
		}
		table.Append([]string{step.Name, kind, deps, step.Description})
	}
	table.Render()
	return nil
}
