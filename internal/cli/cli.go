package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/buildgridgo/internal/app"
	"github.com/specialistvlad/buildgridgo/internal/procrun"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("buildgridgo", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
BuildGridGo - Build orchestrator for TypeScript projects.

Usage:
  buildgridgo [options] [TASK...]

Arguments:
  TASK
    Name of a task to run. Defaults to the build file's default task.
    Built-in tasks: schema, compile-library, compile-app, bundle-library,
    bundle-app, docs, library, app, all, default.

Options:
`)
		flagSet.PrintDefaults()
	}

	dirFlag := flagSet.String("C", ".", "Project directory.")
	fileFlag := flagSet.String("f", "", "Build file or directory of .hcl files. Defaults to <dir>/build.hcl.")
	jobsFlag := flagSet.Int("j", 1, "Number of independent tasks to run at once.")
	noDepsFlag := flagSet.Bool("no-deps", false, "Run only the named tasks, without their predecessors.")
	listFlag := flagSet.Bool("list", false, "List all tasks and exit.")
	reportFlag := flagSet.String("report", "", "Write a YAML run report to this file.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	if *jobsFlag < 1 {
		return nil, false, &ExitError{Code: 2, Message: "invalid j: must be at least 1"}
	}

	config, err := app.NewConfig(app.Config{
		ProjectDir: *dirFlag,
		BuildFile:  *fileFlag,
		Targets:    flagSet.Args(),
		NoDeps:     *noDepsFlag,
		Jobs:       *jobsFlag,
		List:       *listFlag,
		ReportPath: *reportFlag,
		LogFormat:  logFormat,
		LogLevel:   logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

// ExitCode maps an error returned by the application to a process exit code.
// A failed tool's own exit code is passed through when it has one.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	var procErr *procrun.ExitError
	if errors.As(err, &procErr) && procErr.Code > 0 {
		return procErr.Code
	}
	return 1
}
