// Package report renders the outcome of a run as a YAML document.
package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/specialistvlad/buildgridgo/internal/dag"
	"github.com/specialistvlad/buildgridgo/internal/procrun"
	"gopkg.in/yaml.v3"
)

// Report is the document written after a run.
type Report struct {
	Targets  []string `yaml:"targets"`
	Status   string   `yaml:"status"`
	Started  string   `yaml:"started"`
	Duration string   `yaml:"duration"`
	Error    string   `yaml:"error,omitempty"`
	Tasks    []Task   `yaml:"tasks"`
}

// Task is the report entry for one planned task.
type Task struct {
	Name     string `yaml:"name"`
	Status   string `yaml:"status"`
	Duration string `yaml:"duration,omitempty"`
	ExitCode *int   `yaml:"exit_code,omitempty"`
	Error    string `yaml:"error,omitempty"`
}

// New builds a report from an executor result. res may be nil when the run
// failed before any task started.
func New(targets []string, started time.Time, elapsed time.Duration, res *dag.Result, runErr error) *Report {
	r := &Report{
		Targets:  targets,
		Status:   "succeeded",
		Started:  started.UTC().Format(time.RFC3339),
		Duration: elapsed.Round(time.Millisecond).String(),
		Tasks:    []Task{},
	}
	if runErr != nil {
		r.Status = "failed"
		r.Error = runErr.Error()
	}
	if res == nil {
		return r
	}

	for _, o := range res.Outcomes {
		t := Task{Name: o.Step, Status: o.Status.String()}
		if o.Status == dag.Done || o.Status == dag.Failed {
			t.Duration = o.Duration.Round(time.Millisecond).String()
		}
		if o.Err != nil {
			t.Error = o.Err.Error()
			var exitErr *procrun.ExitError
			if errors.As(o.Err, &exitErr) {
				code := exitErr.Code
				t.ExitCode = &code
			}
		}
		r.Tasks = append(r.Tasks, t)
	}
	return r
}

// Marshal encodes the report as YAML.
func (r *Report) Marshal() ([]byte, error) {
	return yaml.Marshal(r)
}

// WriteFile writes the report to path, creating parent directories.
func (r *Report) WriteFile(path string) error {
	data, err := r.Marshal()
	if err != nil {
		return fmt.Errorf("encoding run report: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing run report: %w", err)
	}
	return nil
}
