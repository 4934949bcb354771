package cli

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/buildgridgo/internal/app"
	"github.com/specialistvlad/buildgridgo/internal/dag"
	"github.com/specialistvlad/buildgridgo/internal/procrun"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name string
		args []string
		want app.Config
	}{
		{
			name: "defaults",
			args: nil,
			want: app.Config{
				ProjectDir: ".",
				BuildFile:  filepath.Join(".", "build.hcl"),
				Jobs:       1,
				LogFormat:  "text",
				LogLevel:   "info",
			},
		},
		{
			name: "all flags",
			args: []string{"-C", "web", "-f", "ci.hcl", "-j", "4", "-no-deps", "-report", "out.yaml", "-log-format", "JSON", "-log-level", "debug", "docs", "schema"},
			want: app.Config{
				ProjectDir: "web",
				BuildFile:  "ci.hcl",
				Targets:    []string{"docs", "schema"},
				NoDeps:     true,
				Jobs:       4,
				ReportPath: "out.yaml",
				LogFormat:  "json",
				LogLevel:   "debug",
			},
		},
		{
			name: "list",
			args: []string{"-list"},
			want: app.Config{
				ProjectDir: ".",
				BuildFile:  filepath.Join(".", "build.hcl"),
				Jobs:       1,
				List:       true,
				LogFormat:  "text",
				LogLevel:   "info",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, exit, err := Parse(tc.args, &bytes.Buffer{})
			require.NoError(t, err)
			assert.False(t, exit)
			if len(tc.want.Targets) == 0 {
				assert.Empty(t, cfg.Targets)
				cfg.Targets = nil
			}
			assert.Equal(t, tc.want, *cfg)
		})
	}
}

func TestParse_Help(t *testing.T) {
	out := &bytes.Buffer{}
	cfg, exit, err := Parse([]string{"-h"}, out)
	require.NoError(t, err)
	assert.True(t, exit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name string
		args []string
		msg  string
	}{
		{"unknown flag", []string{"-nope"}, "flag provided but not defined: -nope"},
		{"bad log format", []string{"-log-format", "xml"}, "invalid log-format"},
		{"bad log level", []string{"-log-level", "trace"}, "invalid log-level"},
		{"bad jobs", []string{"-j", "0"}, "invalid j"},
		{"no-deps without tasks", []string{"-no-deps"}, "no-deps requires at least one task name"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Parse(tc.args, &bytes.Buffer{})
			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.msg)
		})
	}
}

func TestExitCode(t *testing.T) {
	toolFailure := procrun.Failed(procrun.Command{Name: "parcel"}, 3).Err()
	startFailure := procrun.Failed(procrun.Command{Name: "missing"}, -1).Err()

	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 2, ExitCode(&ExitError{Code: 2, Message: "usage"}))
	assert.Equal(t, 3, ExitCode(fmt.Errorf("build failed: %w", &dag.StepError{Step: "bundle-app", Err: toolFailure})))
	assert.Equal(t, 1, ExitCode(&dag.StepError{Step: "x", Err: startFailure}))
	assert.Equal(t, 1, ExitCode(errors.New("boom")))
}
