package app

import (
	"errors"
	"path/filepath"
)

// DefaultBuildFile is the build file name looked up in the project directory.
const DefaultBuildFile = "build.hcl"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ProjectDir string
	BuildFile  string // file or directory of .hcl files; defaults to ProjectDir/build.hcl

	Targets []string
	NoDeps  bool // run only the named targets, ignoring their predecessors
	Jobs    int
	List    bool

	ReportPath string

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ProjectDir == "" {
		cfg.ProjectDir = "."
	}
	if cfg.BuildFile == "" {
		cfg.BuildFile = filepath.Join(cfg.ProjectDir, DefaultBuildFile)
	}
	if cfg.Jobs == 0 {
		cfg.Jobs = 1
	}
	if cfg.Jobs < 0 {
		return nil, errors.New("jobs must be a positive number")
	}
	if cfg.NoDeps && len(cfg.Targets) == 0 {
		return nil, errors.New("no-deps requires at least one task name")
	}
	return &cfg, nil
}
