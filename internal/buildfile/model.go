// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the decoded shape of build.hcl and the defaults applied
// to every setting the user leaves out.
package buildfile

// DefaultFileName is the build file looked up in the project directory.
const DefaultFileName = "build.hcl"

// File is the root of a decoded build file.
type File struct {
	Project *Project `hcl:"project,block"`
	Tools   *Tools   `hcl:"tools,block"`
	Schema  *Schema  `hcl:"schema,block"`
	Docs    *Docs    `hcl:"docs,block"`
	Tasks   []*Task  `hcl:"task,block"`
}

// Project holds project-wide settings.
type Project struct {
	// TSConfig is the compiler configuration file, relative to the project dir.
	TSConfig string `hcl:"tsconfig,optional"`
	// SourceDir overrides the source directory derived from the compiler configuration.
	SourceDir string `hcl:"source_dir,optional"`
	// DefaultTask is the task run when none is named on the command line.
	DefaultTask string `hcl:"default_task,optional"`
	// Entry is the bundler entry point. Empty means <outDir>/index.js.
	Entry string `hcl:"entry,optional"`
	// Target is the bundler target runtime.
	Target string `hcl:"target,optional"`
	// AliasFile is the name of the rewritten alias map written into outDir.
	AliasFile string `hcl:"alias_file,optional"`
}

// Tools names the external executables.
type Tools struct {
	Tsc     string `hcl:"tsc,optional"`
	Babel   string `hcl:"babel,optional"`
	Parcel  string `hcl:"parcel,optional"`
	Typedoc string `hcl:"typedoc,optional"`
	Pbjs    string `hcl:"pbjs,optional"`
	Pbts    string `hcl:"pbts,optional"`
	// Shell starts every tool through the platform shell. Defaults to true.
	Shell *bool `hcl:"shell,optional"`
	// Env is appended to the environment of every tool.
	Env map[string]string `hcl:"env,optional"`
}

// Schema configures the schema-compile step.
type Schema struct {
	SourceDir string `hcl:"source_dir,optional"`
	Extension string `hcl:"extension,optional"`
	OutputDir string `hcl:"output_dir,optional"`
	// Name is the base name of the generated code and declaration files.
	Name string `hcl:"name,optional"`
}

// Docs configures the documentation step.
type Docs struct {
	SourceDir string `hcl:"source_dir,optional"`
	OutputDir string `hcl:"output_dir,optional"`
}

// Task is a user-defined step running one command.
type Task struct {
	Name        string   `hcl:"name,label"`
	Description string   `hcl:"description,optional"`
	Command     string   `hcl:"command"`
	Args        []string `hcl:"args,optional"`
	DependsOn   []string `hcl:"depends_on,optional"`
	Dir         string   `hcl:"dir,optional"`
	// Shell overrides tools.shell for this task.
	Shell *bool `hcl:"shell,optional"`
}

// Default returns a File with every default applied.
func Default() *File {
	f := &File{}
	f.applyDefaults()
	return f
}

func (f *File) applyDefaults() {
	if f.Project == nil {
		f.Project = &Project{}
	}
	if f.Tools == nil {
		f.Tools = &Tools{}
	}
	if f.Schema == nil {
		f.Schema = &Schema{}
	}
	if f.Docs == nil {
		f.Docs = &Docs{}
	}

	p := f.Project
	setDefault(&p.TSConfig, "tsconfig.json")
	setDefault(&p.DefaultTask, "app")
	setDefault(&p.Target, "node")
	setDefault(&p.AliasFile, "module-aliases.json")

	t := f.Tools
	setDefault(&t.Tsc, "tsc")
	setDefault(&t.Babel, "babel")
	setDefault(&t.Parcel, "parcel")
	setDefault(&t.Typedoc, "typedoc")
	setDefault(&t.Pbjs, "pbjs")
	setDefault(&t.Pbts, "pbts")
	if t.Shell == nil {
		shell := true
		t.Shell = &shell
	}

	s := f.Schema
	setDefault(&s.SourceDir, "src/proto")
	setDefault(&s.Extension, ".proto")
	setDefault(&s.OutputDir, "src/types/generated")
	setDefault(&s.Name, "proto")

	d := f.Docs
	setDefault(&d.SourceDir, "src")
	setDefault(&d.OutputDir, "docs")
}

func setDefault(field *string, value string) {
	if *field == "" {
		*field = value
	}
}

// UseShell reports whether task should be started through the shell.
func (f *File) UseShell(task *Task) bool {
	if task != nil && task.Shell != nil {
		return *task.Shell
	}
	return f.Tools.Shell != nil && *f.Tools.Shell
}

// Environment renders tools.env as KEY=VALUE pairs.
func (f *File) Environment() []string {
	if len(f.Tools.Env) == 0 {
		return nil
	}
	env := make([]string, 0, len(f.Tools.Env))
	for _, k := range sortedKeys(f.Tools.Env) {
		env = append(env, k+"="+f.Tools.Env[k])
	}
	return env
}
