// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package buildfile provides the Go struct representation of a project's
// build.hcl file. The file is optional: every setting has a default that
// matches a conventional TypeScript project layout, so a project without a
// build file builds the same way as one with an empty file.
//
// # Core Concepts
//
//   - project: where the compiler configuration lives, which task runs by
//     default, and what the bundler is pointed at.
//
//   - tools: the executable names for each external tool, whether they are
//     started through the shell, and extra environment variables.
//
//   - schema / docs: source and output directories for the schema compiler
//     and the documentation generator.
//
//   - task: a user-defined step that runs a single command. Tasks join the
//     same static graph as the built-in steps and order themselves with
//     depends_on.
//
// Expressions are evaluated once at load time against an evaluation context
// that exposes the process environment as `env` and a handful of string
// functions (upper, lower, join, concat, format).
package buildfile
