// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file loads build files from disk. A path may name a single .hcl file
// or a directory, in which case every .hcl file below it is decoded and the
// results are merged into one File.
package buildfile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/buildgridgo/internal/ctxlog"
	"github.com/specialistvlad/buildgridgo/internal/fsutil"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// Load reads the build file at path. A missing file is not an error: the
// defaults are returned instead.
func Load(ctx context.Context, path string) (*File, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading build file.", "path", path)

	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Debug("No build file found, using defaults.", "path", path)
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat build file %s: %w", path, err)
	}

	files := []string{path}
	if info.IsDir() {
		files, err = fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("failed to find build files in %s: %w", path, err)
		}
	}

	parser := hclparse.NewParser()
	evalCtx := newEvalContext()
	merged := &File{}
	for _, file := range files {
		decoded, err := decodeFile(parser, evalCtx, file)
		if err != nil {
			return nil, err
		}
		if err := merged.merge(decoded, file); err != nil {
			return nil, err
		}
	}
	merged.applyDefaults()

	logger.Debug("Build file loaded.", "files", len(files), "tasks", len(merged.Tasks))
	return merged, nil
}

// Parse decodes build file source held in memory. filename is used in diagnostics.
func Parse(src []byte, filename string) (*File, error) {
	hclFile, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse build file %s: %w", filename, diags)
	}
	f, err := decodeBody(hclFile.Body, newEvalContext(), filename)
	if err != nil {
		return nil, err
	}
	f.applyDefaults()
	return f, nil
}

func decodeFile(parser *hclparse.Parser, evalCtx *hcl.EvalContext, path string) (*File, error) {
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse build file %s: %w", path, diags)
	}
	return decodeBody(hclFile.Body, evalCtx, path)
}

func decodeBody(body hcl.Body, evalCtx *hcl.EvalContext, path string) (*File, error) {
	var f File
	if diags := gohcl.DecodeBody(body, evalCtx, &f); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode build file %s: %w", path, diags)
	}

	seen := make(map[string]bool, len(f.Tasks))
	for _, t := range f.Tasks {
		if seen[t.Name] {
			return nil, fmt.Errorf("build file %s: task %q declared more than once", path, t.Name)
		}
		seen[t.Name] = true
	}
	return &f, nil
}

// merge folds other into f. Each singleton block may be declared in one file only.
func (f *File) merge(other *File, path string) error {
	dup := func(block string) error {
		return fmt.Errorf("build file %s: %s block already declared in another file", path, block)
	}
	if other.Project != nil {
		if f.Project != nil {
			return dup("project")
		}
		f.Project = other.Project
	}
	if other.Tools != nil {
		if f.Tools != nil {
			return dup("tools")
		}
		f.Tools = other.Tools
	}
	if other.Schema != nil {
		if f.Schema != nil {
			return dup("schema")
		}
		f.Schema = other.Schema
	}
	if other.Docs != nil {
		if f.Docs != nil {
			return dup("docs")
		}
		f.Docs = other.Docs
	}

	for _, t := range other.Tasks {
		for _, existing := range f.Tasks {
			if existing.Name == t.Name {
				return fmt.Errorf("build file %s: task %q already declared in another file", path, t.Name)
			}
		}
		f.Tasks = append(f.Tasks, t)
	}
	return nil
}

// newEvalContext exposes the process environment and a few string functions
// to build file expressions.
func newEvalContext() *hcl.EvalContext {
	env := make(map[string]cty.Value)
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		env[k] = cty.StringVal(v)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(env),
		},
		Functions: map[string]function.Function{
			"upper":  stdlib.UpperFunc,
			"lower":  stdlib.LowerFunc,
			"join":   stdlib.JoinFunc,
			"concat": stdlib.ConcatFunc,
			"format": stdlib.FormatFunc,
		},
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
