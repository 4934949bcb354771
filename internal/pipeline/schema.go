package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/specialistvlad/buildgridgo/internal/ctxlog"
	"github.com/specialistvlad/buildgridgo/internal/fsutil"
)

// ErrNoSchemaFiles is returned when the schema directory holds no matching files.
var ErrNoSchemaFiles = errors.New("no schema files found")

// Schema compiles every schema file found under the schema source directory
// into one generated module, then derives its type declarations from that
// module. Files are passed to the generator in the order the walk found them.
func (p *Pipeline) Schema(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	s := p.cfg.Schema

	found, err := fsutil.FindFilesByExtension(filepath.Join(p.dir, s.SourceDir), s.Extension)
	if err != nil {
		return fmt.Errorf("finding schema files: %w", err)
	}
	if len(found) == 0 {
		return fmt.Errorf("%w in %s (extension %s)", ErrNoSchemaFiles, s.SourceDir, s.Extension)
	}

	files := make([]string, 0, len(found))
	for _, f := range found {
		rel, err := filepath.Rel(p.dir, f)
		if err != nil {
			return err
		}
		files = append(files, rel)
	}
	logger.Info("Compiling schema files.", "count", len(files), "out_dir", s.OutputDir)

	if err := os.MkdirAll(filepath.Join(p.dir, s.OutputDir), 0o755); err != nil {
		return fmt.Errorf("creating schema output directory: %w", err)
	}
	code := filepath.Join(s.OutputDir, s.Name+".js")
	decls := filepath.Join(s.OutputDir, s.Name+".d.ts")

	args := append([]string{"-t", "static-module", "-w", "commonjs", "-o", code}, files...)
	if err := p.run(ctx, p.command(p.cfg.Tools.Pbjs, args...)); err != nil {
		return fmt.Errorf("generating schema code: %w", err)
	}
	if err := p.run(ctx, p.command(p.cfg.Tools.Pbts, "-o", decls, code)); err != nil {
		return fmt.Errorf("generating schema declarations: %w", err)
	}
	return nil
}
