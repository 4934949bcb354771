package pipeline

import (
	"context"

	"github.com/specialistvlad/buildgridgo/internal/ctxlog"
)

// Docs generates API documentation from source comments.
func (p *Pipeline) Docs(ctx context.Context) error {
	d := p.cfg.Docs
	ctxlog.FromContext(ctx).Info("Generating documentation.", "src", d.SourceDir, "out_dir", d.OutputDir)
	return p.run(ctx, p.command(p.cfg.Tools.Typedoc, "--out", d.OutputDir, d.SourceDir))
}
