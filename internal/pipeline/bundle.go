package pipeline

import (
	"context"
	"path"

	"github.com/specialistvlad/buildgridgo/internal/ctxlog"
)

// Bundle packages the compiled entry point for the configured target runtime.
func (p *Pipeline) Bundle(ctx context.Context) error {
	entry := p.cfg.Project.Entry
	if entry == "" {
		ts, err := p.compilerConfig()
		if err != nil {
			return err
		}
		entry = path.Join(ts.CompilerOptions.OutDir, "index.js")
	}

	ctxlog.FromContext(ctx).Info("Bundling build output.", "entry", entry, "target", p.cfg.Project.Target)
	return p.run(ctx, p.command(p.cfg.Tools.Parcel, "build", entry, "--target", p.cfg.Project.Target))
}
