package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
	"github.com/specialistvlad/buildgridgo/internal/alias"
	"github.com/specialistvlad/buildgridgo/internal/ctxlog"
)

// Flavour selects the transpilation profile of a compile.
type Flavour int

const (
	// Library keeps runtime helpers external so the package stays redistributable.
	Library Flavour = iota
	// App inlines the polyfills the program needs.
	App
)

func (f Flavour) String() string {
	if f == App {
		return "app"
	}
	return "library"
}

// BabelProfile returns the transpiler configuration for the flavour.
func BabelProfile(f Flavour) map[string]any {
	env := map[string]any{
		"targets": map[string]any{"node": true},
		"debug":   true,
	}
	profile := map[string]any{}

	switch f {
	case App:
		env["useBuiltIns"] = "entry"
	default:
		env["useBuiltIns"] = false
		profile["plugins"] = []any{
			"@babel/plugin-transform-runtime",
			"@babel/plugin-transform-regenerator",
		}
	}

	profile["presets"] = []any{
		[]any{"@babel/preset-env", env},
		"@babel/preset-typescript",
	}
	return profile
}

// Compile type-checks the sources and emits declarations, then transpiles
// them with the flavour's profile. Both passes write into the compiler's
// outDir. When the compiler configuration declares path aliases, the map
// rewritten for the build output is written next to the compiled code.
func (p *Pipeline) Compile(ctx context.Context, flavour Flavour) error {
	logger := ctxlog.FromContext(ctx)

	ts, err := p.compilerConfig()
	if err != nil {
		return err
	}
	outDir := ts.CompilerOptions.OutDir
	srcDir := p.cfg.Project.SourceDir
	if srcDir == "" {
		srcDir = ts.SourceDir()
	}
	logger.Info("Compiling sources.", "flavour", flavour.String(), "src", srcDir, "out_dir", outDir)

	tsc := p.command(p.cfg.Tools.Tsc,
		"--project", p.cfg.Project.TSConfig,
		"--declaration",
		"--emitDeclarationOnly",
		"--outDir", outDir,
	)
	if err := p.run(ctx, tsc); err != nil {
		return fmt.Errorf("type check: %w", err)
	}

	profile, cleanup, err := writeProfile(flavour)
	if err != nil {
		return err
	}
	defer cleanup()

	babel := p.command(p.cfg.Tools.Babel, srcDir,
		"--out-dir", outDir,
		"--extensions", ".ts,.tsx",
		"--source-maps",
		"--config-file", profile,
	)
	if err := p.run(ctx, babel); err != nil {
		return fmt.Errorf("transpile: %w", err)
	}

	if !ts.HasPaths() {
		logger.Debug("No module aliases configured, skipping alias map.")
		return nil
	}
	aliases := alias.Rewrite(ctx, ts.CompilerOptions.Paths, outDir)
	aliasPath := filepath.Join(p.dir, outDir, p.cfg.Project.AliasFile)
	if err := alias.WriteFile(aliasPath, aliases); err != nil {
		return fmt.Errorf("writing module aliases: %w", err)
	}
	logger.Debug("Module alias map written.", "path", aliasPath)
	return nil
}

// writeProfile stores the flavour's profile in a temporary file for the
// transpiler's --config-file flag.
func writeProfile(flavour Flavour) (string, func(), error) {
	data, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(BabelProfile(flavour))
	if err != nil {
		return "", nil, fmt.Errorf("encoding babel profile: %w", err)
	}

	f, err := os.CreateTemp("", "buildgridgo-babel-*.json")
	if err != nil {
		return "", nil, fmt.Errorf("creating babel profile: %w", err)
	}
	cleanup := func() { os.Remove(f.Name()) }

	if _, err := f.Write(data); err != nil {
		f.Close()
		cleanup()
		return "", nil, fmt.Errorf("writing babel profile: %w", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("writing babel profile: %w", err)
	}
	return f.Name(), cleanup, nil
}
