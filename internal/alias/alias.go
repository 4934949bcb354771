// Package alias rewrites compiler module-resolution aliases so that they
// point into the build output directory instead of the source tree.
package alias

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/specialistvlad/buildgridgo/internal/ctxlog"
)

// wildcard is the trailing segment a compiler path pattern may end with.
const wildcard = "/*"

// Rewrite maps every alias to its first pattern, rooted under outDir and
// stripped of any trailing "/*" segments. Keys are carried over unchanged. An
// alias with no patterns maps to outDir itself.
func Rewrite(ctx context.Context, paths map[string][]string, outDir string) map[string]string {
	prefix := filepath.ToSlash(outDir)
	if trimmed := strings.TrimRight(prefix, "/"); trimmed != "" {
		prefix = trimmed
	} else if prefix != "" {
		prefix = "/"
	}

	rewritten := make(map[string]string, len(paths))
	for name, patterns := range paths {
		var first string
		if len(patterns) > 0 {
			first = patterns[0]
		}
		rewritten[name] = join(prefix, first)
	}

	ctxlog.FromContext(ctx).Info("Module aliases rewritten for build output.", "out_dir", outDir, "aliases", rewritten)
	return rewritten
}

func join(prefix, pattern string) string {
	p := filepath.ToSlash(pattern)
	for strings.HasSuffix(p, wildcard) {
		p = strings.TrimSuffix(p, wildcard)
	}
	if p == "*" {
		p = ""
	}
	p = strings.TrimPrefix(p, "./")
	p = strings.TrimPrefix(p, "/")

	switch {
	case p == "":
		return prefix
	case prefix == "":
		return p
	case prefix == "/":
		return prefix + p
	default:
		return prefix + "/" + p
	}
}

// WriteFile stores aliases as an indented JSON object at path.
func WriteFile(path string, aliases map[string]string) error {
	data, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(aliases, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
