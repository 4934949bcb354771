package tsconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var (
	// ErrMissingOutDir is returned when no file in the extends chain sets compilerOptions.outDir.
	ErrMissingOutDir = errors.New("compilerOptions.outDir is not set")
	// ErrExtendsCycle is returned when the extends chain loops back on itself.
	ErrExtendsCycle = errors.New("tsconfig extends cycle")
	// ErrUnsupportedExtends is returned for package-style extends such as "@tsconfig/node18".
	ErrUnsupportedExtends = errors.New("only relative tsconfig extends paths are supported")
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Config is the subset of tsconfig.json the build pipeline reads.
type Config struct {
	// Path is the file this configuration was loaded from.
	Path string `json:"-"`

	Extends         Extends         `json:"extends,omitempty"`
	CompilerOptions CompilerOptions `json:"compilerOptions"`
	Include         []string        `json:"include,omitempty"`
	Exclude         []string        `json:"exclude,omitempty"`
}

// CompilerOptions holds the compiler settings relevant to the build.
// Directory options are relative to the directory of Config.Path.
type CompilerOptions struct {
	OutDir  string              `json:"outDir,omitempty"`
	RootDir string              `json:"rootDir,omitempty"`
	BaseURL string              `json:"baseUrl,omitempty"`
	Paths   map[string][]string `json:"paths,omitempty"`
}

// Load reads the configuration at path, resolving relative extends chains.
// Options set in a file override those inherited from the file it extends.
func Load(path string) (*Config, error) {
	cfg, err := load(path, map[string]bool{})
	if err != nil {
		return nil, err
	}
	if cfg.CompilerOptions.OutDir == "" {
		return nil, fmt.Errorf("%s: %w", path, ErrMissingOutDir)
	}
	return cfg, nil
}

func load(path string, visiting map[string]bool) (*Config, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if visiting[abs] {
		return nil, fmt.Errorf("%s: %w", path, ErrExtendsCycle)
	}
	visiting[abs] = true
	defer delete(visiting, abs)

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading compiler configuration: %w", err)
	}

	cfg := &Config{Path: path}
	plain, err := Standardize(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing compiler configuration %s: %w", path, err)
	}
	if err := json.Unmarshal(plain, cfg); err != nil {
		return nil, fmt.Errorf("parsing compiler configuration %s: %w", path, err)
	}

	// Later entries override earlier ones, and the file itself overrides them all.
	var base *Config
	for _, ext := range cfg.Extends {
		if !strings.HasPrefix(ext, ".") {
			return nil, fmt.Errorf("%s extends %q: %w", path, ext, ErrUnsupportedExtends)
		}
		parentPath := filepath.Join(filepath.Dir(path), ext)
		if filepath.Ext(parentPath) == "" {
			parentPath += ".json"
		}
		parent, err := load(parentPath, visiting)
		if err != nil {
			return nil, err
		}
		if base == nil {
			base = parent
		} else {
			base = merge(base, parent)
		}
	}
	if base == nil {
		return cfg, nil
	}
	return merge(base, cfg), nil
}

// merge overlays child on parent. Directory options inherited from the parent
// are rebased so they stay relative to the child's directory.
func merge(parent, child *Config) *Config {
	out := *child
	out.Extends = nil

	parentDir, childDir := filepath.Dir(parent.Path), filepath.Dir(child.Path)
	rebase := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		rel, err := filepath.Rel(childDir, filepath.Join(parentDir, p))
		if err != nil {
			return p
		}
		return filepath.ToSlash(rel)
	}

	if out.CompilerOptions.OutDir == "" {
		out.CompilerOptions.OutDir = rebase(parent.CompilerOptions.OutDir)
	}
	if out.CompilerOptions.RootDir == "" {
		out.CompilerOptions.RootDir = rebase(parent.CompilerOptions.RootDir)
	}
	if out.CompilerOptions.BaseURL == "" {
		out.CompilerOptions.BaseURL = rebase(parent.CompilerOptions.BaseURL)
	}
	if out.CompilerOptions.Paths == nil {
		out.CompilerOptions.Paths = parent.CompilerOptions.Paths
	}
	if out.Include == nil {
		out.Include = parent.Include
	}
	if out.Exclude == nil {
		out.Exclude = parent.Exclude
	}
	return &out
}

// SourceDir guesses the directory holding the TypeScript sources: rootDir
// when set, otherwise the first include entry's leading directory, otherwise "src".
func (c *Config) SourceDir() string {
	if c.CompilerOptions.RootDir != "" {
		return c.CompilerOptions.RootDir
	}
	for _, inc := range c.Include {
		dir := strings.SplitN(filepath.ToSlash(inc), "/", 2)[0]
		if dir != "" && !strings.ContainsAny(dir, "*?") {
			return dir
		}
	}
	return "src"
}

// HasPaths reports whether any module-resolution aliases are configured.
func (c *Config) HasPaths() bool {
	return len(c.CompilerOptions.Paths) > 0
}
