package buildfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/buildgridgo/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	f := Default()

	assert.Equal(t, "tsconfig.json", f.Project.TSConfig)
	assert.Equal(t, "app", f.Project.DefaultTask)
	assert.Equal(t, "node", f.Project.Target)
	assert.Equal(t, "module-aliases.json", f.Project.AliasFile)
	assert.Equal(t, "tsc", f.Tools.Tsc)
	assert.Equal(t, "parcel", f.Tools.Parcel)
	assert.True(t, f.UseShell(nil))
	assert.Equal(t, "src/proto", f.Schema.SourceDir)
	assert.Equal(t, ".proto", f.Schema.Extension)
	assert.Equal(t, "src/types/generated", f.Schema.OutputDir)
	assert.Equal(t, "docs", f.Docs.OutputDir)
	assert.Empty(t, f.Tasks)
	assert.Nil(t, f.Environment())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	ctx, _ := testutil.Context(t)

	f, err := Load(ctx, filepath.Join(t.TempDir(), DefaultFileName))
	require.NoError(t, err)
	if diff := cmp.Diff(Default(), f); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_File(t *testing.T) {
	ctx, _ := testutil.Context(t)
	t.Setenv("BUILDGRID_TEST_TARGET", "browser")

	path := writeFile(t, filepath.Join(t.TempDir(), DefaultFileName), `
project {
  default_task = "library"
  target       = lower(env.BUILDGRID_TEST_TARGET)
  entry        = join("/", ["dist", "main.js"])
}

tools {
  parcel = "npx parcel"
  shell  = false
  env = {
    NODE_ENV = upper("production")
  }
}

schema {
  source_dir = "protos"
  name       = format("%s_bundle", "api")
}

task "lint" {
  command    = "eslint"
  args       = ["src", "--ext", ".ts"]
  depends_on = ["schema"]
}

task "test" {
  description = "Run unit tests"
  command     = "jest"
  shell       = true
}
`)

	f, err := Load(ctx, path)
	require.NoError(t, err)

	assert.Equal(t, "library", f.Project.DefaultTask)
	assert.Equal(t, "browser", f.Project.Target)
	assert.Equal(t, "dist/main.js", f.Project.Entry)
	assert.Equal(t, "tsconfig.json", f.Project.TSConfig)
	assert.Equal(t, "npx parcel", f.Tools.Parcel)
	assert.Equal(t, "tsc", f.Tools.Tsc)
	assert.Equal(t, []string{"NODE_ENV=PRODUCTION"}, f.Environment())
	assert.Equal(t, "protos", f.Schema.SourceDir)
	assert.Equal(t, "api_bundle", f.Schema.Name)
	assert.Equal(t, ".proto", f.Schema.Extension)

	require.Len(t, f.Tasks, 2)
	lint, test := f.Tasks[0], f.Tasks[1]
	assert.Equal(t, "lint", lint.Name)
	assert.Equal(t, []string{"src", "--ext", ".ts"}, lint.Args)
	assert.Equal(t, []string{"schema"}, lint.DependsOn)
	assert.False(t, f.UseShell(lint))
	assert.True(t, f.UseShell(test))
	assert.False(t, f.UseShell(nil))
}

func TestLoad_Directory(t *testing.T) {
	ctx, _ := testutil.Context(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "project.hcl"), `project { default_task = "all" }`)
	writeFile(t, filepath.Join(dir, "tasks", "lint.hcl"), `task "lint" { command = "eslint" }`)
	writeFile(t, filepath.Join(dir, "README.md"), "not hcl")

	f, err := Load(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, "all", f.Project.DefaultTask)
	require.Len(t, f.Tasks, 1)
	assert.Equal(t, "lint", f.Tasks[0].Name)
}

func TestLoad_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		files   map[string]string
		wantErr string
	}{
		{
			name:    "syntax error",
			files:   map[string]string{"build.hcl": `project {`},
			wantErr: "failed to parse build file",
		},
		{
			name:    "unknown attribute",
			files:   map[string]string{"build.hcl": `project { colour = "red" }`},
			wantErr: "failed to decode build file",
		},
		{
			name:    "task without command",
			files:   map[string]string{"build.hcl": `task "lint" {}`},
			wantErr: "failed to decode build file",
		},
		{
			name:    "duplicate task",
			files:   map[string]string{"build.hcl": "task \"a\" { command = \"x\" }\ntask \"a\" { command = \"y\" }"},
			wantErr: `task "a" declared more than once`,
		},
		{
			name: "project block in two files",
			files: map[string]string{
				"a.hcl": `project {}`,
				"b.hcl": `project {}`,
			},
			wantErr: "project block already declared",
		},
		{
			name: "task in two files",
			files: map[string]string{
				"a.hcl": `task "x" { command = "x" }`,
				"b.hcl": `task "x" { command = "x" }`,
			},
			wantErr: `task "x" already declared`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx, _ := testutil.Context(t)
			dir := t.TempDir()
			for name, content := range tc.files {
				writeFile(t, filepath.Join(dir, name), content)
			}

			path := dir
			if len(tc.files) == 1 {
				path = filepath.Join(dir, "build.hcl")
			}
			_, err := Load(ctx, path)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestParse(t *testing.T) {
	f, err := Parse([]byte(`docs { output_dir = "site/api" }`), "inline.hcl")
	require.NoError(t, err)
	assert.Equal(t, "site/api", f.Docs.OutputDir)
	assert.Equal(t, "src", f.Docs.SourceDir)

	_, err = Parse([]byte(`docs {`), "inline.hcl")
	assert.ErrorContains(t, err, "inline.hcl")
}
