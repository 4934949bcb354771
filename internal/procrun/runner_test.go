package procrun_test

import (
	"errors"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/specialistvlad/buildgridgo/internal/procrun"
	"github.com/specialistvlad/buildgridgo/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExec() (*procrun.Exec, *testutil.SafeBuffer, *testutil.SafeBuffer) {
	stdout, stderr := &testutil.SafeBuffer{}, &testutil.SafeBuffer{}
	return &procrun.Exec{Stdout: stdout, Stderr: stderr}, stdout, stderr
}

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}

func TestExec_Run(t *testing.T) {
	skipOnWindows(t)

	t.Run("exit 0 is success", func(t *testing.T) {
		ctx, _ := testutil.Context(t)
		runner, _, _ := newExec()

		res := runner.Run(ctx, procrun.Command{Name: "sh", Args: []string{"-c", "exit 0"}})
		assert.True(t, res.OK())
		assert.NoError(t, res.Err())
		assert.Equal(t, 0, res.ExitCode)
	})

	t.Run("exit 1 is failure carrying code 1", func(t *testing.T) {
		ctx, _ := testutil.Context(t)
		runner, _, _ := newExec()

		res := runner.Run(ctx, procrun.Command{Name: "sh", Args: []string{"-c", "exit 1"}})
		assert.False(t, res.OK())

		var exitErr *procrun.ExitError
		require.True(t, errors.As(res.Err(), &exitErr))
		assert.Equal(t, 1, exitErr.Code)
		assert.Nil(t, exitErr.Cause)
	})

	t.Run("forwards stdout and stderr", func(t *testing.T) {
		ctx, _ := testutil.Context(t)
		runner, stdout, stderr := newExec()

		res := runner.Run(ctx, procrun.Command{Name: "sh", Args: []string{"-c", "echo out; echo err >&2"}})
		require.True(t, res.OK())
		assert.Equal(t, "out\n", stdout.String())
		assert.Equal(t, "err\n", stderr.String())
	})

	t.Run("missing executable fails with cause", func(t *testing.T) {
		ctx, _ := testutil.Context(t)
		runner, _, _ := newExec()

		res := runner.Run(ctx, procrun.Command{Name: "buildgridgo-no-such-tool"})
		assert.False(t, res.OK())
		assert.Equal(t, -1, res.ExitCode)

		var exitErr *procrun.ExitError
		require.True(t, errors.As(res.Err(), &exitErr))
		assert.Error(t, exitErr.Cause)
	})

	t.Run("working directory and env are applied", func(t *testing.T) {
		ctx, _ := testutil.Context(t)
		runner, stdout, _ := newExec()
		dir, err := filepath.EvalSymlinks(t.TempDir())
		require.NoError(t, err)

		res := runner.Run(ctx, procrun.Command{
			Name: "sh",
			Args: []string{"-c", "pwd -P; echo $GREETING"},
			Dir:  dir,
			Env:  []string{"GREETING=hello"},
		})
		require.NoError(t, res.Err())
		assert.Equal(t, dir+"\nhello\n", stdout.String())
	})
}

func TestExec_RunShellMode(t *testing.T) {
	skipOnWindows(t)

	t.Run("non-zero exit through the shell", func(t *testing.T) {
		ctx, _ := testutil.Context(t)
		runner, _, _ := newExec()

		res := runner.Run(ctx, procrun.Command{Name: "exit", Args: []string{"3"}, Shell: true})
		assert.Equal(t, 3, res.ExitCode)
	})

	t.Run("arguments with spaces stay intact", func(t *testing.T) {
		ctx, _ := testutil.Context(t)
		runner, stdout, _ := newExec()

		res := runner.Run(ctx, procrun.Command{Name: "printf", Args: []string{"%s|", "a b", "it's"}, Shell: true})
		require.NoError(t, res.Err())
		assert.Equal(t, "a b|it's|", stdout.String())
	})

	t.Run("unknown command yields shell status 127", func(t *testing.T) {
		ctx, _ := testutil.Context(t)
		runner, _, _ := newExec()

		res := runner.Run(ctx, procrun.Command{Name: "buildgridgo-no-such-tool", Shell: true})
		assert.Equal(t, 127, res.ExitCode)
	})
}

func TestCommand_String(t *testing.T) {
	cmd := procrun.Command{Name: "parcel", Args: []string{"build", "build/index.js", "--target", "node", "my file", ""}}
	assert.Equal(t, "parcel build build/index.js --target node 'my file' ''", cmd.String())
}

func TestResult_Err(t *testing.T) {
	cmd := procrun.Command{Name: "tsc"}
	assert.NoError(t, procrun.Succeeded(cmd).Err())

	err := procrun.Failed(cmd, 2).Err()
	assert.EqualError(t, err, `command "tsc" exited with code 2`)
}
