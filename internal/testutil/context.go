// Package testutil holds helpers shared by package tests: a log-capturing
// context and a recording fake for procrun.Runner.
package testutil

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/specialistvlad/buildgridgo/internal/ctxlog"
)

// Context returns a background context carrying a debug logger that writes
// into the returned buffer. Set BGGO_TEST_LOGS=true to dump it after the test.
func Context(t *testing.T) (context.Context, *SafeBuffer) {
	t.Helper()

	logs := &SafeBuffer{}
	logger := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	t.Cleanup(func() {
		if os.Getenv("BGGO_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})

	return ctxlog.WithLogger(context.Background(), logger), logs
}
