// Package pipeline implements the actions behind the built-in build tasks.
// Each action composes one or more external tool invocations through a
// procrun.Runner and runs them strictly one after another, stopping at the
// first failure.
package pipeline
