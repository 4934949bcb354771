// Package procrun starts external command-line tools and reports how they
// exited. Output of the child is forwarded live to the configured writers;
// it is never captured. The outcome of a run is a Result, which is either a
// success or a failure carrying the child's exit code.
package procrun
