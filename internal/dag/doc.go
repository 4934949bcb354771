// Package dag is the execution layer of the build. It holds a statically
// constructed directed graph of named steps, each with its declared
// predecessors and an optional action, and a small executor that walks a
// plan of those steps in dependency order.
//
// Steps without an action are aggregates: they exist only to group other
// steps (a series or parallel composition) under one name.
//
// Execution is fail-fast. Once a step fails, no further step is started and
// every step that never ran is reported as skipped. Running steps are never
// cancelled and failed steps are never retried.
package dag
