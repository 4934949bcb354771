// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the build lifecycle: loading the project's
// build file, assembling the task graph, and executing the requested tasks,
// decoupled from any specific entrypoint like a CLI.
package app
