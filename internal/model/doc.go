// Package model defines the domain types and value objects for the
// stackctl CLI.
//
// This package contains pure data structures with no external dependencies.
// All entities (ServiceInfo, Endpoint, etc.) are transient representations
// reconstructed from Docker container state at runtime — stackctl keeps no
// persistent state of its own; container lifecycle, image caches, and test
// results are owned entirely by docker compose and the test runner.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
