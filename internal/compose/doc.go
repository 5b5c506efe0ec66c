// Package compose shells out to the docker compose plugin for stack
// lifecycle operations (build, up, down, logs) and parses compose YAML
// files for service discovery.
//
// The package deliberately wraps the CLI rather than reimplementing
// compose semantics: image building, dependency ordering, networking,
// and volume management all stay with docker compose. Long-running
// commands stream their output straight to the user's terminal; the
// version probe captures output for preflight reporting.
//
// All invocations use "docker compose ..." (plugin-style) rather than
// the legacy docker-compose standalone binary.
package compose
