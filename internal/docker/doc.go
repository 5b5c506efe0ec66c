// Package docker provides Docker Engine API access for the stackctl
// CLI.
//
// This package handles:
//   - Docker client initialization with automatic socket detection
//     (Linux, macOS, Windows)
//   - Daemon reachability checks for the deploy preflight
//   - Discovery of a deployed stack's containers via the compose
//     project label, powering the post-deploy status table
//
// Lifecycle operations (build, up, down) are NOT here — those shell
// out to the compose plugin in the compose package. The SDK is used
// read-only, for inspection.
//
// The package uses github.com/docker/docker/client as the underlying
// Docker SDK, with version negotiation enabled for broad compatibility.
package docker
