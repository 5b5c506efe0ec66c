package model

import (
	"fmt"
	"strings"
)

// ServiceState represents the lifecycle state of a deployed service's
// container as reported by the Docker Engine API.
type ServiceState string

const (
	// StateRunning indicates the service's container is up.
	StateRunning ServiceState = "running"

	// StateExited indicates the container stopped (successfully or not).
	StateExited ServiceState = "exited"

	// StateRestarting indicates Docker is restarting the container.
	StateRestarting ServiceState = "restarting"

	// StateCreated indicates the container exists but was never started.
	StateCreated ServiceState = "created"

	// StateUnknown is used for any state string this tool does not
	// recognize. The raw Docker state is preserved in ServiceInfo.Status.
	StateUnknown ServiceState = "unknown"
)

// String returns the state's string representation for CLI output
// and JSON serialization.
func (s ServiceState) String() string {
	return string(s)
}

// IsRunning reports whether the state counts as "up" for the purposes
// of the deploy summary table.
func (s ServiceState) IsRunning() bool {
	return s == StateRunning
}

// ParseServiceState normalizes a Docker API state string into a
// ServiceState. Unrecognized values map to StateUnknown rather than an
// error, because Docker may introduce new states and the status table
// should still render them.
func ParseServiceState(raw string) ServiceState {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "running":
		return StateRunning
	case "exited", "dead":
		return StateExited
	case "restarting":
		return StateRestarting
	case "created", "paused":
		return StateCreated
	default:
		return StateUnknown
	}
}

// ServiceInfo describes a single container belonging to the deployed
// stack. It is a normalized view over the Docker API container struct,
// decoupling the CLI and output layers from the Docker SDK types.
type ServiceInfo struct {
	// Service is the compose service name, taken from the
	// "com.docker.compose.service" label that docker compose applies
	// to every container it creates.
	Service string `json:"service"`

	// ContainerID is the full Docker container ID.
	ContainerID string `json:"containerId"`

	// ContainerName is the container name without the leading "/"
	// the Docker API prepends.
	ContainerName string `json:"containerName"`

	// State is the normalized lifecycle state.
	State ServiceState `json:"state"`

	// Status is the raw human-readable status from Docker,
	// e.g. "Up 20 seconds" or "Exited (1) 5 seconds ago".
	Status string `json:"status"`

	// Ports lists published port mappings in "host->container/proto"
	// form, sorted for deterministic output.
	Ports []string `json:"ports,omitempty"`
}

// StackStatus aggregates the per-service view of a deployed stack.
type StackStatus struct {
	// Project is the compose project name the services belong to.
	Project string `json:"project"`

	// Services lists every container found for the project, sorted
	// by service name.
	Services []ServiceInfo `json:"services"`
}

// Running returns the number of services currently in the running state.
func (s *StackStatus) Running() int {
	n := 0
	for _, svc := range s.Services {
		if svc.State.IsRunning() {
			n++
		}
	}
	return n
}

// Endpoint describes a URL the deployed stack exposes to the operator,
// printed after a successful deploy. Credentials, when present, are the
// stack's well-known development defaults, not secrets managed by this
// tool.
type Endpoint struct {
	// Name is a short human label, e.g. "API Gateway" or "Grafana".
	Name string `json:"name"`

	// URL is the address the service listens on from the host's
	// perspective.
	URL string `json:"url"`

	// Credentials is an optional "user / password" note for services
	// that ship with default logins (e.g. Grafana's admin/admin).
	Credentials string `json:"credentials,omitempty"`
}

// ExitCode defines the CLI exit codes. These codes allow scripts and CI
// systems to programmatically determine the outcome of a command.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitConfigError indicates the stackctl configuration file could
	// not be loaded or failed validation.
	ExitConfigError ExitCode = 2

	// ExitDockerUnavailable indicates that docker (or the compose
	// plugin) is missing, not functional, or the daemon is not
	// reachable. Preflight failures use this class but are reported
	// to the OS as exit code 1 to match long-standing script behavior;
	// see CLIError.OSCode.
	ExitDockerUnavailable ExitCode = 3

	// ExitTestRunnerMissing indicates the configured test runner
	// binary was not found on PATH.
	ExitTestRunnerMissing ExitCode = 4
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code classifies the failure.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error

	// ChildCode, when non-zero, is the exit status of a child process
	// whose code must be propagated verbatim (the test runner, or a
	// failed compose invocation). It takes precedence over Code when
	// choosing the OS exit status.
	ChildCode int
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// OSCode returns the status the process should exit with. A recorded
// child process exit code wins; preflight-class failures collapse to 1,
// matching the deploy contract of "exit 1 with a message" when the
// orchestrator is absent or broken.
func (e *CLIError) OSCode() int {
	if e.ChildCode != 0 {
		return e.ChildCode
	}
	if e.Code == ExitDockerUnavailable {
		return int(ExitGeneralError)
	}
	return int(e.Code)
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}

// PropagateExit creates a CLIError that preserves a child process's
// exit status. Used by the test command, which must exit with exactly
// the status the test runner returned.
func PropagateExit(childCode int, message string, err error) *CLIError {
	return &CLIError{Code: ExitGeneralError, Message: message, Err: err, ChildCode: childCode}
}
