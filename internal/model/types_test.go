package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseServiceState verifies Docker state string normalization,
// including case handling and the StateUnknown fallback for values this
// tool does not recognize.
func TestParseServiceState(t *testing.T) {
	tests := []struct {
		input    string
		expected ServiceState
	}{
		{"running", StateRunning},
		{"Running", StateRunning}, // case insensitive
		{"  running  ", StateRunning},
		{"exited", StateExited},
		{"dead", StateExited},
		{"restarting", StateRestarting},
		{"created", StateCreated},
		{"paused", StateCreated},
		{"some-future-state", StateUnknown},
		{"", StateUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseServiceState(tt.input))
		})
	}
}

// TestServiceState_IsRunning checks that only the running state counts
// as up for the deploy summary.
func TestServiceState_IsRunning(t *testing.T) {
	assert.True(t, StateRunning.IsRunning())
	assert.False(t, StateExited.IsRunning())
	assert.False(t, StateRestarting.IsRunning())
	assert.False(t, StateCreated.IsRunning())
	assert.False(t, StateUnknown.IsRunning())
}

// TestStackStatus_Running verifies the running-service counter used in
// the table footer.
func TestStackStatus_Running(t *testing.T) {
	status := &StackStatus{
		Project: "pixel-money",
		Services: []ServiceInfo{
			{Service: "gateway", State: StateRunning},
			{Service: "auth", State: StateRunning},
			{Service: "ledger", State: StateExited},
			{Service: "grafana", State: StateUnknown},
		},
	}

	assert.Equal(t, 2, status.Running())

	empty := &StackStatus{Project: "pixel-money"}
	assert.Equal(t, 0, empty.Running())
}

// TestCLIError_Error verifies message formatting with and without an
// underlying error.
func TestCLIError_Error(t *testing.T) {
	plain := NewCLIError(ExitConfigError, "invalid config")
	assert.Equal(t, "invalid config", plain.Error())

	wrapped := WrapCLIError(ExitDockerUnavailable, "Docker daemon is not running", errors.New("connection refused"))
	assert.Equal(t, "Docker daemon is not running: connection refused", wrapped.Error())
}

// TestCLIError_Unwrap verifies errors.Is/errors.As traverse into the
// wrapped error.
func TestCLIError_Unwrap(t *testing.T) {
	inner := errors.New("boom")
	err := WrapCLIError(ExitGeneralError, "outer", inner)

	assert.True(t, errors.Is(err, inner))

	var cliErr *CLIError
	require.True(t, errors.As(error(err), &cliErr))
	assert.Equal(t, ExitGeneralError, cliErr.Code)
}

// TestCLIError_OSCode verifies the exit status selection rules:
// propagated child codes win, preflight-class failures collapse to 1,
// and everything else uses its own code.
func TestCLIError_OSCode(t *testing.T) {
	tests := []struct {
		name string
		err  *CLIError
		want int
	}{
		{
			name: "general error exits 1",
			err:  NewCLIError(ExitGeneralError, "boom"),
			want: 1,
		},
		{
			name: "config error keeps its code",
			err:  NewCLIError(ExitConfigError, "bad config"),
			want: 2,
		},
		{
			name: "docker unavailable collapses to 1",
			err:  NewCLIError(ExitDockerUnavailable, "no docker"),
			want: 1,
		},
		{
			name: "test runner missing keeps its code",
			err:  NewCLIError(ExitTestRunnerMissing, "no pytest"),
			want: 4,
		},
		{
			name: "child exit code propagates verbatim",
			err:  PropagateExit(5, "pytest exited with code 5", errors.New("exit status 5")),
			want: 5,
		},
		{
			name: "child code wins over class code",
			err:  &CLIError{Code: ExitConfigError, Message: "x", ChildCode: 7},
			want: 7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.OSCode())
		})
	}
}
