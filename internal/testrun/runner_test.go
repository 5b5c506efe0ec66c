package testrun

import (
	"context"
	"errors"
	"runtime"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixel-money/stackctl/internal/config"
	"github.com/pixel-money/stackctl/internal/model"
)

// TestCheck verifies runner resolution: a real binary resolves to a
// path, a missing one produces the test-runner-missing error class.
func TestCheck(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}

	t.Run("existing runner resolves", func(t *testing.T) {
		path, err := Check(config.TestRunner{Command: "sh", Dir: "tests"})
		require.NoError(t, err)
		assert.NotEmpty(t, path)
	})

	t.Run("missing runner is reported", func(t *testing.T) {
		_, err := Check(config.TestRunner{Command: "definitely-not-a-test-runner", Dir: "tests"})
		require.Error(t, err)

		var cliErr *model.CLIError
		require.True(t, errors.As(err, &cliErr))
		assert.Equal(t, model.ExitTestRunnerMissing, cliErr.Code)
		assert.Contains(t, cliErr.Message, "definitely-not-a-test-runner")
	})
}

// TestRun verifies exit status handling: success returns nil, and a
// failing suite's exit code is preserved for propagation.
func TestRun(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}

	t.Run("passing suite", func(t *testing.T) {
		tr := config.TestRunner{Command: "sh", Args: []string{"-c", "exit 0"}, Dir: "."}
		assert.NoError(t, Run(context.Background(), tr, zerolog.Nop()))
	})

	t.Run("failing suite propagates its code", func(t *testing.T) {
		// pytest uses exit code 1 for test failures and 2 for usage
		// errors; whatever the runner returns must pass through.
		tr := config.TestRunner{Command: "sh", Args: []string{"-c", "exit 2"}, Dir: "."}

		err := Run(context.Background(), tr, zerolog.Nop())
		require.Error(t, err)

		var cliErr *model.CLIError
		require.True(t, errors.As(err, &cliErr))
		assert.Equal(t, 2, cliErr.ChildCode)
		assert.Equal(t, 2, cliErr.OSCode())
	})
}
