package testrun

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pixel-money/stackctl/internal/config"
	"github.com/pixel-money/stackctl/internal/model"
)

// Check verifies the configured runner binary exists on PATH and
// returns its resolved path. This is the test command's preflight: a
// missing runner produces a clear message instead of an exec error.
func Check(tr config.TestRunner) (string, error) {
	path, err := exec.LookPath(tr.Command)
	if err != nil {
		return "", model.WrapCLIError(
			model.ExitTestRunnerMissing,
			fmt.Sprintf("test runner %q not found on PATH", tr.Command),
			err,
		)
	}
	return path, nil
}

// Run launches the test runner with its configured arguments followed
// by the test directory, inheriting the parent's stdio so test output
// streams live. On a non-zero exit, the runner's status is preserved in
// the returned CLIError and becomes this process's exit status — CI
// systems depend on the code passing through unchanged.
func Run(ctx context.Context, tr config.TestRunner, logger zerolog.Logger) error {
	args := make([]string, 0, len(tr.Args)+1)
	args = append(args, tr.Args...)
	args = append(args, tr.Dir)

	logger.Debug().Str("cmd", tr.Command+" "+strings.Join(args, " ")).Msg("exec")

	cmd := exec.CommandContext(ctx, tr.Command, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = os.Environ()

	err := cmd.Run()
	if err == nil {
		return nil
	}

	if ee, ok := err.(*exec.ExitError); ok {
		return model.PropagateExit(
			ee.ExitCode(),
			fmt.Sprintf("%s exited with code %d", tr.Command, ee.ExitCode()),
			err,
		)
	}

	return model.WrapCLIError(model.ExitGeneralError,
		fmt.Sprintf("failed to run %s", tr.Command), err)
}
