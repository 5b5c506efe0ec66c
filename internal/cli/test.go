// Package cli — test.go implements the "stackctl test" command.
//
// The command is a thin launcher around the stack's external test
// runner: verify the runner exists, invoke it with its verbosity
// arguments against the test directory, and exit with the runner's own
// status. No result parsing or reporting happens here — that is the
// runner's job.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/pixel-money/stackctl/internal/testrun"
)

// testFlags holds the flag values for the test command.
type testFlags struct {
	dir string // --dir: override the test directory
}

// NewTestCommand creates the "test" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewTestCommand() *cobra.Command {
	flags := &testFlags{}

	cmd := &cobra.Command{
		Use:   "test",
		Short: "Run the stack's integration test suite",
		Long: `Invoke the external test runner over the stack's test directory.

The runner's output streams to the terminal and its exit status becomes
this command's exit status, unchanged. By default this runs
"pytest -v tests" against an already deployed stack.

Examples:
  stackctl test
  stackctl test --dir tests/smoke`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runTest(cmd.Context(), flags)
		},
	}

	cmd.Flags().StringVar(&flags.dir, "dir", "", "Test directory (overrides config)")

	return cmd
}

// runTest is the main logic function for the test command.
func runTest(ctx context.Context, flags *testFlags) error {
	logger := Logger()

	cfg, err := loadConfigWithOverrides("", nil)
	if err != nil {
		return err
	}

	tr := cfg.Test
	if flags.dir != "" {
		tr.Dir = flags.dir
	}

	// Preflight: the runner must exist before anything is launched,
	// mirroring the deploy command's tool checks.
	path, err := testrun.Check(tr)
	if err != nil {
		return err
	}
	logger.Debug().Str("runner", path).Str("dir", tr.Dir).Msg("test runner resolved")

	return testrun.Run(ctx, tr, logger)
}
