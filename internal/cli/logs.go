// Package cli — logs.go implements the "stackctl logs" command, a
// passthrough to "docker compose logs" for one or more services.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/pixel-money/stackctl/internal/compose"
)

// logsFlags holds the flag values for the logs command.
type logsFlags struct {
	follow  bool     // --follow: keep streaming new log lines
	tail    string   // --tail: limit to the last N lines per container
	files   []string // --file: override compose files
	project string   // --project: override compose project name
}

// NewLogsCommand creates the "logs" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewLogsCommand() *cobra.Command {
	flags := &logsFlags{}

	cmd := &cobra.Command{
		Use:   "logs [service...]",
		Short: "Show service logs",
		Long: `Stream logs from the stack's services via "docker compose logs".
With no arguments, all services are included.

Examples:
  stackctl logs
  stackctl logs gateway auth
  stackctl logs --follow --tail 100 ledger`,

		// Any number of service names; compose validates they exist.
		Args: cobra.ArbitraryArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogs(cmd.Context(), args, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.follow, "follow", "F", false, "Follow log output")
	cmd.Flags().StringVar(&flags.tail, "tail", "", "Number of lines to show from the end of each log")
	cmd.Flags().StringArrayVarP(&flags.files, "file", "f", nil, "Compose file (repeatable, overrides config)")
	cmd.Flags().StringVarP(&flags.project, "project", "p", "", "Compose project name (overrides config)")

	return cmd
}

// runLogs is the main logic function for the logs command.
func runLogs(ctx context.Context, services []string, flags *logsFlags) error {
	cfg, err := loadConfigWithOverrides(flags.project, flags.files)
	if err != nil {
		return err
	}

	runner := compose.NewRunner(cfg.Project, cfg.ComposeFiles, ".", Logger())
	return runner.Logs(ctx, services, flags.tail, flags.follow)
}
