// Package cli — down.go implements the "stackctl down" command, the
// inverse of deploy: stop and remove the stack's containers and
// networks via docker compose.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pixel-money/stackctl/internal/compose"
)

// downFlags holds the flag values for the down command.
type downFlags struct {
	volumes bool     // --volumes: also remove named and anonymous volumes
	files   []string // --file: override compose files
	project string   // --project: override compose project name
}

// NewDownCommand creates the "down" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewDownCommand() *cobra.Command {
	flags := &downFlags{}

	cmd := &cobra.Command{
		Use:   "down",
		Short: "Stop and remove the service stack",
		Long: `Stop and remove the stack's containers and networks with
"docker compose down". Images and volumes are kept unless --volumes
is given.

Examples:
  stackctl down
  stackctl down --volumes`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runDown(cmd.Context(), flags)
		},
	}

	cmd.Flags().BoolVar(&flags.volumes, "volumes", false, "Also remove named and anonymous volumes")
	cmd.Flags().StringArrayVarP(&flags.files, "file", "f", nil, "Compose file (repeatable, overrides config)")
	cmd.Flags().StringVarP(&flags.project, "project", "p", "", "Compose project name (overrides config)")

	return cmd
}

// runDown is the main logic function for the down command.
func runDown(ctx context.Context, flags *downFlags) error {
	cfg, err := loadConfigWithOverrides(flags.project, flags.files)
	if err != nil {
		return err
	}

	runner := compose.NewRunner(cfg.Project, cfg.ComposeFiles, ".", Logger())

	fmt.Println("Stopping services...")
	if err := runner.Down(ctx, flags.volumes); err != nil {
		return err
	}

	fmt.Println("Stack removed.")
	return nil
}
