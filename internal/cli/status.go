// Package cli — status.go implements the "stackctl status" command and
// the table/banner printers shared with deploy.
//
// Status re-reads the deployed stack's containers from the Docker
// Engine API and prints the same summary deploy ends with, without
// touching the deployment itself.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pixel-money/stackctl/internal/compose"
	"github.com/pixel-money/stackctl/internal/docker"
	"github.com/pixel-money/stackctl/internal/model"
)

// statusFlags holds the flag values for the status command.
type statusFlags struct {
	files   []string // --file: override compose files
	project string   // --project: override compose project name
}

// NewStatusCommand creates the "status" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewStatusCommand() *cobra.Command {
	flags := &statusFlags{}

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the deployed stack's containers and endpoints",
		Long: `Show each service's container state, published ports, and the
stack's endpoint list, without deploying anything.

Examples:
  stackctl status
  stackctl status --json`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd.Context(), flags)
		},
	}

	cmd.Flags().StringArrayVarP(&flags.files, "file", "f", nil, "Compose file (repeatable, overrides config)")
	cmd.Flags().StringVarP(&flags.project, "project", "p", "", "Compose project name (overrides config)")

	return cmd
}

// runStatus is the main logic function for the status command.
func runStatus(ctx context.Context, flags *statusFlags) error {
	cfg, err := loadConfigWithOverrides(flags.project, flags.files)
	if err != nil {
		return err
	}

	// Service discovery is best-effort here: status should still work
	// from a directory without the compose files, falling back to
	// whatever containers carry the project label.
	services, err := compose.DiscoverServices(cfg.ComposeFiles)
	if err != nil {
		logger := Logger()
		logger.Debug().Err(err).Msg("compose files unavailable, listing containers only")
		services = nil
	}

	cli, err := docker.NewClient()
	if err != nil {
		return err
	}
	defer func() { _ = cli.Close() }()

	if err := cli.Ping(ctx); err != nil {
		return err
	}

	status, err := docker.StackStatus(ctx, cli, cfg.Project, services)
	if err != nil {
		return err
	}

	if IsJSONOutput() {
		printStackJSON(status, cfg.Endpoints)
		return nil
	}

	printStatusTable(status)
	printEndpoints(cfg.Endpoints)
	return nil
}

// printStatusTable outputs the per-service status as a fixed-width
// text table:
//
//	SERVICE      STATE      STATUS              PORTS
//	auth         running    Up 20 seconds       8001->8000/tcp
//	gateway      running    Up 19 seconds       8080->8080/tcp
func printStatusTable(status *model.StackStatus) {
	if len(status.Services) == 0 {
		fmt.Printf("No containers found for project %q.\n", status.Project)
		return
	}

	fmt.Printf("%-16s %-12s %-24s %s\n", "SERVICE", "STATE", "STATUS", "PORTS")
	for _, svc := range status.Services {
		fmt.Printf("%-16s %-12s %-24s %s\n",
			svc.Service,
			svc.State.String(),
			svc.Status,
			FormatPorts(svc.Ports),
		)
	}

	fmt.Printf("\n%d/%d services running\n", status.Running(), len(status.Services))
}

// printEndpoints outputs the endpoint banner: one line per URL the
// stack exposes, with default credentials where a service ships them.
func printEndpoints(endpoints []model.Endpoint) {
	if len(endpoints) == 0 {
		return
	}

	fmt.Println()
	fmt.Println("Endpoints:")
	for _, ep := range endpoints {
		line := fmt.Sprintf("  %-20s %s", ep.Name, ep.URL)
		if ep.Credentials != "" {
			line += "  (" + ep.Credentials + ")"
		}
		fmt.Println(line)
	}
}

// stackJSON is the JSON output structure shared by deploy and status.
type stackJSON struct {
	Project   string              `json:"project"`
	Running   int                 `json:"running"`
	Total     int                 `json:"total"`
	Services  []model.ServiceInfo `json:"services"`
	Endpoints []model.Endpoint    `json:"endpoints"`
}

// printStackJSON outputs the stack summary as structured JSON.
func printStackJSON(status *model.StackStatus, endpoints []model.Endpoint) {
	result := stackJSON{
		Project: status.Project,
		Running: status.Running(),
		Total:   len(status.Services),
		// Empty slices instead of nil so JSON output shows [] rather
		// than null when nothing is deployed.
		Services:  append([]model.ServiceInfo{}, status.Services...),
		Endpoints: append([]model.Endpoint{}, endpoints...),
	}

	data, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(data))
}

// FormatPorts joins a service's published port mappings with commas.
// Returns "-" when the service publishes nothing, keeping table
// columns non-empty.
//
// This function is exported for testing purposes (tested in status_test.go).
func FormatPorts(ports []string) string {
	if len(ports) == 0 {
		return "-"
	}
	return strings.Join(ports, ",")
}
