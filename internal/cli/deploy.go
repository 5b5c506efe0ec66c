// Package cli — deploy.go implements the "stackctl deploy" command.
//
// Deploy is the primary user-facing operation. It sequences the same
// steps the stack's original deployment workflow performed, stopping at
// the first failure:
//
//  1. Preflight: docker on PATH, compose plugin functional, daemon up
//  2. docker compose build (unless --no-build)
//  3. docker compose up -d
//  4. Fixed settling wait (a pause, not a readiness protocol)
//  5. Status table of the stack's containers
//  6. Endpoint banner with the stack's URLs and default credentials
package cli

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/spf13/cobra"

	"github.com/pixel-money/stackctl/internal/compose"
	"github.com/pixel-money/stackctl/internal/config"
	"github.com/pixel-money/stackctl/internal/docker"
	"github.com/pixel-money/stackctl/internal/model"
)

// deployFlags holds the flag values for the deploy command.
// These are bound to cobra flags in NewDeployCommand.
type deployFlags struct {
	noBuild bool          // --no-build: skip image building
	wait    time.Duration // --wait: override the settling pause
	waitSet bool          // whether --wait was given explicitly
	files   []string      // --file: override compose files
	project string        // --project: override compose project name
}

// NewDeployCommand creates the "deploy" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewDeployCommand() *cobra.Command {
	flags := &deployFlags{}

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Build and launch the service stack",
		Long: `Build the stack's images and start all services with docker compose.

The command verifies the docker compose plugin and the Docker daemon
before touching anything, then builds, starts the services detached,
pauses briefly while they initialize, and prints a status table plus
the stack's endpoints and default credentials.

The first failing step aborts the deployment with that step's error.

Examples:
  stackctl deploy
  stackctl deploy --no-build
  stackctl deploy --wait 30s
  stackctl deploy --file docker-compose.yml --file docker-compose.prod.yml`,

		Args: cobra.NoArgs,

		// RunE is used instead of Run so we can return errors. Cobra
		// passes them to the Execute error handler in root.go.
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.waitSet = cmd.Flags().Changed("wait")
			return runDeploy(cmd.Context(), flags)
		},
	}

	cmd.Flags().BoolVar(&flags.noBuild, "no-build", false, "Start services without rebuilding images")
	cmd.Flags().DurationVar(&flags.wait, "wait", 15*time.Second, "Settling pause between startup and the status table")
	cmd.Flags().StringArrayVarP(&flags.files, "file", "f", nil, "Compose file (repeatable, overrides config)")
	cmd.Flags().StringVarP(&flags.project, "project", "p", "", "Compose project name (overrides config)")

	return cmd
}

// runDeploy is the main orchestration function for the deploy command.
// Every step must succeed before the next one runs; the first error
// aborts the whole deployment.
func runDeploy(ctx context.Context, flags *deployFlags) error {
	logger := Logger()

	// Step 1: Load configuration and apply flag overrides.
	cfg, err := loadConfigWithOverrides(flags.project, flags.files)
	if err != nil {
		return err
	}
	if flags.waitSet {
		cfg.Wait = flags.wait
	}
	logger.Debug().Str("project", cfg.Project).Strs("files", cfg.ComposeFiles).Msg("configuration loaded")

	// Step 2: Discover the service set from the compose files, so the
	// final table can show services that never produced a container.
	services, err := compose.DiscoverServices(cfg.ComposeFiles)
	if err != nil {
		return model.WrapCLIError(model.ExitConfigError, "cannot read compose files", err)
	}
	logger.Debug().Strs("services", services).Msg("services discovered")

	runner := compose.NewRunner(cfg.Project, cfg.ComposeFiles, ".", logger)

	// Step 3: Preflight. Nothing is built or started unless docker,
	// the compose plugin, and the daemon all check out.
	cli, err := preflight(ctx, runner)
	if err != nil {
		return err
	}
	defer func() { _ = cli.Close() }()

	// Step 4: Build images.
	if flags.noBuild {
		logger.Debug().Msg("skipping image build (--no-build)")
	} else {
		fmt.Println("Building images...")
		if err := runner.Build(ctx); err != nil {
			return err
		}
	}

	// Step 5: Start services detached.
	fmt.Println("Starting services...")
	if err := runner.Up(ctx); err != nil {
		return err
	}

	// Step 6: Settling pause. This is cosmetic — it gives services a
	// moment to come up so the status table is more informative. It is
	// interruptible by Ctrl-C and is NOT a readiness check.
	if cfg.Wait > 0 {
		fmt.Printf("Waiting %s for services to initialize...\n", cfg.Wait)
		if err := sleepCtx(ctx, cfg.Wait); err != nil {
			return model.WrapCLIError(model.ExitGeneralError, "interrupted while waiting", err)
		}
	}

	// Step 7: Render the status table and the endpoint banner.
	status, err := docker.StackStatus(ctx, cli, cfg.Project, services)
	if err != nil {
		return err
	}

	printDeployResult(status, cfg.Endpoints)
	return nil
}

// preflight verifies the container toolchain before any deployment
// step runs: the docker binary must be on PATH, "docker compose
// version" must succeed, and the Docker daemon must answer a ping.
// On success it returns a connected Docker client for the status step.
//
// Each failure produces a human-readable message and (via CLIError)
// exit status 1, with no compose invocation attempted.
func preflight(ctx context.Context, runner *compose.Runner) (*docker.Client, error) {
	logger := Logger()

	if _, err := exec.LookPath(runner.Binary()); err != nil {
		return nil, model.WrapCLIError(
			model.ExitDockerUnavailable,
			"docker is required but was not found on PATH",
			err,
		)
	}

	version, err := runner.Version(ctx)
	if err != nil {
		return nil, err // Version already returns a CLIError
	}
	logger.Debug().Str("version", version).Msg("compose plugin ok")

	cli, err := docker.NewClient()
	if err != nil {
		return nil, err
	}
	if err := cli.Ping(ctx); err != nil {
		_ = cli.Close()
		return nil, err
	}
	logger.Debug().Msg("docker daemon reachable")

	return cli, nil
}

// loadConfigWithOverrides loads the stackctl config from the working
// directory and applies the --project/--file flag overrides shared by
// several commands.
func loadConfigWithOverrides(project string, files []string) (*config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError, "failed to get current directory", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return nil, err // Load already returns a CLIError
	}

	if project != "" {
		cfg.Project = project
	}
	if len(files) > 0 {
		cfg.ComposeFiles = files
	}
	return cfg, nil
}

// sleepCtx pauses for d or until the context is cancelled, whichever
// comes first. Returns the context's error on cancellation.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// printDeployResult outputs the post-deploy summary: the status table
// followed by the endpoint banner, in text or JSON format.
func printDeployResult(status *model.StackStatus, endpoints []model.Endpoint) {
	if IsJSONOutput() {
		printStackJSON(status, endpoints)
		return
	}

	fmt.Println()
	fmt.Println("Deployment complete.")
	fmt.Println()
	printStatusTable(status)
	printEndpoints(endpoints)
}
