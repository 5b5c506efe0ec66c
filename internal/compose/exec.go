// exec.go implements the docker compose process invocations used by the
// deploy, down, and logs commands.
//
// Two invocation styles exist:
//   - streaming (Build, Up, Down, Logs): stdout/stderr are wired to the
//     parent's streams so the operator sees compose output live, exactly
//     as the original deployment workflow did.
//   - captured (Version): output is collected and returned, used by the
//     preflight check to verify the compose plugin works at all.
package compose

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pixel-money/stackctl/internal/model"
)

// Runner executes docker compose subcommands for a single project.
// The zero value is not usable; construct it with NewRunner.
type Runner struct {
	// project is the compose project name passed via -p. Empty means
	// compose derives the project name from the working directory.
	project string

	// files are the compose YAML paths passed via -f, merged by
	// compose in order with later files taking precedence.
	files []string

	// dir is the working directory for compose invocations. Relative
	// paths inside the YAML files resolve against it.
	dir string

	// binary is the container CLI to invoke. Overridable in tests;
	// always "docker" in production use.
	binary string

	logger zerolog.Logger
}

// NewRunner creates a Runner for the given project name and compose
// files, executing in dir.
func NewRunner(project string, files []string, dir string, logger zerolog.Logger) *Runner {
	return &Runner{
		project: project,
		files:   files,
		dir:     dir,
		binary:  "docker",
		logger:  logger,
	}
}

// Binary returns the container CLI binary name this runner invokes.
// The preflight check uses it for PATH lookups.
func (r *Runner) Binary() string {
	return r.binary
}

// args constructs the common argument prefix for a compose subcommand:
// "compose [-p project] [-f file]... <sub...>".
func (r *Runner) args(sub ...string) []string {
	args := make([]string, 0, len(r.files)*2+len(sub)+3)
	args = append(args, "compose")
	if r.project != "" {
		args = append(args, "-p", r.project)
	}
	for _, f := range r.files {
		args = append(args, "-f", f)
	}
	return append(args, sub...)
}

// Version runs "docker compose version" and returns the first line of
// its output. Failure here means the compose plugin is missing or
// non-functional, which the preflight check translates into the
// "orchestrator unavailable" error before any deployment step runs.
func (r *Runner) Version(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, r.binary, "compose", "version")
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", model.WrapCLIError(
			model.ExitDockerUnavailable,
			"docker compose is not functional",
			fmt.Errorf("%w: %s", err, strings.TrimSpace(string(out))),
		)
	}

	line := strings.TrimSpace(string(out))
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	return line, nil
}

// Build runs "docker compose build", streaming output to the terminal.
func (r *Runner) Build(ctx context.Context) error {
	return r.stream(ctx, r.args("build")...)
}

// Up runs "docker compose up -d". The -d flag runs containers detached
// so the CLI regains control once services are started.
func (r *Runner) Up(ctx context.Context) error {
	return r.stream(ctx, r.args("up", "-d")...)
}

// Down runs "docker compose down", optionally removing named and
// anonymous volumes with -v for a complete cleanup.
func (r *Runner) Down(ctx context.Context, removeVolumes bool) error {
	sub := []string{"down"}
	if removeVolumes {
		sub = append(sub, "-v")
	}
	return r.stream(ctx, r.args(sub...)...)
}

// Logs runs "docker compose logs" for the given services (all services
// when none are named). tail limits output to the last N lines per
// container when non-empty; follow keeps streaming until interrupted.
func (r *Runner) Logs(ctx context.Context, services []string, tail string, follow bool) error {
	sub := []string{"logs"}
	if follow {
		sub = append(sub, "-f")
	}
	if tail != "" {
		sub = append(sub, "--tail", tail)
	}
	sub = append(sub, services...)
	return r.stream(ctx, r.args(sub...)...)
}

// stream executes the binary with the given arguments, inheriting the
// parent's stdio. On a non-zero exit the child's code is preserved in
// the returned CLIError so the process can propagate it (the original
// scripts terminated with the first failing command's status).
func (r *Runner) stream(ctx context.Context, args ...string) error {
	r.logger.Debug().Str("cmd", r.binary+" "+strings.Join(args, " ")).Msg("exec")

	cmd := exec.CommandContext(ctx, r.binary, args...)
	cmd.Dir = r.dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = os.Environ()
	if r.project != "" {
		// Some compose-adjacent tooling reads the project name from
		// the environment rather than -p.
		cmd.Env = append(cmd.Env, "COMPOSE_PROJECT_NAME="+r.project)
	}

	err := cmd.Run()
	if err == nil {
		return nil
	}

	return model.PropagateExit(
		ExitCode(ctx, err),
		fmt.Sprintf("docker %s failed", strings.Join(args, " ")),
		err,
	)
}

// ExitCode extracts a process exit status from an exec error. Context
// deadline expiry maps to 124, mirroring the timeout(1) convention;
// anything else that is not an *exec.ExitError maps to 1.
func ExitCode(ctx context.Context, err error) int {
	if ee, ok := err.(*exec.ExitError); ok {
		return ee.ExitCode()
	}
	if ctx.Err() == context.DeadlineExceeded {
		return 124
	}
	return 1
}
