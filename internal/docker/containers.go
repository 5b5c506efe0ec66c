// containers.go implements discovery of a deployed stack's containers.
// All inspection is keyed on the labels docker compose applies to
// every container it creates:
//
//	com.docker.compose.project  — the stack (project) name
//	com.docker.compose.service  — the service within the stack
//
// No state is kept by this tool; the status table is reconstructed
// from these labels on every invocation.
package docker

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"

	"github.com/pixel-money/stackctl/internal/model"
)

// Compose-applied container labels used for stack discovery.
const (
	LabelComposeProject = "com.docker.compose.project"
	LabelComposeService = "com.docker.compose.service"
)

// ListStackContainers queries the Docker daemon for all containers
// belonging to the given compose project, including stopped ones.
// A service that crashed right after "up -d" still has an exited
// container, and the status table must show it rather than silently
// omit it.
func ListStackContainers(ctx context.Context, cli *Client, project string) ([]model.ServiceInfo, error) {
	// Filter server-side on the project label; this is cheaper than
	// listing every container on the host and filtering in Go.
	filterArgs := filters.NewArgs(
		filters.Arg("label", LabelComposeProject+"="+project),
	)

	containers, err := cli.Inner().ContainerList(ctx, container.ListOptions{
		All:     true,
		Filters: filterArgs,
	})
	if err != nil {
		return nil, model.WrapCLIError(
			model.ExitDockerUnavailable,
			"failed to list Docker containers",
			err,
		)
	}

	result := make([]model.ServiceInfo, 0, len(containers))
	for _, c := range containers {
		result = append(result, containerToInfo(c))
	}

	return result, nil
}

// containerToInfo converts a Docker API container struct to the domain
// ServiceInfo. This is a pure mapping function with no side effects.
func containerToInfo(c types.Container) model.ServiceInfo {
	// Docker returns names as a slice where each entry has a leading
	// "/" that is an artifact of the API, not meaningful to users.
	name := ""
	if len(c.Names) > 0 {
		name = strings.TrimPrefix(c.Names[0], "/")
	}

	return model.ServiceInfo{
		Service:       c.Labels[LabelComposeService],
		ContainerID:   c.ID,
		ContainerName: name,
		State:         model.ParseServiceState(c.State),
		Status:        c.Status,
		Ports:         formatPorts(c.Ports),
	}
}

// formatPorts renders the Docker API port list as sorted
// "host->container/proto" strings. Unpublished ports (PublicPort == 0)
// render as "container/proto" only. Duplicate entries — Docker reports
// one entry per bound interface — are collapsed.
func formatPorts(ports []types.Port) []string {
	seen := make(map[string]struct{}, len(ports))
	out := make([]string, 0, len(ports))

	for _, p := range ports {
		var s string
		if p.PublicPort != 0 {
			s = fmt.Sprintf("%d->%d/%s", p.PublicPort, p.PrivatePort, p.Type)
		} else {
			s = fmt.Sprintf("%d/%s", p.PrivatePort, p.Type)
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	sort.Strings(out)
	return out
}

// StackStatus assembles the per-service status view for a project.
// Services are sorted by name; the expected list (discovered from the
// compose files) injects placeholder rows for services that have no
// container at all, so a service that never started is visible in the
// table instead of missing from it.
func StackStatus(ctx context.Context, cli *Client, project string, expected []string) (*model.StackStatus, error) {
	infos, err := ListStackContainers(ctx, cli, project)
	if err != nil {
		return nil, err
	}

	return assembleStatus(project, infos, expected), nil
}

// assembleStatus merges the discovered containers with the expected
// service list into a sorted StackStatus. Pure function, split out of
// StackStatus for testability without a Docker daemon.
func assembleStatus(project string, infos []model.ServiceInfo, expected []string) *model.StackStatus {
	present := make(map[string]struct{}, len(infos))
	for _, info := range infos {
		present[info.Service] = struct{}{}
	}

	for _, svc := range expected {
		if _, ok := present[svc]; ok {
			continue
		}
		infos = append(infos, model.ServiceInfo{
			Service: svc,
			State:   model.StateUnknown,
			Status:  "no container",
		})
	}

	sort.Slice(infos, func(i, j int) bool {
		if infos[i].Service != infos[j].Service {
			return infos[i].Service < infos[j].Service
		}
		// A service may scale to multiple containers; keep replica
		// rows in a stable order.
		return infos[i].ContainerName < infos[j].ContainerName
	})

	return &model.StackStatus{Project: project, Services: infos}
}
