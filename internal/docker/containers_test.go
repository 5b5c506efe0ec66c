package docker

import (
	"testing"

	"github.com/docker/docker/api/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixel-money/stackctl/internal/model"
)

// TestContainerToInfo verifies the mapping from the Docker API
// container struct to the domain ServiceInfo, including name prefix
// stripping and compose label extraction.
func TestContainerToInfo(t *testing.T) {
	c := types.Container{
		ID:     "abc123",
		Names:  []string{"/pixel-money-gateway-1"},
		State:  "running",
		Status: "Up 20 seconds",
		Labels: map[string]string{
			LabelComposeProject: "pixel-money",
			LabelComposeService: "gateway",
		},
		Ports: []types.Port{
			{PrivatePort: 8080, PublicPort: 8080, Type: "tcp"},
		},
	}

	info := containerToInfo(c)

	assert.Equal(t, "gateway", info.Service)
	assert.Equal(t, "abc123", info.ContainerID)
	assert.Equal(t, "pixel-money-gateway-1", info.ContainerName)
	assert.Equal(t, model.StateRunning, info.State)
	assert.Equal(t, "Up 20 seconds", info.Status)
	assert.Equal(t, []string{"8080->8080/tcp"}, info.Ports)
}

// TestContainerToInfo_NoNames verifies the mapping tolerates a
// container without names (possible mid-removal).
func TestContainerToInfo_NoNames(t *testing.T) {
	info := containerToInfo(types.Container{ID: "x", State: "exited"})
	assert.Equal(t, "", info.ContainerName)
	assert.Equal(t, model.StateExited, info.State)
}

// TestFormatPorts verifies published/unpublished rendering, duplicate
// collapsing, and sorted output.
func TestFormatPorts(t *testing.T) {
	tests := []struct {
		name  string
		ports []types.Port
		want  []string
	}{
		{
			name:  "empty",
			ports: nil,
			want:  []string{},
		},
		{
			name: "published port",
			ports: []types.Port{
				{PrivatePort: 8000, PublicPort: 8001, Type: "tcp"},
			},
			want: []string{"8001->8000/tcp"},
		},
		{
			name: "unpublished port",
			ports: []types.Port{
				{PrivatePort: 9042, Type: "tcp"},
			},
			want: []string{"9042/tcp"},
		},
		{
			name: "duplicates per bound interface collapse",
			ports: []types.Port{
				{IP: "0.0.0.0", PrivatePort: 8080, PublicPort: 8080, Type: "tcp"},
				{IP: "::", PrivatePort: 8080, PublicPort: 8080, Type: "tcp"},
			},
			want: []string{"8080->8080/tcp"},
		},
		{
			name: "mixed ports sorted",
			ports: []types.Port{
				{PrivatePort: 9042, Type: "tcp"},
				{PrivatePort: 3000, PublicPort: 3000, Type: "tcp"},
			},
			want: []string{"3000->3000/tcp", "9042/tcp"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatPorts(tt.ports))
		})
	}
}

// TestAssembleStatus verifies merging discovered containers with the
// expected service list: placeholder rows for absent services, sorting
// by service then container name.
func TestAssembleStatus(t *testing.T) {
	infos := []model.ServiceInfo{
		{Service: "gateway", ContainerName: "pixel-money-gateway-1", State: model.StateRunning},
		{Service: "auth", ContainerName: "pixel-money-auth-1", State: model.StateExited},
	}
	expected := []string{"auth", "gateway", "ledger"}

	status := assembleStatus("pixel-money", infos, expected)

	require.Len(t, status.Services, 3)
	assert.Equal(t, "pixel-money", status.Project)

	// Sorted by service name, with a placeholder for the missing one.
	assert.Equal(t, "auth", status.Services[0].Service)
	assert.Equal(t, "gateway", status.Services[1].Service)
	assert.Equal(t, "ledger", status.Services[2].Service)
	assert.Equal(t, model.StateUnknown, status.Services[2].State)
	assert.Equal(t, "no container", status.Services[2].Status)

	assert.Equal(t, 1, status.Running())
}

// TestAssembleStatus_Replicas verifies stable ordering when a service
// scales to multiple containers.
func TestAssembleStatus_Replicas(t *testing.T) {
	infos := []model.ServiceInfo{
		{Service: "worker", ContainerName: "pixel-money-worker-2", State: model.StateRunning},
		{Service: "worker", ContainerName: "pixel-money-worker-1", State: model.StateRunning},
	}

	status := assembleStatus("pixel-money", infos, nil)

	require.Len(t, status.Services, 2)
	assert.Equal(t, "pixel-money-worker-1", status.Services[0].ContainerName)
	assert.Equal(t, "pixel-money-worker-2", status.Services[1].ContainerName)
}
