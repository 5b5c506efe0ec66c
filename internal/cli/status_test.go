// Package cli — status_test.go contains unit tests for the pure
// formatting functions used by the status and deploy summaries.
//
// These tests verify data transformation logic without requiring a
// Docker daemon or any external dependencies.
package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixel-money/stackctl/internal/model"
)

// TestFormatPorts verifies the port column renderer used by the status
// table.
func TestFormatPorts(t *testing.T) {
	tests := []struct {
		name  string
		ports []string
		want  string
	}{
		{
			name:  "empty ports returns dash",
			ports: []string{},
			want:  "-",
		},
		{
			name:  "nil ports returns dash",
			ports: nil,
			want:  "-",
		},
		{
			name:  "single port",
			ports: []string{"8080->8080/tcp"},
			want:  "8080->8080/tcp",
		},
		{
			name:  "multiple ports joined with commas",
			ports: []string{"3000->3000/tcp", "9042/tcp"},
			want:  "3000->3000/tcp,9042/tcp",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPorts(tt.ports))
		})
	}
}

// TestStackJSON_Shape verifies the JSON summary structure: counts,
// empty-slice (not null) semantics, and field naming.
func TestStackJSON_Shape(t *testing.T) {
	status := &model.StackStatus{
		Project: "pixel-money",
		Services: []model.ServiceInfo{
			{Service: "gateway", State: model.StateRunning, Status: "Up 20 seconds"},
			{Service: "ledger", State: model.StateExited, Status: "Exited (1) 5 seconds ago"},
		},
	}
	endpoints := []model.Endpoint{
		{Name: "API Gateway", URL: "http://localhost:8080"},
	}

	result := stackJSON{
		Project:   status.Project,
		Running:   status.Running(),
		Total:     len(status.Services),
		Services:  append([]model.ServiceInfo{}, status.Services...),
		Endpoints: append([]model.Endpoint{}, endpoints...),
	}

	data, err := json.Marshal(result)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "pixel-money", decoded["project"])
	assert.Equal(t, float64(1), decoded["running"])
	assert.Equal(t, float64(2), decoded["total"])

	services, ok := decoded["services"].([]interface{})
	require.True(t, ok)
	require.Len(t, services, 2)

	first, ok := services[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "gateway", first["service"])
	assert.Equal(t, "running", first["state"])

	// An empty stack must serialize as [] rather than null.
	empty := stackJSON{Services: []model.ServiceInfo{}, Endpoints: []model.Endpoint{}}
	data, err = json.Marshal(empty)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"services":[]`)
	assert.Contains(t, string(data), `"endpoints":[]`)
}
