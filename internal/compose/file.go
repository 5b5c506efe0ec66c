// file.go parses compose YAML files to discover the service names a
// stack defines. The deploy summary uses the discovered set to order
// its status table and to flag services that never produced a
// container (e.g. a service whose image failed to start and was
// removed before the table was rendered).
package compose

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// composeFile is the minimal subset of the compose YAML schema this
// tool reads. Everything else (build contexts, networks, volumes,
// depends_on ordering) belongs to docker compose and is deliberately
// not modeled here.
type composeFile struct {
	Services map[string]struct{} `yaml:"services"`
}

// DiscoverServices reads the given compose files and returns the union
// of their service names, sorted. Later files in the list may add
// services (compose merge semantics); removal is not possible in
// compose overrides, so a plain union is correct.
//
// A missing or unreadable file is an error: the deploy command calls
// this before invoking compose, and a bad -f path should surface as a
// clear message instead of a compose stack trace.
func DiscoverServices(files []string) ([]string, error) {
	seen := make(map[string]struct{})

	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read compose file %s: %w", path, err)
		}

		var cf composeFile
		if err := yaml.Unmarshal(data, &cf); err != nil {
			return nil, fmt.Errorf("parse compose file %s: %w", path, err)
		}

		for name := range cf.Services {
			seen[name] = struct{}{}
		}
	}

	services := make([]string, 0, len(seen))
	for name := range seen {
		services = append(services, name)
	}
	sort.Strings(services)
	return services, nil
}
