// Where: internal/engine/docker.go
// What: Docker SDK client subset and container queries.
// Why: Exact-name lookups and listings are structured data, not CLI text.
package engine

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/client"
)

// DockerClient defines the subset of Docker SDK methods used by this package.
type DockerClient interface {
	ContainerList(ctx context.Context, options container.ListOptions) ([]container.Summary, error)
	ContainerRemove(ctx context.Context, containerID string, options container.RemoveOptions) error
}

// NewDockerClient constructs a Docker SDK client using environment defaults.
// It does not contact the daemon.
func NewDockerClient() (DockerClient, error) {
	return client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
}

// Container is one row of the container listing.
type Container struct {
	ID     string
	Name   string
	Image  string
	State  string
	Status string
	Ports  string
}

// findContainer returns the ID of the container named exactly name.
// The daemon's name filter is a substring match, so results are re-checked.
func findContainer(ctx context.Context, cli DockerClient, name string) (string, bool, error) {
	args := filters.NewArgs()
	args.Add("name", name)

	containers, err := cli.ContainerList(ctx, container.ListOptions{All: true, Filters: args})
	if err != nil {
		return "", false, err
	}
	for _, ctr := range containers {
		for _, candidate := range ctr.Names {
			if strings.TrimPrefix(candidate, "/") == name {
				return ctr.ID, true, nil
			}
		}
	}
	return "", false, nil
}

func toContainer(ctr container.Summary) Container {
	name := ""
	if len(ctr.Names) > 0 {
		name = strings.TrimPrefix(ctr.Names[0], "/")
	}
	return Container{
		ID:     ctr.ID,
		Name:   name,
		Image:  ctr.Image,
		State:  ctr.State,
		Status: ctr.Status,
		Ports:  formatPorts(ctr.Ports),
	}
}

// formatPorts renders published ports the way `docker ps` does.
func formatPorts(ports []container.Port) string {
	if len(ports) == 0 {
		return ""
	}
	parts := make([]string, 0, len(ports))
	seen := map[string]struct{}{}
	for _, port := range ports {
		var entry string
		if port.PublicPort != 0 {
			ip := port.IP
			if ip == "" {
				ip = "0.0.0.0"
			}
			entry = fmt.Sprintf("%s:%d->%d/%s", ip, port.PublicPort, port.PrivatePort, port.Type)
		} else {
			entry = fmt.Sprintf("%d/%s", port.PrivatePort, port.Type)
		}
		if _, ok := seen[entry]; ok {
			continue
		}
		seen[entry] = struct{}{}
		parts = append(parts, entry)
	}
	sort.Strings(parts)
	return strings.Join(parts, ", ")
}
