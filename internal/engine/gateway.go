// Where: internal/engine/gateway.go
// What: Container runtime gateway over the docker CLI and SDK.
// Why: Give the deploy workflow one synchronous surface for build/run/stop/list.
package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/docker/docker/api/types/container"
	"github.com/vessel-dev/vessel/internal/ui"
)

// ErrUnavailable reports that the container runtime is missing or not running.
var ErrUnavailable = errors.New("docker is not available")

const dockerBinary = "docker"

// CommandError carries the output of a failed docker invocation.
type CommandError struct {
	Command string
	Output  string
	Err     error
}

func (e *CommandError) Error() string {
	if e.Output == "" {
		return fmt.Sprintf("%s failed: %v", e.Command, e.Err)
	}
	return fmt.Sprintf("%s failed: %v: %s", e.Command, e.Err, e.Output)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// BuildRequest describes one image build.
type BuildRequest struct {
	Image         string
	ContextDir    string
	ContainerFile string
	Verbose       bool
}

// RunRequest describes one detached container start.
type RunRequest struct {
	Name     string
	Image    string
	HostPort int
}

// Gateway drives the local container runtime.
type Gateway struct {
	runner          CommandRunner
	client          DockerClient
	ui              ui.UserInterface
	readProcVersion func() ([]byte, error)
}

// NewGateway wires a gateway. out may be nil when no console output is wanted.
func NewGateway(runner CommandRunner, client DockerClient, out ui.UserInterface) *Gateway {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Gateway{
		runner: runner,
		client: client,
		ui:     out,
		readProcVersion: func() ([]byte, error) {
			return os.ReadFile("/proc/version")
		},
	}
}

// IsInstalled reports whether the docker CLI answers a version probe.
func (g *Gateway) IsInstalled(ctx context.Context) bool {
	return g.runner.RunQuiet(ctx, "", dockerBinary, "--version") == nil
}

// IsRunning reports whether the docker daemon answers an info probe.
func (g *Gateway) IsRunning(ctx context.Context) bool {
	return g.runner.RunQuiet(ctx, "", dockerBinary, "info") == nil
}

// Build runs `docker build` with contextDir as the build context.
func (g *Gateway) Build(ctx context.Context, req BuildRequest) error {
	if strings.TrimSpace(req.Image) == "" {
		return fmt.Errorf("image name is required")
	}
	if strings.TrimSpace(req.ContextDir) == "" {
		return fmt.Errorf("build context is required")
	}

	args := []string{"build", "-t", req.Image}
	if req.ContainerFile != "" {
		args = append(args, "-f", req.ContainerFile)
	}
	args = append(args, req.ContextDir)

	if req.Verbose {
		if err := g.runner.Run(ctx, req.ContextDir, dockerBinary, args...); err != nil {
			return &CommandError{Command: "docker build", Err: err}
		}
		return nil
	}
	output, err := g.runner.RunOutput(ctx, req.ContextDir, dockerBinary, args...)
	if err != nil {
		return &CommandError{Command: "docker build", Output: strings.TrimSpace(string(output)), Err: err}
	}
	return nil
}

// Exists reports whether a container named exactly name exists in any state.
func (g *Gateway) Exists(ctx context.Context, name string) (bool, error) {
	if g.client == nil {
		return false, fmt.Errorf("docker client is not configured")
	}
	_, found, err := findContainer(ctx, g.client, name)
	if err != nil {
		return false, fmt.Errorf("inspect container %s: %w", name, err)
	}
	return found, nil
}

// RemoveExisting force-removes the container named name if present.
func (g *Gateway) RemoveExisting(ctx context.Context, name string) (bool, error) {
	if g.client == nil {
		return false, fmt.Errorf("docker client is not configured")
	}
	id, found, err := findContainer(ctx, g.client, name)
	if err != nil {
		return false, fmt.Errorf("inspect container %s: %w", name, err)
	}
	if !found {
		return false, nil
	}
	if err := g.client.ContainerRemove(ctx, id, container.RemoveOptions{Force: true}); err != nil {
		return false, fmt.Errorf("remove container %s: %w", name, err)
	}
	return true, nil
}

// Start launches a detached container publishing HostPort to port 80.
func (g *Gateway) Start(ctx context.Context, req RunRequest) error {
	if err := validateRunRequest(req); err != nil {
		return err
	}
	args := []string{
		"run", "-d",
		"--name", req.Name,
		"-p", fmt.Sprintf("%d:80", req.HostPort),
		"--restart", "unless-stopped",
		req.Image,
	}
	output, err := g.runner.RunOutput(ctx, "", dockerBinary, args...)
	if err != nil {
		return &CommandError{Command: "docker run", Output: strings.TrimSpace(string(output)), Err: err}
	}
	return nil
}

// Run replaces any container with the same name and starts a new one.
func (g *Gateway) Run(ctx context.Context, req RunRequest) error {
	if err := validateRunRequest(req); err != nil {
		return err
	}
	if _, err := g.RemoveExisting(ctx, req.Name); err != nil {
		return err
	}
	return g.Start(ctx, req)
}

// Stop stops the container named name.
func (g *Gateway) Stop(ctx context.Context, name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("container name is required")
	}
	output, err := g.runner.RunOutput(ctx, "", dockerBinary, "stop", name)
	if err != nil {
		return &CommandError{Command: "docker stop", Output: strings.TrimSpace(string(output)), Err: err}
	}
	return nil
}

// List returns containers in engine order. all includes stopped containers.
func (g *Gateway) List(ctx context.Context, all bool) ([]Container, error) {
	if g.client == nil {
		return nil, fmt.Errorf("docker client is not configured")
	}
	summaries, err := g.client.ContainerList(ctx, container.ListOptions{All: all})
	if err != nil {
		return nil, fmt.Errorf("list containers: %w", err)
	}
	result := make([]Container, 0, len(summaries))
	for _, summary := range summaries {
		result = append(result, toContainer(summary))
	}
	return result, nil
}

func validateRunRequest(req RunRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("container name is required")
	}
	if strings.TrimSpace(req.Image) == "" {
		return fmt.Errorf("image name is required")
	}
	if req.HostPort < 1 || req.HostPort > 65535 {
		return fmt.Errorf("invalid host port: %d", req.HostPort)
	}
	return nil
}
