// Where: internal/engine/setup.go
// What: Runtime availability check and the WSL2 guided install.
// Why: Deploy needs a running daemon before it touches the project.
package engine

import (
	"context"
	"strings"
)

const (
	getDockerURL        = "https://docs.docker.com/get-docker/"
	manualUbuntuInstall = "https://docs.docker.com/engine/install/ubuntu/"
	dockerKeyring       = "/usr/share/keyrings/docker-archive-keyring.gpg"
)

type installStep struct {
	label string
	name  string
	args  []string
}

func wslInstallSteps() []installStep {
	return []installStep{
		{"Updating package index", "sudo", []string{"apt", "update"}},
		{"Installing prerequisites", "sudo", []string{
			"apt", "install", "-y",
			"apt-transport-https", "ca-certificates", "curl", "software-properties-common", "gnupg",
		}},
		{"Adding Docker's GPG key", "sh", []string{"-c",
			"curl -fsSL https://download.docker.com/linux/ubuntu/gpg | sudo gpg --batch --yes --dearmor -o " + dockerKeyring,
		}},
		{"Registering the Docker repository", "sh", []string{"-c",
			`echo "deb [arch=amd64 signed-by=` + dockerKeyring + `] https://download.docker.com/linux/ubuntu $(lsb_release -cs) stable" | sudo tee /etc/apt/sources.list.d/docker.list > /dev/null`,
		}},
		{"Updating package index", "sudo", []string{"apt", "update"}},
		{"Installing Docker Engine", "sudo", []string{"apt", "install", "-y", "docker-ce", "docker-ce-cli", "containerd.io"}},
		{"Starting the Docker service", "sudo", []string{"service", "docker", "start"}},
		{"Verifying the installation", dockerBinary, []string{"run", "hello-world"}},
	}
}

// IsWSL2 reports whether the host kernel identifies itself as WSL2.
func (g *Gateway) IsWSL2() bool {
	if g.readProcVersion == nil {
		return false
	}
	data, err := g.readProcVersion()
	if err != nil {
		return false
	}
	return strings.Contains(string(data), "WSL2")
}

// EnsureAvailable makes sure the runtime is installed and running.
// On WSL2 it installs or starts docker; elsewhere it only reports.
func (g *Gateway) EnsureAvailable(ctx context.Context) bool {
	if !g.IsWSL2() {
		if !g.IsInstalled(ctx) {
			g.warn("Docker is not installed.")
			g.info("Visit " + getDockerURL + " to install Docker for your platform.")
			return false
		}
		if !g.IsRunning(ctx) {
			g.warn("Docker is installed but the daemon is not running. Start Docker and try again.")
			return false
		}
		return true
	}

	if !g.IsInstalled(ctx) {
		g.info("Docker is not installed. Installing Docker Engine for WSL2...")
		return g.installOnWSL(ctx)
	}
	if g.IsRunning(ctx) {
		return true
	}
	g.step("Starting the Docker service")
	if err := g.runner.Run(ctx, "", "sudo", "service", "docker", "start"); err != nil {
		g.fail("Failed to start Docker: " + err.Error())
		return false
	}
	return true
}

func (g *Gateway) installOnWSL(ctx context.Context) bool {
	for _, step := range wslInstallSteps() {
		g.step(step.label)
		if err := g.runner.Run(ctx, "", step.name, step.args...); err != nil {
			g.fail(step.label + " failed: " + err.Error())
			g.info("Install Docker manually: " + manualUbuntuInstall)
			return false
		}
	}
	g.success("Docker installed")
	return true
}

func (g *Gateway) step(msg string) {
	if g.ui != nil {
		g.ui.Step(msg)
	}
}

func (g *Gateway) info(msg string) {
	if g.ui != nil {
		g.ui.Info(msg)
	}
}

func (g *Gateway) warn(msg string) {
	if g.ui != nil {
		g.ui.Warn(msg)
	}
}

func (g *Gateway) fail(msg string) {
	if g.ui != nil {
		g.ui.Error(msg)
	}
}

func (g *Gateway) success(msg string) {
	if g.ui != nil {
		g.ui.Success(msg)
	}
}
