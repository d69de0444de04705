// Where: internal/app/deps.go
// What: Resolve per-command collaborators from Dependencies.
// Why: Handlers share one place for production fallbacks.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/vessel-dev/vessel/internal/config"
	"github.com/vessel-dev/vessel/internal/generator"
	"github.com/vessel-dev/vessel/internal/interaction"
	"github.com/vessel-dev/vessel/internal/ports"
	"github.com/vessel-dev/vessel/internal/project"
)

func newUI(cli CLI, out io.Writer) ports.UserInterface {
	if cli.NoEmoji || !emojiCapable(out) {
		return ports.NewPlainUI(out)
	}
	return ports.NewConsoleUI(out)
}

// emojiCapable is false for files that are not terminals, so redirected
// output stays plain. Other writers keep emoji.
func emojiCapable(out io.Writer) bool {
	if file, ok := out.(*os.File); ok {
		return interaction.IsTerminal(file)
	}
	return true
}

// requireRuntime returns the container runtime for commands that drive docker.
func requireRuntime(deps Dependencies, command string) (ports.ContainerRuntime, error) {
	if deps.Runtime != nil {
		return deps.Runtime, nil
	}
	if deps.RuntimeErr != nil {
		return nil, fmt.Errorf("%s: container runtime unavailable: %w", command, deps.RuntimeErr)
	}
	return nil, fmt.Errorf("%s: container runtime not configured", command)
}

// commandContext is cancelled on SIGINT or SIGTERM so running docker
// processes are killed and deferred cleanup still runs.
func commandContext(deps Dependencies) (context.Context, context.CancelFunc) {
	parent := deps.Context
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func loadConfig(deps Dependencies) (config.GlobalConfig, error) {
	if deps.LoadConfig != nil {
		cfg, err := deps.LoadConfig()
		if err != nil {
			return config.GlobalConfig{}, err
		}
		return cfg.WithDefaults(), nil
	}
	return config.Load()
}

func resolveDetector(deps Dependencies, ui ports.UserInterface) ports.ProjectDetector {
	if deps.Detector != nil {
		return deps.Detector
	}
	return project.NewDetector(ui.Warn)
}

func generatorOptions(cfg config.GlobalConfig) generator.Options {
	return generator.Options{
		Images: generator.ImageOptions{
			Node:    cfg.Images.Node,
			Nginx:   cfg.Images.Nginx,
			Flutter: cfg.Images.Flutter,
		},
	}
}
