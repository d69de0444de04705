// Where: internal/app/deploy.go
// What: Deploy command handler.
// Why: Build and run a project container, then report where it is served.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/vessel-dev/vessel/internal/engine"
	"github.com/vessel-dev/vessel/internal/generator"
	"github.com/vessel-dev/vessel/internal/ports"
	"github.com/vessel-dev/vessel/internal/project"
	"github.com/vessel-dev/vessel/internal/workflows"
)

// runDeploy executes the 'deploy' command.
func runDeploy(cli CLI, deps Dependencies, out io.Writer) int {
	runtime, err := requireRuntime(deps, "deploy")
	if err != nil {
		return exitWithError(out, err)
	}
	cfg, err := loadConfig(deps)
	if err != nil {
		return exitWithError(out, err)
	}
	ui := newUI(cli, out)

	port := cli.Deploy.Port
	if port == 0 {
		port = cfg.Defaults.Port
	}
	if port < 1 || port > 65535 {
		return exitWithError(out, fmt.Errorf("invalid port: %d (expected 1-65535)", port))
	}
	if _, err := project.ValidateRoot(cli.Deploy.ProjectPath); err != nil {
		return exitWithError(out, err)
	}

	ctx, stop := commandContext(deps)
	defer stop()

	workflow := workflows.NewDeployWorkflow(resolveDetector(deps, ui), runtime, ui)
	result, err := workflow.Run(ctx, workflows.DeployRequest{
		ProjectDir: cli.Deploy.ProjectPath,
		HostPort:   port,
		Name:       cli.Deploy.Name,
		Options:    generatorOptions(cfg),
		Verbose:    cli.Deploy.Verbose,
	})
	if err != nil {
		return reportDeployFailure(ui, result, err)
	}

	ui.Block("🚀", "Deployed", []ports.KeyValue{
		{Key: "Project", Value: fmt.Sprintf("%s (%s)", result.Info.Name, result.Info.Kind)},
		{Key: "Image", Value: result.Image},
		{Key: "Container", Value: result.Container},
		{Key: "URL", Value: result.URL},
	})
	ui.Success("Your application is running at " + result.URL)
	return 0
}

func reportDeployFailure(ui ports.UserInterface, result workflows.DeployResult, err error) int {
	switch {
	case errors.Is(err, context.Canceled):
		ui.Error("Deploy interrupted; temporary files were cleaned up.")
	case errors.Is(err, engine.ErrUnavailable):
		ui.Error("Docker is not available. Install or start Docker and try again.")
	case errors.Is(err, project.ErrUnknownKind):
		ui.Error(fmt.Sprintf("Cannot deploy %s: could not determine the project type.", result.Info.Name))
	case errors.Is(err, generator.ErrUnsupportedKind):
		ui.Error(fmt.Sprintf("Cannot deploy %s: no container template for %s projects.", result.Info.Name, result.Info.Kind))
	default:
		ui.Error("Deploy failed: " + err.Error())
	}
	return 1
}
