// Where: internal/app/build.go
// What: Build command handler.
// Why: Write container artifacts for a project without touching docker.
package app

import (
	"io"
	"strings"

	"github.com/vessel-dev/vessel/internal/workflows"
)

// runBuild executes the 'build' command.
func runBuild(cli CLI, deps Dependencies, out io.Writer) int {
	cfg, err := loadConfig(deps)
	if err != nil {
		return exitWithError(out, err)
	}
	ui := newUI(cli, out)

	outputDir := strings.TrimSpace(cli.Build.Output)
	if outputDir == "" {
		outputDir = cfg.Defaults.OutputDir
	}

	ui.Step("Starting vessel build for " + cli.Build.ProjectPath)
	workflow := workflows.NewBuildWorkflow(resolveDetector(deps, ui), ui)
	if _, err := workflow.Run(workflows.BuildRequest{
		ProjectDir: cli.Build.ProjectPath,
		OutputDir:  outputDir,
		Options:    generatorOptions(cfg),
	}); err != nil {
		return exitWithError(out, err)
	}
	return 0
}
