// Where: internal/app/stop.go
// What: Stop and list command handlers.
// Why: Thin adapters over the stop and list workflows.
package app

import (
	"io"
	"os"

	"github.com/vessel-dev/vessel/internal/interaction"
	"github.com/vessel-dev/vessel/internal/workflows"
)

// runStop executes the 'stop' command. Without a name it lists running
// containers and asks which one to stop.
func runStop(cli CLI, deps Dependencies, out io.Writer) int {
	runtime, err := requireRuntime(deps, "stop")
	if err != nil {
		return exitWithError(out, err)
	}
	prompter := deps.Prompter
	if prompter == nil {
		prompter = interaction.NewPrompter(os.Stdin, out)
	}

	ctx, stop := commandContext(deps)
	defer stop()

	workflow := workflows.NewStopWorkflow(runtime, prompter, newUI(cli, out))
	if _, err := workflow.Run(ctx, workflows.StopRequest{Name: cli.Stop.Name}); err != nil {
		return exitWithError(out, err)
	}
	return 0
}

// runList executes the 'list' command.
func runList(cli CLI, deps Dependencies, out io.Writer) int {
	runtime, err := requireRuntime(deps, "list")
	if err != nil {
		return exitWithError(out, err)
	}
	ctx, stop := commandContext(deps)
	defer stop()

	if _, err := workflows.NewListWorkflow(runtime, newUI(cli, out)).Run(ctx); err != nil {
		return exitWithError(out, err)
	}
	return 0
}
