// Where: internal/workflows/stop.go
// What: Stop workflow orchestration.
// Why: Keep CLI adapter minimal while preserving stop behavior.
package workflows

import (
	"context"
	"errors"
	"fmt"

	"github.com/vessel-dev/vessel/internal/interaction"
	"github.com/vessel-dev/vessel/internal/ports"
)

// StopRequest names the container to stop. An empty Name triggers a prompt.
type StopRequest struct {
	Name string
}

// StopResult reports which container was stopped, if any.
type StopResult struct {
	Stopped string
	Aborted bool
}

// StopWorkflow orchestrates a stop request.
type StopWorkflow struct {
	Runtime       ports.ContainerRuntime
	Prompter      ports.Prompter
	UserInterface ports.UserInterface
}

// NewStopWorkflow constructs a StopWorkflow.
func NewStopWorkflow(runtime ports.ContainerRuntime, prompter ports.Prompter, ui ports.UserInterface) StopWorkflow {
	return StopWorkflow{
		Runtime:       runtime,
		Prompter:      prompter,
		UserInterface: ui,
	}
}

// Run executes the workflow.
func (w StopWorkflow) Run(ctx context.Context, req StopRequest) (StopResult, error) {
	if w.Runtime == nil {
		return StopResult{}, errors.New("container runtime not configured")
	}

	name := req.Name
	if name == "" {
		containers, err := w.Runtime.List(ctx, false)
		if err != nil {
			return StopResult{}, err
		}
		if len(containers) == 0 {
			w.info("No running containers found.")
			return StopResult{}, nil
		}
		if w.Prompter == nil {
			return StopResult{}, errors.New("container name is required")
		}

		labels := make([]string, 0, len(containers))
		for _, ctr := range containers {
			labels = append(labels, fmt.Sprintf("%s (%s)", ctr.Name, ctr.Status))
		}
		index, err := w.Prompter.SelectIndex("Select a container to stop", labels)
		if errors.Is(err, interaction.ErrAborted) {
			w.info("Aborted.")
			return StopResult{Aborted: true}, nil
		}
		if err != nil {
			return StopResult{}, err
		}
		if index < 0 || index >= len(containers) {
			return StopResult{}, fmt.Errorf("selection out of range: %d", index)
		}
		name = containers[index].Name
	}

	if err := w.Runtime.Stop(ctx, name); err != nil {
		return StopResult{}, err
	}
	if w.UserInterface != nil {
		w.UserInterface.Success("Stopped container " + name)
	}
	return StopResult{Stopped: name}, nil
}

func (w StopWorkflow) info(msg string) {
	if w.UserInterface != nil {
		w.UserInterface.Info(msg)
	}
}
