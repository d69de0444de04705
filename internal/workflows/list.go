// Where: internal/workflows/list.go
// What: List workflow.
// Why: Render every container as a NAME/STATUS/PORTS table.
package workflows

import (
	"context"
	"errors"

	"github.com/vessel-dev/vessel/internal/engine"
	"github.com/vessel-dev/vessel/internal/ports"
)

// ListWorkflow prints all containers known to the runtime.
type ListWorkflow struct {
	Runtime       ports.ContainerRuntime
	UserInterface ports.UserInterface
}

// NewListWorkflow constructs a ListWorkflow.
func NewListWorkflow(runtime ports.ContainerRuntime, ui ports.UserInterface) ListWorkflow {
	return ListWorkflow{Runtime: runtime, UserInterface: ui}
}

// Run lists running and stopped containers in engine order.
func (w ListWorkflow) Run(ctx context.Context) ([]engine.Container, error) {
	if w.Runtime == nil {
		return nil, errors.New("container runtime not configured")
	}
	containers, err := w.Runtime.List(ctx, true)
	if err != nil {
		return nil, err
	}
	if w.UserInterface == nil {
		return containers, nil
	}
	if len(containers) == 0 {
		w.UserInterface.Info("No containers found.")
		return containers, nil
	}
	rows := make([][]string, 0, len(containers))
	for _, ctr := range containers {
		rows = append(rows, []string{ctr.Name, ctr.Status, ctr.Ports})
	}
	w.UserInterface.Table([]string{"NAME", "STATUS", "PORTS"}, rows)
	return containers, nil
}
