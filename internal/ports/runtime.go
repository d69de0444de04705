// Where: internal/ports/runtime.go
// What: Container runtime port definitions.
// Why: Let workflows drive docker without depending on the gateway type.
package ports

import (
	"context"

	"github.com/vessel-dev/vessel/internal/engine"
)

// ContainerRuntime is the subset of the engine gateway used by workflows.
type ContainerRuntime interface {
	EnsureAvailable(ctx context.Context) bool
	Build(ctx context.Context, req engine.BuildRequest) error
	RemoveExisting(ctx context.Context, name string) (bool, error)
	Start(ctx context.Context, req engine.RunRequest) error
	Stop(ctx context.Context, name string) error
	List(ctx context.Context, all bool) ([]engine.Container, error)
}

// Prompter picks one entry from a list of labels.
type Prompter interface {
	// SelectIndex returns the zero-based index of the chosen label.
	SelectIndex(title string, labels []string) (int, error)
}
