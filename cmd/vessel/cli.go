// Where: cmd/vessel/cli.go
// What: CLI dependency wiring helpers.
// Why: Centralize construction for testability.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/vessel-dev/vessel/internal/app"
	"github.com/vessel-dev/vessel/internal/engine"
	"github.com/vessel-dev/vessel/internal/interaction"
	"github.com/vessel-dev/vessel/internal/ui"
)

var newDockerClient = engine.NewDockerClient

// buildDependencies constructs the runtime dependencies required by the CLI.
// The Docker client is created lazily by the SDK and does not dial the daemon here.
// A client construction failure is kept in RuntimeErr so commands that never
// touch docker still run.
func buildDependencies() (app.Dependencies, io.Closer) {
	out := os.Stdout
	deps := app.Dependencies{
		Out:      out,
		Prompter: interaction.NewPrompter(os.Stdin, out),
	}
	client, err := newDockerClient()
	if err != nil {
		deps.RuntimeErr = fmt.Errorf("create docker client: %w", err)
		return deps, nil
	}
	deps.Runtime = engine.NewGateway(engine.ExecRunner{}, client, ui.New(out))
	return deps, asCloser(client)
}

// asCloser attempts to cast the Docker client to an io.Closer.
// Returns nil if the client does not implement the Closer interface.
func asCloser(client engine.DockerClient) io.Closer {
	if closer, ok := client.(io.Closer); ok {
		return closer
	}
	return nil
}
