// Where: cmd/vessel/main.go
// What: CLI entrypoint.
// Why: Execute vessel commands with configured dependencies.
package main

import (
	"os"

	"github.com/vessel-dev/vessel/internal/app"
)

func main() {
	deps, closer := buildDependencies()
	code := app.Run(os.Args[1:], deps)
	if closer != nil {
		_ = closer.Close()
	}
	os.Exit(code)
}
