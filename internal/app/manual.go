// Where: internal/app/manual.go
// What: The manual page.
// Why: Long-form usage that does not fit in kong's --help output.
package app

import (
	"fmt"
	"io"
)

const manualText = `Vessel CLI Manual
------------------------------
Usage:
    vessel build <project_path> [-o DIR]
    vessel deploy <project_path> [-p PORT] [--name NAME]
    vessel stop [NAME]
    vessel list
    vessel detect <project_path> [--format text|json|yaml]
    vessel config show|path|set <key> <value>
    vessel manual
    vessel version

Description:
    Vessel turns an existing project into a production container.
      1. Validates that the project directory exists.
      2. Detects the project kind from its manifest
         (pubspec.yaml, package.json, requirements.txt).
      3. Generates a Dockerfile and, for web projects, an nginx config.
      4. deploy: builds the image and runs it with docker, replacing any
         container with the same name.

Examples:
    vessel build ./my-react-app
    vessel deploy ./my-react-app --port 8080
    vessel stop my-react-app

Notes:
    - Docker must be installed and running for deploy, stop and list.
      On WSL2, vessel offers to install and start Docker for you.
    - Defaults live in ~/.vessel/config.yaml.
`

func runManual(_ CLI, _ Dependencies, out io.Writer) int {
	fmt.Fprint(out, manualText)
	return 0
}
