// Where: internal/app/detect.go
// What: Detect command handler.
// Why: Inspect a project's classification without generating files.
package app

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/vessel-dev/vessel/internal/ports"
	"github.com/vessel-dev/vessel/internal/project"
	"sigs.k8s.io/yaml"
)

// DetectCmd prints the detected project info.
type DetectCmd struct {
	ProjectPath string `arg:"" name:"project_path" help:"Path to the project"`
	Format      string `short:"f" enum:"text,json,yaml" default:"text" help:"Output format (text, json, yaml)"`
}

func runDetect(cli CLI, deps Dependencies, out io.Writer) int {
	root, err := project.ValidateRoot(cli.Detect.ProjectPath)
	if err != nil {
		return exitWithError(out, err)
	}
	ui := newUI(cli, out)
	info, err := resolveDetector(deps, ui).Detect(root)
	if err != nil {
		return exitWithError(out, err)
	}

	switch cli.Detect.Format {
	case "json":
		data, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return exitWithError(out, err)
		}
		fmt.Fprintln(out, string(data))
	case "yaml":
		data, err := yaml.Marshal(info)
		if err != nil {
			return exitWithError(out, err)
		}
		fmt.Fprint(out, string(data))
	default:
		ui.Block("🔍", "Project", detectRows(info))
	}
	return 0
}

func detectRows(info project.Info) []ports.KeyValue {
	rows := []ports.KeyValue{
		{Key: "Kind", Value: info.Kind},
		{Key: "Name", Value: info.Name},
		{Key: "Root", Value: info.RootPath},
	}
	if info.BuildCommand != "" {
		rows = append(rows, ports.KeyValue{Key: "Build command", Value: info.BuildCommand})
	}
	if info.BuildOutputDir != "" {
		rows = append(rows, ports.KeyValue{Key: "Build output", Value: info.BuildOutputDir})
	}
	if info.Node != nil {
		rows = append(rows,
			ports.KeyValue{Key: "Dependencies", Value: len(info.Node.Dependencies)},
			ports.KeyValue{Key: "Dev dependencies", Value: len(info.Node.DevDependencies)},
			ports.KeyValue{Key: "Build script", Value: info.Node.HasBuildScript},
		)
	}
	if info.Python != nil && len(info.Python.Requirements) > 0 {
		rows = append(rows, ports.KeyValue{Key: "Requirements", Value: strings.Join(info.Python.Requirements, ", ")})
	}
	if info.Kind.Known() {
		rows = append(rows, ports.KeyValue{Key: "Container", Value: info.ContainerName()})
	}
	return rows
}
