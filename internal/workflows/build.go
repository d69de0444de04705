// Where: internal/workflows/build.go
// What: Build workflow orchestration.
// Why: Detect a project and write its artifacts without touching docker.
package workflows

import (
	"fmt"
	"path/filepath"

	"github.com/vessel-dev/vessel/internal/generator"
	"github.com/vessel-dev/vessel/internal/ports"
	"github.com/vessel-dev/vessel/internal/project"
)

// BuildRequest captures the inputs required to generate artifacts.
type BuildRequest struct {
	ProjectDir string
	OutputDir  string
	Options    generator.Options
}

// BuildResult reports what the build workflow produced.
type BuildResult struct {
	Info    project.Info
	Written []string
}

// BuildWorkflow runs Detect, Generate and WriteArtifacts into an output directory.
type BuildWorkflow struct {
	Detector      ports.ProjectDetector
	UserInterface ports.UserInterface
}

// NewBuildWorkflow constructs a BuildWorkflow.
func NewBuildWorkflow(detector ports.ProjectDetector, ui ports.UserInterface) BuildWorkflow {
	return BuildWorkflow{
		Detector:      detector,
		UserInterface: ui,
	}
}

// Run executes the build workflow. Nothing is written unless rendering succeeds.
func (w BuildWorkflow) Run(req BuildRequest) (BuildResult, error) {
	if w.Detector == nil {
		return BuildResult{}, fmt.Errorf("detector port is not configured")
	}
	root, err := project.ValidateRoot(req.ProjectDir)
	if err != nil {
		return BuildResult{}, err
	}

	info, err := w.Detector.Detect(root)
	if err != nil {
		return BuildResult{}, &StepError{Step: StepDetect, Err: err}
	}
	if !info.Kind.Known() {
		return BuildResult{Info: info}, &StepError{Step: StepDetect, Err: unknownProject(info)}
	}
	w.step(fmt.Sprintf("Detected %s project: %s", info.Kind, info.Name))

	outputDir, err := filepath.Abs(req.OutputDir)
	if err != nil {
		return BuildResult{Info: info}, fmt.Errorf("resolve output directory: %w", err)
	}
	artifacts, err := generator.Render(info, generator.LayoutIn(outputDir), req.Options)
	if err != nil {
		return BuildResult{Info: info}, &StepError{Step: StepGenerate, Err: err}
	}

	written, err := generator.Write(artifacts)
	if err != nil {
		return BuildResult{Info: info, Written: written}, &StepError{Step: StepWriteArtifacts, Err: err}
	}

	if w.UserInterface != nil {
		rows := make([]ports.KeyValue, 0, len(written))
		for _, artifact := range artifacts {
			rows = append(rows, ports.KeyValue{Key: string(artifact.Kind), Value: artifact.Path})
		}
		w.UserInterface.Block("📦", "Generated files", rows)
		w.UserInterface.Success("Build files written to " + outputDir)
	}
	return BuildResult{Info: info, Written: written}, nil
}

func (w BuildWorkflow) step(msg string) {
	if w.UserInterface != nil {
		w.UserInterface.Step(msg)
	}
}
