// Where: internal/workflows/deploy.go
// What: Deploy workflow orchestration.
// Why: Run the build-and-run pipeline as explicit steps with guaranteed cleanup.
package workflows

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vessel-dev/vessel/internal/engine"
	"github.com/vessel-dev/vessel/internal/generator"
	"github.com/vessel-dev/vessel/internal/meta"
	"github.com/vessel-dev/vessel/internal/ports"
	"github.com/vessel-dev/vessel/internal/project"
)

// DeployRequest captures the inputs required to run a deploy.
type DeployRequest struct {
	ProjectDir string
	HostPort   int
	Name       string
	Options    generator.Options
	Verbose    bool
}

// DeployResult reports how far the pipeline got and what it produced.
type DeployResult struct {
	Info      project.Info
	Image     string
	Container string
	HostPort  int
	URL       string
	Replaced  bool
	// Steps lists every step entered, in order, ending with StepDone or StepFailed.
	Steps []Step
}

// FinalStep returns the last step the pipeline reached.
func (r DeployResult) FinalStep() Step {
	if len(r.Steps) == 0 {
		return ""
	}
	return r.Steps[len(r.Steps)-1]
}

// DeployWorkflow executes the deploy orchestration steps.
type DeployWorkflow struct {
	Detector      ports.ProjectDetector
	Runtime       ports.ContainerRuntime
	UserInterface ports.UserInterface
	MkdirTemp     func(dir, pattern string) (string, error)
}

// NewDeployWorkflow constructs a DeployWorkflow.
func NewDeployWorkflow(detector ports.ProjectDetector, runtime ports.ContainerRuntime, ui ports.UserInterface) DeployWorkflow {
	return DeployWorkflow{
		Detector:      detector,
		Runtime:       runtime,
		UserInterface: ui,
		MkdirTemp:     os.MkdirTemp,
	}
}

// ImageName derives the image tag for a container name.
func ImageName(container string) string {
	return fmt.Sprintf("%s-%s:latest", meta.ImagePrefix, container)
}

// deployRun holds per-invocation state so Cleanup knows what to undo.
type deployRun struct {
	result     DeployResult
	scratchDir string
	proxyPath  string
	proxyPrev  []byte
	proxyOwned bool
	proxyTouch bool
}

func (r *deployRun) enter(step Step) {
	r.result.Steps = append(r.result.Steps, step)
}

// Run executes the workflow. Cleanup runs whether or not an earlier step failed.
func (w DeployWorkflow) Run(ctx context.Context, req DeployRequest) (DeployResult, error) {
	if w.Detector == nil {
		return DeployResult{}, fmt.Errorf("detector port is not configured")
	}
	if w.Runtime == nil {
		return DeployResult{}, fmt.Errorf("container runtime is not configured")
	}
	if req.HostPort < 1 || req.HostPort > 65535 {
		return DeployResult{}, fmt.Errorf("invalid port: %d", req.HostPort)
	}
	root, err := project.ValidateRoot(req.ProjectDir)
	if err != nil {
		return DeployResult{}, err
	}

	run := &deployRun{result: DeployResult{HostPort: req.HostPort}}
	err = w.pipeline(ctx, run, root, req)
	if err != nil {
		err = markInterrupted(ctx, err)
	}
	run.enter(StepCleanup)
	w.cleanup(run)
	if err != nil {
		run.enter(StepFailed)
		return run.result, err
	}
	run.enter(StepDone)
	return run.result, nil
}

// markInterrupted keeps the failing step but lets callers match the
// cancellation cause with errors.Is, since a killed docker process only
// reports its exit signal.
func markInterrupted(ctx context.Context, err error) error {
	cause := ctx.Err()
	if cause == nil || errors.Is(err, cause) {
		return err
	}
	var stepErr *StepError
	if errors.As(err, &stepErr) {
		return &StepError{Step: stepErr.Step, Err: fmt.Errorf("%w: %w", cause, stepErr.Err)}
	}
	return fmt.Errorf("%w: %w", cause, err)
}

func (w DeployWorkflow) pipeline(ctx context.Context, run *deployRun, root string, req DeployRequest) error {
	run.enter(StepCheckRuntime)
	w.step("Checking Docker")
	if !w.Runtime.EnsureAvailable(ctx) {
		return &StepError{Step: StepCheckRuntime, Err: engine.ErrUnavailable}
	}

	run.enter(StepDetect)
	info, err := w.Detector.Detect(root)
	if err != nil {
		return &StepError{Step: StepDetect, Err: err}
	}
	run.result.Info = info
	if !info.Kind.Known() {
		return &StepError{Step: StepDetect, Err: unknownProject(info)}
	}
	w.step(fmt.Sprintf("Detected %s project: %s", info.Kind, info.Name))

	container := req.Name
	if container == "" {
		container = info.ContainerName()
	}
	run.result.Container = container
	run.result.Image = ImageName(container)
	run.result.URL = fmt.Sprintf("http://localhost:%d", req.HostPort)

	run.enter(StepGenerate)
	layout := generator.Layout{
		ContainerFilePath: meta.ContainerFileName,
		ProxyConfigPath:   filepath.Join(root, meta.DeployProxyConfigName),
	}
	artifacts, err := generator.Render(info, layout, req.Options)
	if err != nil {
		return &StepError{Step: StepGenerate, Err: err}
	}

	run.enter(StepWriteArtifacts)
	containerFile, err := w.writeArtifacts(run, artifacts)
	if err != nil {
		return &StepError{Step: StepWriteArtifacts, Err: err}
	}

	run.enter(StepBuild)
	w.step("Building image " + run.result.Image)
	if err := w.Runtime.Build(ctx, engine.BuildRequest{
		Image:         run.result.Image,
		ContextDir:    root,
		ContainerFile: containerFile,
		Verbose:       req.Verbose,
	}); err != nil {
		return &StepError{Step: StepBuild, Err: err}
	}

	run.enter(StepReconcile)
	replaced, err := w.Runtime.RemoveExisting(ctx, container)
	if err != nil {
		return &StepError{Step: StepReconcile, Err: err}
	}
	run.result.Replaced = replaced
	if replaced {
		w.info("Removed existing container " + container)
	}

	run.enter(StepRun)
	w.step(fmt.Sprintf("Starting container %s on port %d", container, req.HostPort))
	if err := w.Runtime.Start(ctx, engine.RunRequest{
		Name:     container,
		Image:    run.result.Image,
		HostPort: req.HostPort,
	}); err != nil {
		return &StepError{Step: StepRun, Err: err}
	}
	return nil
}

// writeArtifacts places the container file in a scratch directory and the
// proxy config in the project root, where the build context can COPY it.
func (w DeployWorkflow) writeArtifacts(run *deployRun, artifacts []generator.Artifact) (string, error) {
	mkdirTemp := w.MkdirTemp
	if mkdirTemp == nil {
		mkdirTemp = os.MkdirTemp
	}
	scratch, err := mkdirTemp("", meta.ScratchPattern)
	if err != nil {
		return "", fmt.Errorf("create scratch directory: %w", err)
	}
	run.scratchDir = scratch

	containerFile := ""
	for i := range artifacts {
		switch artifacts[i].Kind {
		case generator.ArtifactContainerFile:
			artifacts[i].Path = filepath.Join(scratch, meta.ContainerFileName)
			containerFile = artifacts[i].Path
		case generator.ArtifactProxyConfig:
			if err := run.claimProxyPath(artifacts[i].Path); err != nil {
				return "", err
			}
		}
	}

	if _, err := generator.Write(artifacts); err != nil {
		return "", err
	}
	return containerFile, nil
}

// claimProxyPath remembers whether the proxy file existed so Cleanup can
// restore it instead of deleting a file it did not create.
func (r *deployRun) claimProxyPath(path string) error {
	r.proxyPath = path
	r.proxyTouch = true
	prev, err := os.ReadFile(path)
	switch {
	case err == nil:
		r.proxyPrev = prev
		r.proxyOwned = false
	case errors.Is(err, os.ErrNotExist):
		r.proxyOwned = true
	default:
		return fmt.Errorf("inspect %s: %w", path, err)
	}
	return nil
}

func (w DeployWorkflow) cleanup(run *deployRun) {
	if run.proxyTouch {
		if run.proxyOwned {
			if err := os.Remove(run.proxyPath); err != nil && !errors.Is(err, os.ErrNotExist) {
				w.warn(fmt.Sprintf("failed to remove %s: %v", run.proxyPath, err))
			}
		} else if err := os.WriteFile(run.proxyPath, run.proxyPrev, 0o644); err != nil {
			w.warn(fmt.Sprintf("failed to restore %s: %v", run.proxyPath, err))
		}
	}
	if run.scratchDir != "" {
		if err := os.RemoveAll(run.scratchDir); err != nil {
			w.warn(fmt.Sprintf("failed to remove %s: %v", run.scratchDir, err))
		}
	}
}

func (w DeployWorkflow) step(msg string) {
	if w.UserInterface != nil {
		w.UserInterface.Step(msg)
	}
}

func (w DeployWorkflow) info(msg string) {
	if w.UserInterface != nil {
		w.UserInterface.Info(msg)
	}
}

func (w DeployWorkflow) warn(msg string) {
	if w.UserInterface != nil {
		w.UserInterface.Warn(msg)
	}
}
