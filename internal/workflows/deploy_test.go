// Where: internal/workflows/deploy_test.go
// What: Unit tests for DeployWorkflow.
// Why: Lock in step order, failure handling and cleanup.
package workflows

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/vessel-dev/vessel/internal/engine"
	"github.com/vessel-dev/vessel/internal/ports"
	"github.com/vessel-dev/vessel/internal/project"
)

func reactProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeProjectFile(t, root, "package.json", `{"name": "Shop", "dependencies": {"react": "^18.0.0"}}`)
	return root
}

func newDeployWorkflow(t *testing.T, runtime *recordRuntime, ui *testUI) (DeployWorkflow, *string) {
	t.Helper()
	scratchParent := t.TempDir()
	var scratch string
	workflow := NewDeployWorkflow(ports.DetectorFunc(project.Detect), runtime, ui)
	workflow.MkdirTemp = func(_, pattern string) (string, error) {
		dir, err := os.MkdirTemp(scratchParent, pattern)
		scratch = dir
		return dir, err
	}
	return workflow, &scratch
}

func TestDeployWorkflowHappyPath(t *testing.T) {
	root := reactProject(t)
	runtime := &recordRuntime{available: true, existing: true}
	ui := &testUI{}
	workflow, scratch := newDeployWorkflow(t, runtime, ui)

	proxyPath := filepath.Join(root, ".vessel-nginx.conf")
	runtime.onBuild = func(req engine.BuildRequest) {
		if _, err := os.Stat(req.ContainerFile); err != nil {
			t.Errorf("container file must exist during build: %v", err)
		}
		data, err := os.ReadFile(proxyPath)
		if err != nil {
			t.Errorf("proxy config must exist during build: %v", err)
		}
		if !strings.Contains(string(data), "listen 80;") {
			t.Errorf("unexpected proxy config: %s", data)
		}
	}

	result, err := workflow.Run(context.Background(), DeployRequest{ProjectDir: root, HostPort: 8080})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	wantSteps := []Step{
		StepCheckRuntime, StepDetect, StepGenerate, StepWriteArtifacts,
		StepBuild, StepReconcile, StepRun, StepCleanup, StepDone,
	}
	if !reflect.DeepEqual(result.Steps, wantSteps) {
		t.Fatalf("unexpected steps: %v", result.Steps)
	}
	if result.FinalStep() != StepDone {
		t.Fatalf("expected done, got %s", result.FinalStep())
	}
	if !reflect.DeepEqual(runtime.calls, []string{"ensure", "build", "remove", "start"}) {
		t.Fatalf("unexpected runtime calls: %v", runtime.calls)
	}
	if result.Container != "shop" || result.Image != "vessel-shop:latest" {
		t.Fatalf("unexpected names: %s %s", result.Container, result.Image)
	}
	if result.URL != "http://localhost:8080" || !result.Replaced {
		t.Fatalf("unexpected result: %#v", result)
	}

	build := runtime.builds[0]
	if build.ContextDir != root {
		t.Fatalf("expected project root as build context, got %s", build.ContextDir)
	}
	if filepath.Dir(build.ContainerFile) != *scratch {
		t.Fatalf("expected container file in scratch dir, got %s", build.ContainerFile)
	}
	start := runtime.starts[0]
	if start != (engine.RunRequest{Name: "shop", Image: "vessel-shop:latest", HostPort: 8080}) {
		t.Fatalf("unexpected run request: %#v", start)
	}

	if _, err := os.Stat(*scratch); !os.IsNotExist(err) {
		t.Fatalf("scratch dir must be removed, stat err=%v", err)
	}
	if _, err := os.Stat(proxyPath); !os.IsNotExist(err) {
		t.Fatalf("proxy config must be removed, stat err=%v", err)
	}
}

func TestDeployWorkflowRuntimeUnavailable(t *testing.T) {
	root := reactProject(t)
	runtime := &recordRuntime{available: false}
	workflow, scratch := newDeployWorkflow(t, runtime, &testUI{})

	result, err := workflow.Run(context.Background(), DeployRequest{ProjectDir: root, HostPort: 80})
	if !errors.Is(err, engine.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if !reflect.DeepEqual(result.Steps, []Step{StepCheckRuntime, StepCleanup, StepFailed}) {
		t.Fatalf("unexpected steps: %v", result.Steps)
	}
	if !reflect.DeepEqual(runtime.calls, []string{"ensure"}) {
		t.Fatalf("unexpected runtime calls: %v", runtime.calls)
	}
	if *scratch != "" {
		t.Fatalf("scratch dir must not be created")
	}
}

func TestDeployWorkflowUnknownKindWritesNothing(t *testing.T) {
	root := t.TempDir()
	runtime := &recordRuntime{available: true}
	workflow, scratch := newDeployWorkflow(t, runtime, &testUI{})

	result, err := workflow.Run(context.Background(), DeployRequest{ProjectDir: root, HostPort: 80})
	if !errors.Is(err, project.ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
	want := []Step{StepCheckRuntime, StepDetect, StepCleanup, StepFailed}
	if !reflect.DeepEqual(result.Steps, want) {
		t.Fatalf("generator must not run for an unknown project: %v", result.Steps)
	}
	if *scratch != "" {
		t.Fatalf("no scratch dir expected")
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatalf("read root: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("project root must stay untouched, found %d entries", len(entries))
	}
	if !reflect.DeepEqual(runtime.calls, []string{"ensure"}) {
		t.Fatalf("no build or run expected: %v", runtime.calls)
	}
}

func TestDeployWorkflowBuildFailureCleansUp(t *testing.T) {
	root := reactProject(t)
	runtime := &recordRuntime{available: true, buildErr: errors.New("npm ERR!")}
	workflow, scratch := newDeployWorkflow(t, runtime, &testUI{})

	result, err := workflow.Run(context.Background(), DeployRequest{ProjectDir: root, HostPort: 80})
	var stepErr *StepError
	if !errors.As(err, &stepErr) || stepErr.Step != StepBuild {
		t.Fatalf("expected build failure, got %v", err)
	}
	if !reflect.DeepEqual(runtime.calls, []string{"ensure", "build"}) {
		t.Fatalf("reconcile and run must not happen: %v", runtime.calls)
	}
	if result.Steps[len(result.Steps)-2] != StepCleanup {
		t.Fatalf("cleanup must run before failed: %v", result.Steps)
	}
	if _, err := os.Stat(*scratch); !os.IsNotExist(err) {
		t.Fatalf("scratch dir must be removed")
	}
	if _, err := os.Stat(filepath.Join(root, ".vessel-nginx.conf")); !os.IsNotExist(err) {
		t.Fatalf("proxy config must be removed")
	}
}

func TestDeployWorkflowCancelledMidBuildCleansUp(t *testing.T) {
	root := reactProject(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	runtime := &recordRuntime{available: true, blockBuild: true}
	proxyPath := filepath.Join(root, ".vessel-nginx.conf")
	runtime.onBuild = func(engine.BuildRequest) {
		if _, err := os.Stat(proxyPath); err != nil {
			t.Errorf("proxy config must exist during build: %v", err)
		}
		go cancel()
	}
	workflow, scratch := newDeployWorkflow(t, runtime, &testUI{})

	result, err := workflow.Run(ctx, DeployRequest{ProjectDir: root, HostPort: 80})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	var stepErr *StepError
	if !errors.As(err, &stepErr) || stepErr.Step != StepBuild {
		t.Fatalf("expected failure at build, got %v", err)
	}
	want := []Step{StepCheckRuntime, StepDetect, StepGenerate, StepWriteArtifacts, StepBuild, StepCleanup, StepFailed}
	if !reflect.DeepEqual(result.Steps, want) {
		t.Fatalf("unexpected steps: %v", result.Steps)
	}
	if _, err := os.Stat(proxyPath); !os.IsNotExist(err) {
		t.Fatalf("proxy config must be removed after interrupt, stat err=%v", err)
	}
	if _, err := os.Stat(*scratch); !os.IsNotExist(err) {
		t.Fatalf("scratch dir must be removed after interrupt, stat err=%v", err)
	}
}

func TestDeployWorkflowRestoresExistingProxyFile(t *testing.T) {
	root := reactProject(t)
	writeProjectFile(t, root, ".vessel-nginx.conf", "# mine\n")
	runtime := &recordRuntime{available: true}
	workflow, _ := newDeployWorkflow(t, runtime, &testUI{})

	if _, err := workflow.Run(context.Background(), DeployRequest{ProjectDir: root, HostPort: 80}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(root, ".vessel-nginx.conf"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "# mine\n" {
		t.Fatalf("expected original contents restored, got %q", data)
	}
}

func TestDeployWorkflowNameOverrideAndUserNginxConf(t *testing.T) {
	root := reactProject(t)
	writeProjectFile(t, root, "nginx.conf", "user config\n")
	runtime := &recordRuntime{available: true}
	workflow, _ := newDeployWorkflow(t, runtime, &testUI{})

	result, err := workflow.Run(context.Background(), DeployRequest{ProjectDir: root, HostPort: 3000, Name: "storefront"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Image != "vessel-storefront:latest" || runtime.starts[0].Name != "storefront" {
		t.Fatalf("expected name override, got %#v", result)
	}
	data, err := os.ReadFile(filepath.Join(root, "nginx.conf"))
	if err != nil || string(data) != "user config\n" {
		t.Fatalf("user nginx.conf must be untouched: %q, %v", data, err)
	}
}

func TestDeployWorkflowRunFailure(t *testing.T) {
	root := reactProject(t)
	runtime := &recordRuntime{available: true, startErr: errors.New("port is already allocated")}
	workflow, _ := newDeployWorkflow(t, runtime, &testUI{})

	_, err := workflow.Run(context.Background(), DeployRequest{ProjectDir: root, HostPort: 80})
	var stepErr *StepError
	if !errors.As(err, &stepErr) || stepErr.Step != StepRun {
		t.Fatalf("expected run failure, got %v", err)
	}
	if !strings.Contains(err.Error(), "port is already allocated") {
		t.Fatalf("expected engine error text, got %v", err)
	}
}

func TestDeployWorkflowRejectsInvalidInput(t *testing.T) {
	runtime := &recordRuntime{available: true}
	workflow, _ := newDeployWorkflow(t, runtime, &testUI{})

	if _, err := workflow.Run(context.Background(), DeployRequest{ProjectDir: t.TempDir(), HostPort: 0}); err == nil {
		t.Fatalf("expected port validation error")
	}
	_, err := workflow.Run(context.Background(), DeployRequest{ProjectDir: filepath.Join(t.TempDir(), "nope"), HostPort: 80})
	if !errors.Is(err, project.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
	if len(runtime.calls) != 0 {
		t.Fatalf("no runtime calls expected: %v", runtime.calls)
	}
}

func TestImageName(t *testing.T) {
	if got := ImageName("shop"); got != "vessel-shop:latest" {
		t.Fatalf("unexpected image name: %s", got)
	}
}
