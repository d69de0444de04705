// Where: internal/workflows/workflow_helpers_test.go
// What: Test helpers and stub ports for workflow unit tests.
// Why: Keep workflow tests focused on orchestration behavior without docker.
package workflows

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vessel-dev/vessel/internal/engine"
	"github.com/vessel-dev/vessel/internal/ports"
)

type testBlock struct {
	title string
	rows  []ports.KeyValue
}

type testUI struct {
	steps     []string
	infos     []string
	warns     []string
	errors    []string
	successes []string
	blocks    []testBlock
	tables    [][][]string
}

func (u *testUI) Step(msg string)    { u.steps = append(u.steps, msg) }
func (u *testUI) Info(msg string)    { u.infos = append(u.infos, msg) }
func (u *testUI) Warn(msg string)    { u.warns = append(u.warns, msg) }
func (u *testUI) Error(msg string)   { u.errors = append(u.errors, msg) }
func (u *testUI) Success(msg string) { u.successes = append(u.successes, msg) }

func (u *testUI) Block(_, title string, rows []ports.KeyValue) {
	u.blocks = append(u.blocks, testBlock{title: title, rows: rows})
}

func (u *testUI) Table(_ []string, rows [][]string) {
	u.tables = append(u.tables, rows)
}

// recordRuntime is a scripted ContainerRuntime.
type recordRuntime struct {
	available  bool
	buildErr   error
	removeErr  error
	startErr   error
	stopErr    error
	existing   bool
	containers []engine.Container

	calls    []string
	builds   []engine.BuildRequest
	starts   []engine.RunRequest
	stopped  []string
	onBuild  func(req engine.BuildRequest)
	listArgs []bool
	// blockBuild makes Build wait for cancellation like a long docker build.
	blockBuild bool
}

func (r *recordRuntime) EnsureAvailable(context.Context) bool {
	r.calls = append(r.calls, "ensure")
	return r.available
}

func (r *recordRuntime) Build(ctx context.Context, req engine.BuildRequest) error {
	r.calls = append(r.calls, "build")
	r.builds = append(r.builds, req)
	if r.onBuild != nil {
		r.onBuild(req)
	}
	if r.blockBuild {
		<-ctx.Done()
		return errors.New("signal: killed")
	}
	return r.buildErr
}

func (r *recordRuntime) RemoveExisting(context.Context, string) (bool, error) {
	r.calls = append(r.calls, "remove")
	if r.removeErr != nil {
		return false, r.removeErr
	}
	return r.existing, nil
}

func (r *recordRuntime) Start(_ context.Context, req engine.RunRequest) error {
	r.calls = append(r.calls, "start")
	r.starts = append(r.starts, req)
	return r.startErr
}

func (r *recordRuntime) Stop(_ context.Context, name string) error {
	r.calls = append(r.calls, "stop")
	r.stopped = append(r.stopped, name)
	return r.stopErr
}

func (r *recordRuntime) List(_ context.Context, all bool) ([]engine.Container, error) {
	r.calls = append(r.calls, "list")
	r.listArgs = append(r.listArgs, all)
	return r.containers, nil
}

type scriptedPrompter struct {
	index  int
	err    error
	labels []string
}

func (p *scriptedPrompter) SelectIndex(_ string, labels []string) (int, error) {
	p.labels = labels
	return p.index, p.err
}

func writeProjectFile(t *testing.T, dir, name, contents string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}
