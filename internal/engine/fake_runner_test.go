package engine

import (
	"context"
	"strings"
)

type fakeCall struct {
	dir  string
	name string
	args []string
}

func (c fakeCall) line() string {
	return strings.TrimSpace(c.name + " " + strings.Join(c.args, " "))
}

// fakeRunner records every invocation. Commands listed in failures fail with
// the mapped error; outputs supplies RunOutput bytes.
type fakeRunner struct {
	calls    []fakeCall
	failures map[string]error
	outputs  map[string]string
}

func (f *fakeRunner) record(dir, name string, args []string) error {
	call := fakeCall{dir: dir, name: name, args: append([]string{}, args...)}
	f.calls = append(f.calls, call)
	if err, ok := f.failures[call.line()]; ok {
		return err
	}
	return nil
}

func (f *fakeRunner) Run(_ context.Context, dir, name string, args ...string) error {
	return f.record(dir, name, args)
}

func (f *fakeRunner) RunOutput(_ context.Context, dir, name string, args ...string) ([]byte, error) {
	err := f.record(dir, name, args)
	return []byte(f.outputs[f.calls[len(f.calls)-1].line()]), err
}

func (f *fakeRunner) RunQuiet(_ context.Context, dir, name string, args ...string) error {
	return f.record(dir, name, args)
}

func (f *fakeRunner) lines() []string {
	out := make([]string, 0, len(f.calls))
	for _, call := range f.calls {
		out = append(out, call.line())
	}
	return out
}

type recordingUI struct {
	messages []string
}

func (r *recordingUI) Step(msg string)    { r.messages = append(r.messages, "step:"+msg) }
func (r *recordingUI) Info(msg string)    { r.messages = append(r.messages, "info:"+msg) }
func (r *recordingUI) Warn(msg string)    { r.messages = append(r.messages, "warn:"+msg) }
func (r *recordingUI) Error(msg string)   { r.messages = append(r.messages, "error:"+msg) }
func (r *recordingUI) Success(msg string) { r.messages = append(r.messages, "success:"+msg) }

func (r *recordingUI) contains(fragment string) bool {
	for _, msg := range r.messages {
		if strings.Contains(msg, fragment) {
			return true
		}
	}
	return false
}
