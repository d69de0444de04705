// Where: internal/workflows/steps.go
// What: Named pipeline steps and the step-scoped error.
// Why: Failures report which step stopped the pipeline.
package workflows

import (
	"fmt"

	"github.com/vessel-dev/vessel/internal/project"
)

// Step names one stage of the deploy pipeline.
type Step string

const (
	StepCheckRuntime   Step = "check-runtime"
	StepDetect         Step = "detect"
	StepGenerate       Step = "generate"
	StepWriteArtifacts Step = "write-artifacts"
	StepBuild          Step = "build"
	StepReconcile      Step = "reconcile-existing-container"
	StepRun            Step = "run"
	StepCleanup        Step = "cleanup"
	StepDone           Step = "done"
	StepFailed         Step = "failed"
)

// StepError wraps the error that moved the pipeline into StepFailed.
type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// unknownProject stops a pipeline before an unclassified project reaches the generator.
func unknownProject(info project.Info) error {
	return fmt.Errorf("%w: no package.json, requirements.txt or pubspec.yaml in %s", project.ErrUnknownKind, info.RootPath)
}
