// Where: internal/ports/detector.go
// What: Project detector port.
// Why: Share the detector contract between app and workflows.
package ports

import "github.com/vessel-dev/vessel/internal/project"

// ProjectDetector classifies a project directory.
type ProjectDetector interface {
	Detect(root string) (project.Info, error)
}

// DetectorFunc adapts a plain function to ProjectDetector.
type DetectorFunc func(root string) (project.Info, error)

func (f DetectorFunc) Detect(root string) (project.Info, error) {
	return f(root)
}
