// Where: internal/project/project.go
// What: Project classification types.
// Why: Give detected projects a typed shape instead of an ad hoc map.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

const fallbackContainerName = "vessel-app"

// Docker names allow [a-zA-Z0-9][a-zA-Z0-9_.-]*.
var invalidNameChars = regexp.MustCompile(`[^a-z0-9_.-]+`)

// Kind is the closed set of project kinds the detector can report.
type Kind string

const (
	KindReact   Kind = "react"
	KindNode    Kind = "node"
	KindPython  Kind = "python"
	KindFlutter Kind = "flutter"
	KindUnknown Kind = "unknown"
)

func (k Kind) String() string {
	if k == "" {
		return string(KindUnknown)
	}
	return string(k)
}

// Known reports whether the kind resolved to something other than unknown.
func (k Kind) Known() bool {
	switch k {
	case KindReact, KindNode, KindPython, KindFlutter:
		return true
	default:
		return false
	}
}

var (
	ErrNotExist     = errors.New("project path does not exist")
	ErrNotDirectory = errors.New("project path is not a directory")
	ErrUnknownKind  = errors.New("could not determine project type")
)

// Info is the detector's result: a common header plus a kind-specific payload.
// Node is set for react and node projects, Python for python projects.
type Info struct {
	Kind           Kind           `json:"kind"`
	Name           string         `json:"name"`
	RootPath       string         `json:"rootPath"`
	BuildCommand   string         `json:"buildCommand,omitempty"`
	BuildOutputDir string         `json:"buildOutputDir,omitempty"`
	Node           *NodePayload   `json:"node,omitempty"`
	Python         *PythonPayload `json:"python,omitempty"`
}

// NodePayload carries package.json data for react and node projects.
type NodePayload struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
	Scripts         map[string]string `json:"scripts"`
	HasBuildScript  bool              `json:"hasBuildScript"`
}

// PythonPayload carries requirements.txt entries.
type PythonPayload struct {
	Requirements []string `json:"requirements"`
}

// ContainerName derives the default container name from the project name:
// lower-cased, spaces replaced by hyphens.
func (i Info) ContainerName() string {
	name := strings.TrimSpace(i.Name)
	if name == "" {
		name = filepath.Base(i.RootPath)
	}
	name = invalidNameChars.ReplaceAllString(strings.ToLower(name), "-")
	name = strings.TrimLeft(name, "-_.")
	if name == "" {
		return fallbackContainerName
	}
	return name
}

// ValidateRoot resolves path to an absolute directory or reports why it cannot be used.
func ValidateRoot(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("%w: empty path", ErrNotExist)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve project path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrNotExist, abs)
		}
		return "", fmt.Errorf("stat project path: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrNotDirectory, abs)
	}
	return abs, nil
}
