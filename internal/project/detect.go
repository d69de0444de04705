// Where: internal/project/detect.go
// What: Manifest-based project detection.
// Why: Classify a directory before any artifact is generated.
package project

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	flutterManifest = "pubspec.yaml"
	nodeManifest    = "package.json"
	pythonManifest  = "requirements.txt"

	nodeBuildCommand    = "npm run build"
	nodeBuildOutput     = "build"
	flutterBuildCommand = "flutter pub get"
	flutterBuildOutput  = "build/web"
	pythonBuildCommand  = "pip install -r requirements.txt"
	pythonBuildOutput   = "venv"
)

// Detector classifies project directories. Non-fatal problems, such as a
// malformed package.json, are reported through warnf.
type Detector struct {
	warnf func(string)
}

// NewDetector returns a Detector that reports warnings to warnf (may be nil).
func NewDetector(warnf func(string)) Detector {
	return Detector{warnf: warnf}
}

// Detect classifies root with a detector that drops warnings.
func Detect(root string) (Info, error) {
	return NewDetector(nil).Detect(root)
}

// Detect inspects root and returns its classification. The first matching
// manifest wins: pubspec.yaml, then package.json, then requirements.txt.
// An error is returned only for I/O failures; an unrecognized directory yields KindUnknown.
func (d Detector) Detect(root string) (Info, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return Info{}, fmt.Errorf("resolve project path: %w", err)
	}
	base := Info{
		Kind:     KindUnknown,
		Name:     filepath.Base(abs),
		RootPath: abs,
	}

	checks := []struct {
		manifest string
		detect   func(Info, string) (Info, error)
	}{
		{flutterManifest, d.detectFlutter},
		{nodeManifest, d.detectNode},
		{pythonManifest, d.detectPython},
	}

	for _, check := range checks {
		path := filepath.Join(abs, check.manifest)
		ok, err := fileExists(path)
		if err != nil {
			return Info{}, err
		}
		if ok {
			return check.detect(base, path)
		}
	}
	return base, nil
}

type pubspecManifest struct {
	Name string `yaml:"name"`
}

func (d Detector) detectFlutter(info Info, path string) (Info, error) {
	info.Kind = KindFlutter
	info.BuildCommand = flutterBuildCommand
	info.BuildOutputDir = flutterBuildOutput

	data, err := os.ReadFile(path)
	if err != nil {
		return Info{}, fmt.Errorf("read %s: %w", flutterManifest, err)
	}
	var manifest pubspecManifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		d.warn(fmt.Sprintf("could not parse %s: %v", path, err))
		return info, nil
	}
	if name := strings.TrimSpace(manifest.Name); name != "" {
		info.Name = name
	}
	return info, nil
}

// npmManifest keeps each field raw so one odd value, such as an object where
// a version string is expected, does not discard the rest of the file.
type npmManifest struct {
	Name            json.RawMessage `json:"name"`
	Dependencies    json.RawMessage `json:"dependencies"`
	DevDependencies json.RawMessage `json:"devDependencies"`
	Scripts         json.RawMessage `json:"scripts"`
}

func (d Detector) detectNode(info Info, path string) (Info, error) {
	info.Kind = KindNode
	info.BuildCommand = nodeBuildCommand
	info.BuildOutputDir = nodeBuildOutput
	info.Node = &NodePayload{
		Dependencies:    map[string]string{},
		DevDependencies: map[string]string{},
		Scripts:         map[string]string{},
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Info{}, fmt.Errorf("read %s: %w", nodeManifest, err)
	}
	var manifest npmManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		d.warn(fmt.Sprintf("could not parse %s, treating project as node: %v", path, err))
		return info, nil
	}

	var name string
	if json.Unmarshal(manifest.Name, &name) == nil && strings.TrimSpace(name) != "" {
		info.Name = strings.TrimSpace(name)
	}
	info.Node.Dependencies = d.manifestTable(path, "dependencies", manifest.Dependencies)
	info.Node.DevDependencies = d.manifestTable(path, "devDependencies", manifest.DevDependencies)
	info.Node.Scripts = d.manifestTable(path, "scripts", manifest.Scripts)
	_, info.Node.HasBuildScript = info.Node.Scripts["build"]

	_, inDeps := info.Node.Dependencies["react"]
	_, inDevDeps := info.Node.DevDependencies["react"]
	if inDeps || inDevDeps {
		info.Kind = KindReact
	}
	return info, nil
}

// manifestTable reads a package.json object field. String values are kept
// as-is and any other value as its JSON text. A field that is not an object
// is reported and treated as empty.
func (d Detector) manifestTable(path, field string, raw json.RawMessage) map[string]string {
	table := map[string]string{}
	if len(raw) == 0 || string(raw) == "null" {
		return table
	}
	var entries map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		d.warn(fmt.Sprintf("ignoring %q in %s: %v", field, path, err))
		return table
	}
	for key, value := range entries {
		var text string
		if err := json.Unmarshal(value, &text); err != nil {
			text = string(value)
		}
		table[key] = text
	}
	return table
}

func (d Detector) detectPython(info Info, path string) (Info, error) {
	info.Kind = KindPython
	info.BuildCommand = pythonBuildCommand
	info.BuildOutputDir = pythonBuildOutput

	data, err := os.ReadFile(path)
	if err != nil {
		return Info{}, fmt.Errorf("read %s: %w", pythonManifest, err)
	}
	requirements := []string{}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			requirements = append(requirements, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return Info{}, fmt.Errorf("scan %s: %w", pythonManifest, err)
	}
	info.Python = &PythonPayload{Requirements: requirements}
	return info, nil
}

func (d Detector) warn(msg string) {
	if d.warnf != nil {
		d.warnf(msg)
	}
}

func fileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	return !info.IsDir(), nil
}
