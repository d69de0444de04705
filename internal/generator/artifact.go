// Where: internal/generator/artifact.go
// What: Rendered artifacts and the write step.
// Why: Keep rendering separate from file I/O.
package generator

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vessel-dev/vessel/internal/meta"
	"github.com/vessel-dev/vessel/internal/project"
)

// ArtifactKind identifies what an artifact is used for.
type ArtifactKind string

const (
	ArtifactContainerFile ArtifactKind = "container-build-file"
	ArtifactProxyConfig   ArtifactKind = "proxy-config"
)

// Artifact is a rendered file waiting to be written. It has no identity beyond Path.
type Artifact struct {
	Kind    ArtifactKind
	Path    string
	Content string
}

// Layout decides where each artifact lands.
type Layout struct {
	ContainerFilePath string
	ProxyConfigPath   string
}

// LayoutIn places both artifacts side by side in dir.
func LayoutIn(dir string) Layout {
	return Layout{
		ContainerFilePath: filepath.Join(dir, meta.ContainerFileName),
		ProxyConfigPath:   filepath.Join(dir, meta.ProxyConfigName),
	}
}

// Options bundles render inputs that do not come from the project itself.
type Options struct {
	Images ImageOptions
	Proxy  ProxyOptions
}

// Render produces the artifacts for info. The proxy config is only rendered
// for kinds whose container build file copies it.
func Render(info project.Info, layout Layout, opts Options) ([]Artifact, error) {
	proxyName := filepath.Base(layout.ProxyConfigPath)
	containerFile, err := RenderContainerFile(info, opts.Images, proxyName)
	if err != nil {
		return nil, err
	}
	artifacts := []Artifact{{
		Kind:    ArtifactContainerFile,
		Path:    layout.ContainerFilePath,
		Content: containerFile,
	}}

	if !UsesProxyConfig(info.Kind) {
		return artifacts, nil
	}
	proxyConfig, err := RenderProxyConfig(opts.Proxy)
	if err != nil {
		return nil, err
	}
	artifacts = append(artifacts, Artifact{
		Kind:    ArtifactProxyConfig,
		Path:    layout.ProxyConfigPath,
		Content: proxyConfig,
	})
	return artifacts, nil
}

// Write creates parent directories and overwrites each artifact's file.
// It returns the paths written before any failure.
func Write(artifacts []Artifact) ([]string, error) {
	written := make([]string, 0, len(artifacts))
	for _, artifact := range artifacts {
		if err := os.MkdirAll(filepath.Dir(artifact.Path), 0o755); err != nil {
			return written, fmt.Errorf("create directory for %s: %w", artifact.Kind, err)
		}
		if err := os.WriteFile(artifact.Path, []byte(artifact.Content), 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", artifact.Kind, err)
		}
		written = append(written, artifact.Path)
	}
	return written, nil
}
