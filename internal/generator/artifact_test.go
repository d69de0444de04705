package generator

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vessel-dev/vessel/internal/project"
)

func TestRenderReactProducesBothArtifacts(t *testing.T) {
	dir := t.TempDir()
	artifacts, err := Render(reactInfo(), LayoutIn(dir), Options{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(artifacts) != 2 {
		t.Fatalf("expected 2 artifacts, got %d", len(artifacts))
	}
	if artifacts[0].Kind != ArtifactContainerFile || artifacts[0].Path != filepath.Join(dir, "Dockerfile") {
		t.Fatalf("unexpected container artifact: %#v", artifacts[0])
	}
	if artifacts[1].Kind != ArtifactProxyConfig || artifacts[1].Path != filepath.Join(dir, "nginx.conf") {
		t.Fatalf("unexpected proxy artifact: %#v", artifacts[1])
	}
	if !strings.Contains(artifacts[0].Content, "FROM node:") || !strings.Contains(artifacts[0].Content, "FROM nginx:") {
		t.Fatalf("expected both stage markers:\n%s", artifacts[0].Content)
	}
	if _, err := os.Stat(artifacts[0].Path); !os.IsNotExist(err) {
		t.Fatalf("render must not touch the filesystem")
	}
}

func TestRenderFlutterSkipsProxyConfig(t *testing.T) {
	info := project.Info{Kind: project.KindFlutter, BuildCommand: "flutter pub get"}
	artifacts, err := Render(info, LayoutIn(t.TempDir()), Options{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(artifacts) != 1 || artifacts[0].Kind != ArtifactContainerFile {
		t.Fatalf("expected only the container file, got %#v", artifacts)
	}
}

func TestRenderUsesProxyFileNameFromLayout(t *testing.T) {
	root := t.TempDir()
	layout := Layout{
		ContainerFilePath: filepath.Join(t.TempDir(), "Dockerfile"),
		ProxyConfigPath:   filepath.Join(root, ".vessel-nginx.conf"),
	}
	artifacts, err := Render(reactInfo(), layout, Options{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(artifacts[0].Content, "COPY .vessel-nginx.conf ") {
		t.Fatalf("expected proxy file name in dockerfile:\n%s", artifacts[0].Content)
	}
}

func TestRenderPythonIsUnsupported(t *testing.T) {
	_, err := Render(project.Info{Kind: project.KindPython}, LayoutIn(t.TempDir()), Options{})
	if !errors.Is(err, ErrUnsupportedKind) {
		t.Fatalf("expected ErrUnsupportedKind, got %v", err)
	}
}

func TestWriteCreatesDirectoryAndOverwrites(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	path := filepath.Join(dir, "Dockerfile")

	first := []Artifact{{Kind: ArtifactContainerFile, Path: path, Content: "old"}}
	if _, err := Write(first); err != nil {
		t.Fatalf("first write: %v", err)
	}
	second := []Artifact{{Kind: ArtifactContainerFile, Path: path, Content: "new"}}
	written, err := Write(second)
	if err != nil {
		t.Fatalf("second write: %v", err)
	}
	if len(written) != 1 || written[0] != path {
		t.Fatalf("unexpected written paths: %v", written)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "new" {
		t.Fatalf("expected overwrite, got %q", data)
	}
}
