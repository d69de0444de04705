// Where: internal/generator/renderer.go
// What: Render the container build file and the proxy config.
// Why: Keep artifact text a pure function of the detected project.
package generator

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"strings"
	"sync"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/vessel-dev/vessel/internal/config"
	"github.com/vessel-dev/vessel/internal/meta"
	"github.com/vessel-dev/vessel/internal/project"
)

// ErrUnsupportedKind is returned for project kinds without a container template.
var ErrUnsupportedKind = errors.New("unsupported project kind")

const (
	DefaultListenPort  = 80
	defaultCacheExpiry = "30d"
)

var defaultGzipTypes = []string{
	"application/javascript",
	"application/json",
	"application/x-javascript",
	"text/css",
	"text/javascript",
	"text/plain",
}

//go:embed templates/*.tmpl
var templateFS embed.FS

var templateCache sync.Map

// ImageOptions selects the base images used by the container build file.
type ImageOptions struct {
	Node    string
	Nginx   string
	Flutter string
}

// DefaultImageOptions returns the built-in base images.
func DefaultImageOptions() ImageOptions {
	return ImageOptions{
		Node:    config.DefaultNodeImage,
		Nginx:   config.DefaultNginxImage,
		Flutter: config.DefaultFlutterImage,
	}
}

func (o ImageOptions) withDefaults() ImageOptions {
	def := DefaultImageOptions()
	if strings.TrimSpace(o.Node) == "" {
		o.Node = def.Node
	}
	if strings.TrimSpace(o.Nginx) == "" {
		o.Nginx = def.Nginx
	}
	if strings.TrimSpace(o.Flutter) == "" {
		o.Flutter = def.Flutter
	}
	return o
}

// ProxyOptions parameterizes the proxy config. A zero ListenPort means 80.
type ProxyOptions struct {
	ListenPort int
}

// RenderContainerFile renders the Dockerfile for info. proxyConfigName is the
// build-context path the production stage copies the proxy config from.
func RenderContainerFile(info project.Info, images ImageOptions, proxyConfigName string) (string, error) {
	images = images.withDefaults()
	if strings.TrimSpace(proxyConfigName) == "" {
		proxyConfigName = meta.ProxyConfigName
	}

	data := dockerfileTemplateData{
		NodeImage:       images.Node,
		NginxImage:      images.Nginx,
		FlutterImage:    images.Flutter,
		BuildCommand:    info.BuildCommand,
		BuildOutputDir:  info.BuildOutputDir,
		ProxyConfigName: proxyConfigName,
	}

	switch info.Kind {
	case project.KindReact, project.KindNode:
		return renderTemplate("node.dockerfile.tmpl", data)
	case project.KindFlutter:
		return renderTemplate("flutter.dockerfile.tmpl", data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedKind, info.Kind)
	}
}

// RenderProxyConfig renders the static-site nginx server block.
func RenderProxyConfig(opts ProxyOptions) (string, error) {
	port := opts.ListenPort
	if port <= 0 {
		port = DefaultListenPort
	}
	return renderTemplate("nginx.conf.tmpl", proxyTemplateData{
		ListenPort:  port,
		GzipTypes:   defaultGzipTypes,
		CacheExpiry: defaultCacheExpiry,
	})
}

// UsesProxyConfig reports whether the container build file for kind copies the proxy config.
func UsesProxyConfig(kind project.Kind) bool {
	return kind == project.KindReact || kind == project.KindNode
}

func renderTemplate(name string, data any) (string, error) {
	tmpl, err := loadTemplate(name)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

func loadTemplate(name string) (*template.Template, error) {
	if value, ok := templateCache.Load(name); ok {
		cached, ok := value.(*template.Template)
		if !ok {
			return nil, fmt.Errorf("template cache type mismatch for %s", name)
		}
		return cached, nil
	}
	tmpl, err := template.New(name).Funcs(sprig.TxtFuncMap()).ParseFS(templateFS, "templates/"+name)
	if err != nil {
		return nil, err
	}
	templateCache.Store(name, tmpl)
	return tmpl, nil
}

type dockerfileTemplateData struct {
	NodeImage       string
	NginxImage      string
	FlutterImage    string
	BuildCommand    string
	BuildOutputDir  string
	ProxyConfigName string
}

type proxyTemplateData struct {
	ListenPort  int
	GzipTypes   []string
	CacheExpiry string
}
