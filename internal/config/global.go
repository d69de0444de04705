// Where: internal/config/global.go
// What: Global config load/save helpers.
// Why: Manage ~/.vessel/config.yaml consistently.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/vessel-dev/vessel/internal/envutil"
	"github.com/vessel-dev/vessel/internal/meta"
	"gopkg.in/yaml.v3"
)

const (
	hostSuffixConfigPath = "CONFIG_PATH"
	hostSuffixConfigHome = "CONFIG_HOME"

	DefaultPort         = 80
	DefaultNodeImage    = "node:16-alpine"
	DefaultNginxImage   = "nginx:alpine"
	DefaultFlutterImage = "ghcr.io/cirruslabs/flutter:stable"
)

// GlobalConfig represents the ~/.vessel/config.yaml global configuration.
// It holds command defaults and the base images used by generated Dockerfiles.
type GlobalConfig struct {
	Version  int      `yaml:"version"`
	Defaults Defaults `yaml:"defaults"`
	Images   Images   `yaml:"images"`
}

// Defaults stores fallback values for CLI flags.
type Defaults struct {
	OutputDir string `yaml:"output_dir,omitempty"`
	Port      int    `yaml:"port,omitempty"`
}

// Images stores base image references for the container build file.
type Images struct {
	Node    string `yaml:"node,omitempty"`
	Nginx   string `yaml:"nginx,omitempty"`
	Flutter string `yaml:"flutter,omitempty"`
}

// DefaultGlobalConfig returns an initialized GlobalConfig with every field populated.
func DefaultGlobalConfig() GlobalConfig {
	return GlobalConfig{
		Version: 1,
		Defaults: Defaults{
			OutputDir: meta.DefaultOutputDir,
			Port:      DefaultPort,
		},
		Images: Images{
			Node:    DefaultNodeImage,
			Nginx:   DefaultNginxImage,
			Flutter: DefaultFlutterImage,
		},
	}
}

// WithDefaults fills every empty field with its built-in default.
func (c GlobalConfig) WithDefaults() GlobalConfig {
	def := DefaultGlobalConfig()
	if c.Version == 0 {
		c.Version = def.Version
	}
	if strings.TrimSpace(c.Defaults.OutputDir) == "" {
		c.Defaults.OutputDir = def.Defaults.OutputDir
	}
	if c.Defaults.Port <= 0 {
		c.Defaults.Port = def.Defaults.Port
	}
	if strings.TrimSpace(c.Images.Node) == "" {
		c.Images.Node = def.Images.Node
	}
	if strings.TrimSpace(c.Images.Nginx) == "" {
		c.Images.Nginx = def.Images.Nginx
	}
	if strings.TrimSpace(c.Images.Flutter) == "" {
		c.Images.Flutter = def.Images.Flutter
	}
	return c
}

// GlobalConfigPath returns the path to the global config file.
// Respects VESSEL_CONFIG_PATH and VESSEL_CONFIG_HOME.
func GlobalConfigPath() (string, error) {
	if override := envutil.GetHostEnv(hostSuffixConfigPath); override != "" {
		path := override
		if !filepath.IsAbs(path) {
			if abs, err := filepath.Abs(path); err == nil {
				path = abs
			}
		}
		return path, nil
	}
	if override := envutil.GetHostEnv(hostSuffixConfigHome); override != "" {
		return filepath.Join(override, "config.yaml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, meta.HomeDir, "config.yaml"), nil
}

// EnsureGlobalConfig creates the global config file if it doesn't exist.
func EnsureGlobalConfig() error {
	path, err := GlobalConfigPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return SaveGlobalConfig(path, DefaultGlobalConfig())
		}
		return err
	}
	return nil
}

// Load ensures the global config exists and returns it with defaults applied.
func Load() (GlobalConfig, error) {
	if err := EnsureGlobalConfig(); err != nil {
		return GlobalConfig{}, err
	}
	path, err := GlobalConfigPath()
	if err != nil {
		return GlobalConfig{}, err
	}
	cfg, err := LoadGlobalConfig(path)
	if err != nil {
		return GlobalConfig{}, err
	}
	return cfg.WithDefaults(), nil
}

// LoadGlobalConfig reads and parses the global configuration file.
func LoadGlobalConfig(path string) (GlobalConfig, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return GlobalConfig{}, err
	}

	var cfg GlobalConfig
	if err := yaml.Unmarshal(payload, &cfg); err != nil {
		return GlobalConfig{}, err
	}
	return cfg, nil
}

// SaveGlobalConfig writes a GlobalConfig to the specified path.
func SaveGlobalConfig(path string, cfg GlobalConfig) error {
	payload, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	return os.WriteFile(path, payload, 0o644)
}
