// Where: internal/app/config_cmd.go
// What: Configuration management commands.
// Why: Inspect and change defaults stored in ~/.vessel/config.yaml.
package app

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"strings"

	"github.com/vessel-dev/vessel/internal/config"
	"gopkg.in/yaml.v3"
)

// ConfigCmd groups configuration subcommands.
type ConfigCmd struct {
	Show ConfigShowCmd `cmd:"" help:"Print the effective configuration"`
	Set  ConfigSetCmd  `cmd:"" help:"Set a configuration value"`
	Path ConfigPathCmd `cmd:"" help:"Print the configuration file path"`
}

type (
	ConfigShowCmd struct{}
	ConfigPathCmd struct{}
	ConfigSetCmd  struct {
		Key   string `arg:"" help:"One of: output_dir, port, images.node, images.nginx, images.flutter"`
		Value string `arg:"" help:"New value"`
	}
)

func configPath(deps Dependencies) (string, error) {
	if deps.ConfigPath != nil {
		return deps.ConfigPath()
	}
	return config.GlobalConfigPath()
}

func runConfigPath(_ CLI, deps Dependencies, out io.Writer) int {
	path, err := configPath(deps)
	if err != nil {
		return exitWithError(out, err)
	}
	fmt.Fprintln(out, path)
	return 0
}

func runConfigShow(_ CLI, deps Dependencies, out io.Writer) int {
	cfg, err := loadConfig(deps)
	if err != nil {
		return exitWithError(out, err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return exitWithError(out, err)
	}
	fmt.Fprint(out, string(data))
	return 0
}

// runConfigSet updates one key in the global configuration file.
func runConfigSet(cli CLI, deps Dependencies, out io.Writer) int {
	path, err := configPath(deps)
	if err != nil {
		return exitWithError(out, err)
	}
	cfg, err := config.LoadGlobalConfig(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg, err = config.DefaultGlobalConfig(), nil
	}
	if err != nil {
		return exitWithError(out, err)
	}

	key := strings.ToLower(strings.TrimSpace(cli.Config.Set.Key))
	value := strings.TrimSpace(cli.Config.Set.Value)
	switch key {
	case "output_dir", "defaults.output_dir":
		cfg.Defaults.OutputDir = value
	case "port", "defaults.port":
		port, err := strconv.Atoi(value)
		if err != nil || port < 1 || port > 65535 {
			return exitWithError(out, fmt.Errorf("invalid port: %q", value))
		}
		cfg.Defaults.Port = port
	case "images.node":
		cfg.Images.Node = value
	case "images.nginx":
		cfg.Images.Nginx = value
	case "images.flutter":
		cfg.Images.Flutter = value
	default:
		return exitWithError(out, fmt.Errorf("unknown config key: %s", cli.Config.Set.Key))
	}

	if err := config.SaveGlobalConfig(path, cfg); err != nil {
		return exitWithError(out, err)
	}
	fmt.Fprintf(out, "updated %s: %s\n", key, value)
	return 0
}
