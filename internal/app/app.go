// Where: internal/app/app.go
// What: CLI entrypoint logic.
// Why: Provide a testable command dispatcher.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/vessel-dev/vessel/internal/config"
	"github.com/vessel-dev/vessel/internal/meta"
	"github.com/vessel-dev/vessel/internal/ports"
	"github.com/vessel-dev/vessel/internal/version"
)

// Dependencies holds all injected dependencies required for CLI command execution.
// Nil fields fall back to production implementations where one exists.
type Dependencies struct {
	// Context is the parent of every command context; nil means context.Background.
	Context    context.Context
	Out        io.Writer
	Detector   ports.ProjectDetector
	Runtime    ports.ContainerRuntime
	// RuntimeErr explains a nil Runtime; only deploy, stop and list report it.
	RuntimeErr error
	Prompter   ports.Prompter
	LoadConfig func() (config.GlobalConfig, error)
	ConfigPath func() (string, error)
}

// CLI defines the command-line interface structure parsed by Kong.
type CLI struct {
	EnvFile string `name:"env-file" help:"Path to .env file"`
	NoEmoji bool   `name:"no-emoji" help:"Disable emoji in output"`

	Build   BuildCmd   `cmd:"" help:"Generate a Dockerfile and nginx config for a project"`
	Deploy  DeployCmd  `cmd:"" help:"Build and run a project in a local container"`
	Stop    StopCmd    `cmd:"" help:"Stop a running container"`
	List    ListCmd    `cmd:"" help:"List containers"`
	Detect  DetectCmd  `cmd:"" help:"Show how a project is classified"`
	Config  ConfigCmd  `cmd:"" name:"config" help:"Manage configuration"`
	Manual  ManualCmd  `cmd:"" help:"Show the vessel manual"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

type (
	BuildCmd struct {
		ProjectPath string `arg:"" name:"project_path" help:"Path to the project"`
		Output      string `short:"o" help:"Output directory (default: ./vessel-output)"`
	}
	DeployCmd struct {
		ProjectPath string `arg:"" name:"project_path" help:"Path to the project"`
		Port        int    `short:"p" help:"Host port to publish (default: 80)"`
		Name        string `help:"Container name (default: derived from the project)"`
		Verbose     bool   `short:"v" help:"Stream docker build output"`
	}
	StopCmd struct {
		Name string `arg:"" optional:"" help:"Container name (default: choose interactively)"`
	}
	ListCmd    struct{}
	ManualCmd  struct{}
	VersionCmd struct{}
)

// Run is the main entry point for CLI command execution.
// It parses the command-line arguments, identifies the requested command,
// and dispatches to the appropriate handler. Returns 0 on success, 1 on error.
func Run(args []string, deps Dependencies) int {
	out := deps.Out
	if out == nil {
		out = os.Stdout
	}

	if len(args) == 0 {
		return runManual(CLI{}, deps, out)
	}

	cli := CLI{}
	parser, err := kong.New(&cli,
		kong.Name(meta.AppName),
		kong.Description("Vessel - production deployment made simple."),
		kong.Writers(out, out),
	)
	if err != nil {
		return exitWithError(out, err)
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		return handleParseError(err, out)
	}

	if cli.EnvFile != "" {
		if err := godotenv.Load(cli.EnvFile); err != nil {
			fmt.Fprintf(out, "Warning: failed to load env file %s: %v\n", cli.EnvFile, err)
		}
	}

	if exitCode, handled := dispatchCommand(ctx.Command(), cli, deps, out); handled {
		return exitCode
	}

	fmt.Fprintln(out, "unknown command")
	return 1
}

type commandHandler func(CLI, Dependencies, io.Writer) int

// dispatchCommand routes on the command word. Kong appends positional
// placeholders such as "<project_path>" which are ignored here.
func dispatchCommand(command string, cli CLI, deps Dependencies, out io.Writer) (int, bool) {
	handlers := map[string]commandHandler{
		"build":       runBuild,
		"deploy":      runDeploy,
		"stop":        runStop,
		"list":        runList,
		"detect":      runDetect,
		"config show": runConfigShow,
		"config set":  runConfigSet,
		"config path": runConfigPath,
		"manual":      runManual,
		"version":     func(_ CLI, _ Dependencies, out io.Writer) int { return runVersion(out) },
	}

	words := make([]string, 0, 2)
	for _, field := range strings.Fields(command) {
		if strings.HasPrefix(field, "<") {
			break
		}
		words = append(words, field)
	}
	for len(words) > 0 {
		if handler, ok := handlers[strings.Join(words, " ")]; ok {
			return handler(cli, deps, out), true
		}
		words = words[:len(words)-1]
	}
	return 1, false
}

// runVersion prints the version information of the CLI.
func runVersion(out io.Writer) int {
	fmt.Fprintf(out, "%s %s\n", meta.AppName, version.GetVersion())
	return 0
}

// handleParseError provides user-friendly error messages for parse failures.
func handleParseError(err error, out io.Writer) int {
	errStr := err.Error()
	if strings.Contains(errStr, "expected") && strings.Contains(errStr, "<project_path>") {
		return exitWithSuggestion(out, "Project path required.", []string{
			"vessel build <project_path>",
			"vessel deploy <project_path>",
		})
	}
	return exitWithError(out, err)
}
