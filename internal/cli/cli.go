// Package cli implements the cortex command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/nathanvale/cortex/internal"
	"github.com/nathanvale/cortex/internal/apperr"
	"github.com/nathanvale/cortex/internal/docservice"
	"github.com/nathanvale/cortex/internal/logging"
	"github.com/nathanvale/cortex/internal/output"
)

// Version is reported by --version and the MCP handshake.
const Version = "0.1.0"

// Flag names shared by every command.
const (
	flagConfig = "config"
	flagJSON   = "json"
	flagFields = "fields"
	flagDebug  = "debug"
	flagQuiet  = "quiet"
)

// app carries per-invocation state between the command actions and Run's
// error reporting.
type app struct {
	stdout  io.Writer
	stderr  io.Writer
	printer *output.Printer
}

// Run executes the CLI with args (including the program name) and returns
// the process exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr}
	if err := a.command().Run(ctx, args); err != nil {
		p := a.printer
		if p == nil {
			p = &output.Printer{Stdout: stdout, Stderr: stderr}
		}
		p.Error(err)
		return apperr.ExitCode(err)
	}
	return apperr.ExitSuccess
}

func (a *app) command() *cli.Command {
	return &cli.Command{
		Name:            "cortex",
		Usage:           "Agent-native knowledge system: query Markdown docs by frontmatter",
		Version:         Version,
		Writer:          a.stdout,
		ErrWriter:       a.stderr,
		HideHelpCommand: true,
		Flags:           commonFlags(),
		OnUsageError:    usageError,
		Action:          a.root,
		Commands: []*cli.Command{
			a.listCommand(),
			a.searchCommand(),
			a.openCommand(),
			a.serveCommand(),
			a.mcpCommand(),
			a.initCommand(),
		},
	}
}

func usageError(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return apperr.Usage(err.Error())
}

// commonFlags returns a fresh copy of the flags every command accepts.
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    flagConfig,
			Aliases: []string{"c"},
			Usage:   "Path to config file (default: $CORTEX_ROOT/config.yaml or the XDG config dir)",
			Sources: cli.EnvVars(internal.EnvConfig),
		},
		&cli.BoolFlag{
			Name:  flagJSON,
			Usage: "Force JSON output (auto-enabled when stdout is piped)",
		},
		&cli.StringFlag{
			Name:  flagFields,
			Usage: "Comma-separated fields to return: title, type, status, project, tags, created, updated, path, stem, body",
		},
		&cli.BoolFlag{
			Name:  flagDebug,
			Usage: "Show debug diagnostics on stderr",
		},
		&cli.BoolFlag{
			Name:  flagQuiet,
			Usage: "Suppress all output except errors",
		},
	}
}

// setup configures logging and output for cmd. It runs before anything that
// can fail so errors are reported in the requested format.
func (a *app) setup(cmd *cli.Command) *slog.Logger {
	logger := logging.Setup(logging.Options{
		Debug:  cmd.Bool(flagDebug),
		Quiet:  cmd.Bool(flagQuiet),
		JSON:   cmd.Bool(flagJSON),
		Writer: a.stderr,
	})
	a.printer = &output.Printer{
		Stdout: a.stdout,
		Stderr: a.stderr,
		JSON:   cmd.Bool(flagJSON),
		Quiet:  cmd.Bool(flagQuiet),
	}
	return logger
}

// loadConfig resolves, reads, and validates the config file.
func loadConfig(cmd *cli.Command, logger *slog.Logger) (*internal.Config, error) {
	path := internal.ResolveConfigPath(cmd.String(flagConfig))
	logger.With("component", "config").Debug("loading config", slog.String("path", path))
	cfg, err := internal.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	logger.With("component", "config").Debug("config loaded", slog.Int("sources", len(cfg.Sources)))
	return cfg, nil
}

// service loads the config and builds a document service over its sources.
func (a *app) service(cmd *cli.Command) (*internal.Config, *docservice.Service, error) {
	logger := a.setup(cmd)
	cfg, err := loadConfig(cmd, logger)
	if err != nil {
		return nil, nil, err
	}
	sources, err := cfg.ExpandedSources()
	if err != nil {
		return nil, nil, err
	}
	return cfg, docservice.NewService(sources, logger), nil
}

func (a *app) root(ctx context.Context, cmd *cli.Command) error {
	a.setup(cmd)
	switch first := cmd.Args().First(); first {
	case "", "help":
		return a.help(cmd)
	default:
		return apperr.Usage(fmt.Sprintf("Unknown command: %s. Run \"cortex help\" for usage.", first))
	}
}
