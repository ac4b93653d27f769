package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/nathanvale/cortex/internal"
	"github.com/nathanvale/cortex/internal/bootstrap"
	"github.com/nathanvale/cortex/internal/mcpserver"
)

func (a *app) serveCommand() *cli.Command {
	return &cli.Command{
		Name:         "serve",
		Usage:        "Serve the read-only HTTP API on http.port",
		OnUsageError: usageError,
		Flags:        commonFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			logger := a.setup(cmd)
			cfg, err := loadConfig(cmd, logger)
			if err != nil {
				return err
			}
			if err := internal.Run(ctx, internal.WithConfig(cfg), internal.WithLogger(logger)); err != nil {
				return fmt.Errorf("app run error: %w", err)
			}
			return nil
		},
	}
}

func (a *app) mcpCommand() *cli.Command {
	return &cli.Command{
		Name:         "mcp",
		Usage:        "Serve MCP tools over stdio",
		OnUsageError: usageError,
		Flags:        commonFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			_, svc, err := a.service(cmd)
			if err != nil {
				return err
			}
			return mcpserver.New(svc, Version, slog.Default()).ServeStdio()
		},
	}
}

func (a *app) initCommand() *cli.Command {
	return &cli.Command{
		Name:         "init",
		Usage:        "Create the default config and docs directories",
		OnUsageError: usageError,
		Flags: append(commonFlags(),
			&cli.StringFlag{Name: "docs-path", Usage: "Docs root to create (default: docs/ next to the config file)"},
		),
		Action: a.init,
	}
}

func (a *app) init(_ context.Context, cmd *cli.Command) error {
	a.setup(cmd)
	configPath := internal.ResolveConfigPath(cmd.String(flagConfig))
	docsPath := cmd.String("docs-path")
	if docsPath == "" {
		docsPath = filepath.Join(filepath.Dir(configPath), "docs")
	}
	docsPath, err := internal.ExpandHome(docsPath)
	if err != nil {
		return err
	}

	res, err := bootstrap.Init(configPath, docsPath)
	if err != nil {
		return err
	}

	p := a.printer
	if p.Structured() {
		return p.Success(res)
	}
	state := "created"
	if !res.Created {
		state = "already exists, left unchanged"
	}
	p.Text(fmt.Sprintf("Config: %s (%s)\nDocs:   %s\n", res.ConfigPath, state, res.DocsPath))
	return nil
}
