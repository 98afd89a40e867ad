package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/harlowe/plume/internal"
	"github.com/harlowe/plume/internal/index"
	"github.com/harlowe/plume/internal/lint"
	"github.com/harlowe/plume/internal/mcpserver"
	"github.com/harlowe/plume/internal/storage"
	pkgconfig "github.com/harlowe/plume/pkg/config"
)

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.Load(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if err := internal.Run(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

// runCheck lints every post under the content root. Front-matter warnings are
// printed but do not fail the run; unreadable files do.
func runCheck(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	store, err := storage.NewFS(cfg.Content.Path)
	if err != nil {
		return fmt.Errorf("open content root: %w", err)
	}

	report, err := lint.Run(ctx, store)
	if err != nil {
		return err
	}

	for _, w := range report.Warnings {
		fmt.Printf("%s: %s: %s\n", w.Path, w.Field, w.Message)
	}
	for _, f := range report.ReadErrors {
		fmt.Fprintf(os.Stderr, "%s: %v\n", f.Path, f.Err)
	}
	fmt.Printf("checked %d posts, %d warnings, %d read errors\n",
		report.Checked, len(report.Warnings), len(report.ReadErrors))

	if len(report.ReadErrors) > 0 {
		return cli.Exit("some posts could not be read", 1)
	}
	return nil
}

// runMCP serves the MCP tools over stdio against the configured content root.
func runMCP(_ context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// MCP talks JSON-RPC on stdout, so logs must go to stderr.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	store, err := storage.NewFS(cfg.Content.Path)
	if err != nil {
		return fmt.Errorf("open content root: %w", err)
	}
	db, err := index.Open(cfg.SQLite.Path)
	if err != nil {
		return fmt.Errorf("init index: %w", err)
	}
	defer db.Close()

	if err := index.Sync(db, store, logger); err != nil {
		logger.Warn("initial sync failed", slog.String("error", err.Error()))
	}

	return mcpserver.New(store, db).ServeStdio()
}

func main() {
	configFlag := &cli.StringFlag{
		Name:        "config",
		Aliases:     []string{"c"},
		Usage:       "Path to config file",
		DefaultText: "config/config.yaml",
		Value:       "config/config.yaml",
		Sources:     cli.EnvVars("APP_CONFIG_FILE"),
	}

	cmd := &cli.Command{
		Name:  "plume",
		Usage: "Local-first blog content server with lenient front-matter parsing, full-text search, and an Atom feed",
		Flags: []cli.Flag{configFlag},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP server, file watcher, and SSE broker",
				Action: runServe,
			},
			{
				Name:   "check",
				Usage:  "Lint front matter across the content root without serving",
				Action: runCheck,
			},
			{
				Name:   "mcp",
				Usage:  "Serve MCP tools over stdio for LLM integration",
				Action: runMCP,
			},
		},
		// Bare invocation serves, matching how the binary runs in practice.
		Action: runServe,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
