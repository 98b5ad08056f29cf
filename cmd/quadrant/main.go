// Package main provides the entry point for the Quadrant TUI application.
//
// Quadrant sorts tasks into an importance/urgency matrix. Without arguments
// it opens the board; with a subcommand it runs it and exits.
//
// Usage:
//
//	quadrant [command] [flags]
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/quadrant/internal/app"
	"github.com/riordanpawley/quadrant/internal/cli"
	"github.com/riordanpawley/quadrant/internal/config"
	"github.com/riordanpawley/quadrant/internal/services/preferences"
	"github.com/riordanpawley/quadrant/internal/services/tags"
	"github.com/riordanpawley/quadrant/internal/services/tasks"
	"github.com/riordanpawley/quadrant/internal/storage"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run wires the program together and returns the exit code, so deferred
// cleanup runs before main exits
func run(args []string) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return 1
	}

	logger, closeLog := newLogger(cfg.Logging)
	defer closeLog()

	ctx := context.Background()
	store, err := storage.Open(ctx, cfg.Storage, logger)
	if err != nil {
		// Keep going on the unavailable store; nothing will persist
		logger.Warn("storage unavailable", "driver", cfg.Storage.Driver, "error", err)
		fmt.Fprintf(os.Stderr, "Warning: storage unavailable, changes will not be saved: %v\n", err)
	}
	defer store.Close()

	if len(args) > 0 {
		return runCommand(ctx, cfg, store, logger, args)
	}

	tagSvc := tags.NewService(store, logger)
	services := app.Services{
		Tasks:       tasks.NewService(store, tagSvc, logger),
		Tags:        tagSvc,
		Preferences: preferences.NewService(store, logger),
	}

	var opts []app.Option
	if cwd, err := os.Getwd(); err == nil {
		opts = append(opts, app.WithConfigPath(config.FilePath(cwd)))
	}

	model := app.New(cfg, services, logger, opts...)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		logger.Error("program failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func runCommand(ctx context.Context, cfg *config.Config, store storage.KV, logger *slog.Logger, args []string) int {
	if !cli.IsCommand(args[0]) {
		cli.PrintUsage(os.Stderr)
		return 2
	}

	deps := cli.NewDependencies(cfg, store, logger, os.Stdout)
	err := cli.Run(ctx, deps, args)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, cli.ErrUsage):
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		cli.PrintUsage(os.Stderr)
		return 2
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
}

// newLogger writes text logs to the configured file. The terminal belongs to
// the board, so logs are dropped when the file can't be opened.
func newLogger(cfg config.LoggingConfig) (*slog.Logger, func()) {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}

	if cfg.File == "" {
		return slog.New(slog.NewTextHandler(io.Discard, opts)), func() {}
	}
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, opts)), func() {}
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, opts)), func() {}
	}

	logger := slog.New(slog.NewTextHandler(f, opts))
	slog.SetDefault(logger)
	return logger, func() { f.Close() }
}
