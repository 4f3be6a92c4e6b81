// Package main is the entry point for the godo CLI.
package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"godo/internal/app"
	"godo/internal/cli"
	"godo/internal/commands"
	"godo/internal/config"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Create app factory
	factory := func(ctx context.Context, cfg *config.Config) (*app.App, error) {
		return app.Open(cfg, newLogger(cfg))
	}

	// Create dispatcher
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	// Run and exit with code
	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(code)
}

// newLogger builds the application logger. Logs are silent unless
// --debug is set, so command output stays clean for scripting.
func newLogger(cfg *config.Config) *slog.Logger {
	if !cfg.Debug {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
