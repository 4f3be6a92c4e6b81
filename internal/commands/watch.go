package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"godo/internal/app"
	"godo/internal/config"
	"godo/internal/exitcode"
	"godo/internal/storage"
)

func init() {
	Register(&WatchCmd{})
}

// WatchCmd runs until interrupted, refreshing the in-memory store and its
// scheduled notifications whenever the document file changes externally.
// This is the replication path: changes flow from the document into memory
// in the background and never block anything.
type WatchCmd struct{}

func (c *WatchCmd) Name() string                    { return "watch" }
func (c *WatchCmd) Aliases() []string               { return nil }
func (c *WatchCmd) Synopsis() string                { return "Watch the store document and refresh triggers on change" }
func (c *WatchCmd) Usage() string                   { return "godo watch" }
func (c *WatchCmd) NeedsStore() bool                { return true }
func (c *WatchCmd) Mutates() bool                   { return false }
func (c *WatchCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *WatchCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	file := a.File()
	if file == nil {
		fmt.Fprintln(errOut, "error: no store document to watch")
		return exitcode.ConfigError
	}

	log := slog.Default()
	w, err := storage.NewWatcher(file.Path(), func() {
		if err := a.Reload(); err != nil {
			log.Warn("reload failed", "error", err)
			return
		}
		if !cfg.Quiet {
			fmt.Fprintf(out, "reloaded %d tasks\n", a.Store.Len())
		}
	}, log)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.StorageError
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "watching %s\n", file.Path())
	}
	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.StorageError
	}
	return exitcode.Success
}
