package storage

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 500 * time.Millisecond

// Watcher observes the store document for external changes and invokes a
// reload callback. Replication into the document is background-only: a
// reload refreshes the in-memory snapshot but never blocks a mutation.
type Watcher struct {
	path     string
	onChange func()
	log      *slog.Logger
	fw       *fsnotify.Watcher
}

// NewWatcher creates a watcher for the document at path. onChange runs on
// the watcher goroutine after changes settle.
func NewWatcher(path string, onChange func(), log *slog.Logger) (*Watcher, error) {
	if log == nil {
		log = slog.Default()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	// Watch the directory; editors and atomic saves replace the file, which
	// would drop a watch on the file itself.
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}
	return &Watcher{path: path, onChange: onChange, log: log, fw: fw}, nil
}

// Run processes events until the context is cancelled. Changes are
// debounced so an editor's write-then-rename dance triggers one reload.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fw.Close()

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			w.log.Debug("document changed", "op", ev.Op.String())
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
			} else {
				// Drain a stale fire so Reset starts a full window.
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(watchDebounce)
			}
			fire = timer.C
		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", "error", err)
		case <-fire:
			fire = nil
			w.onChange()
		}
	}
}
