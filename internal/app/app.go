// Package app wires the store, scheduler and persistence boundary into one
// unit the CLI commands operate on. The store instance is constructed here
// and passed down explicitly; nothing in the process holds global state.
package app

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"godo/internal/codec"
	"godo/internal/config"
	"godo/internal/model"
	"godo/internal/notify"
	"godo/internal/storage"
	"godo/internal/store"
)

// TriggerSource lists pending triggers for display.
type TriggerSource interface {
	Pending() ([]notify.Descriptor, error)
}

// App bundles the live store with its collaborators.
type App struct {
	Store     *store.Store
	Scheduler *notify.Scheduler
	Settings  notify.Settings
	Triggers  TriggerSource

	file *storage.File
	log  *slog.Logger
	// metadata is the foreign document metadata from the last load or
	// import, written back on every persist.
	metadata map[string]json.RawMessage
	closers  []io.Closer
}

// Open constructs the application from the config directory: loads
// settings, opens the pending-trigger database, and builds the store from
// the persisted document. A broken trigger database degrades to an
// in-memory registry with a warning; notification state is never fatal.
func Open(cfg *config.Config, log *slog.Logger) (*App, error) {
	if log == nil {
		log = slog.Default()
	}

	settings, err := cfg.LoadSettings()
	if err != nil {
		log.Warn("settings unreadable, using defaults", "error", err)
	}

	var reg notify.Registry
	var source TriggerSource
	var closers []io.Closer
	db, err := storage.OpenTriggerDB(cfg.TriggersPath())
	if err != nil {
		log.Warn("trigger db unavailable, notifications will not persist", "error", err)
		mem := notify.NewMemoryRegistry()
		reg, source = mem, mem
	} else {
		reg, source = db, db
		closers = append(closers, db)
	}

	sched := notify.NewScheduler(reg, nil, settings, log)
	st := store.New(store.WithScheduler(sched), store.WithLogger(log))

	file := storage.NewFile(cfg.TasksPath())
	doc, err := file.Load()
	if err != nil {
		for _, c := range closers {
			c.Close()
		}
		return nil, fmt.Errorf("load store document: %w", err)
	}
	dec := codec.Decode(doc)
	if dec.Skipped > 0 {
		log.Warn("skipped unreadable records in store document", "count", dec.Skipped)
	}
	st.Replace(dec.Tasks, dec.Categories, dec.Tags)

	if err := sched.ScheduleSummaries(); err != nil {
		log.Warn("summary scheduling failed", "error", err)
	}

	return &App{
		Store:     st,
		Scheduler: sched,
		Settings:  settings,
		Triggers:  source,
		file:      file,
		log:       log,
		metadata:  dec.Metadata,
		closers:   closers,
	}, nil
}

// New builds an app around an existing store, without persistence. Tests
// and embedders that manage their own storage use this.
func New(st *store.Store, sched *notify.Scheduler, settings notify.Settings, triggers TriggerSource) *App {
	return &App{Store: st, Scheduler: sched, Settings: settings, Triggers: triggers, log: slog.Default()}
}

// Document snapshots the store into an export document.
func (a *App) Document() codec.Document {
	return codec.Export(a.Store.Snapshot(), a.Store.Categories(), a.Store.Tags(), a.settingsMap(), a.metadata, time.Now())
}

func (a *App) settingsMap() map[string]string {
	return map[string]string{
		"reminderLeadMinutes": strconv.Itoa(a.Settings.ReminderLeadMinutes),
		"dailySummaryTime":    a.Settings.DailySummaryTime.String(),
		"weeklyReviewTime":    a.Settings.WeeklyReviewTime.String(),
	}
}

// Persist writes the current store state to the document file. No-op when
// the app has no backing file.
func (a *App) Persist() error {
	if a.file == nil {
		return nil
	}
	return a.file.Save(a.Document())
}

// File exposes the backing document file, nil when persistence is off.
func (a *App) File() *storage.File { return a.file }

// ImportDocument replaces the store's collections wholesale from a parsed
// document. Returns the number of records skipped for unknown enum values.
func (a *App) ImportDocument(doc codec.Document) int {
	dec := codec.Decode(doc)
	a.Store.Replace(dec.Tasks, dec.Categories, dec.Tags)
	a.metadata = dec.Metadata
	return dec.Skipped
}

// Reload refreshes the in-memory snapshot from the backing document, as
// after an external change. No-op without a backing file.
func (a *App) Reload() error {
	if a.file == nil {
		return nil
	}
	doc, err := a.file.Load()
	if err != nil {
		return err
	}
	skipped := a.ImportDocument(doc)
	if skipped > 0 {
		a.log.Warn("skipped unreadable records on reload", "count", skipped)
	}
	return nil
}

// Close releases held resources.
func (a *App) Close() error {
	var firstErr error
	for _, c := range a.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// FindByRef resolves a 1-based task number within a bucket to the task.
func (a *App) FindByRef(bucket model.Status, num int) (model.Task, error) {
	tasks := a.Store.Bucket(bucket)
	if num < 1 || num > len(tasks) {
		return model.Task{}, fmt.Errorf("task number out of range: %d", num)
	}
	return tasks[num-1], nil
}
