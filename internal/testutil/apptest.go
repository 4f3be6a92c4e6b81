package testutil

import (
	"io"
	"log/slog"
	"time"

	"godo/internal/app"
	"godo/internal/notify"
	"godo/internal/store"
)

// FixedClock returns the same instant on every call.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time { return c.T }

// Fixture is an in-memory app plus the knobs tests poke at.
type Fixture struct {
	App      *app.App
	Registry *notify.MemoryRegistry
	Now      time.Time
}

// NewFixture builds an app with an in-memory trigger registry, a fixed
// clock and a discard logger. Nothing touches the filesystem.
func NewFixture() *Fixture {
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.Local)
	reg := notify.NewMemoryRegistry()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	settings := notify.DefaultSettings()
	sched := notify.NewScheduler(reg, FixedClock{T: now}, settings, log)
	st := store.New(
		store.WithScheduler(sched),
		store.WithLogger(log),
		store.WithClock(func() time.Time { return now }),
	)
	return &Fixture{
		App:      app.New(st, sched, settings, reg),
		Registry: reg,
		Now:      now,
	}
}
