package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"godo/internal/app"
	"godo/internal/config"
	"godo/internal/exitcode"
	"godo/internal/model"
)

func init() {
	Register(&MoveCmd{})
	Register(&SnoozeCmd{})
}

// MoveCmd promotes an inbox task into the today bucket.
type MoveCmd struct{}

func (c *MoveCmd) Name() string                    { return "move" }
func (c *MoveCmd) Aliases() []string               { return []string{"today"} }
func (c *MoveCmd) Synopsis() string                { return "Move an inbox task to today" }
func (c *MoveCmd) Usage() string                   { return "godo move <n>" }
func (c *MoveCmd) NeedsStore() bool                { return true }
func (c *MoveCmd) Mutates() bool                   { return true }
func (c *MoveCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *MoveCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	num, err := parseRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	task, err := a.FindByRef(model.StatusInbox, num)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if _, err := a.Store.MoveToToday(task.ID); err != nil {
		return fail(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// SnoozeCmd pushes a today task's due date out by one day.
type SnoozeCmd struct{}

func (c *SnoozeCmd) Name() string                    { return "snooze" }
func (c *SnoozeCmd) Aliases() []string               { return nil }
func (c *SnoozeCmd) Synopsis() string                { return "Push a today task's due date out a day" }
func (c *SnoozeCmd) Usage() string                   { return "godo snooze <n>" }
func (c *SnoozeCmd) NeedsStore() bool                { return true }
func (c *SnoozeCmd) Mutates() bool                   { return true }
func (c *SnoozeCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *SnoozeCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	num, err := parseRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	task, err := a.FindByRef(model.StatusToday, num)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	snoozed, err := a.Store.Snooze(task.ID)
	if err != nil {
		return fail(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "due %s\n", snoozed.Due.Format("2006-01-02 15:04"))
	}
	return exitcode.Success
}
