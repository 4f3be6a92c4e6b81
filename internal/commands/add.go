package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"godo/internal/app"
	"godo/internal/config"
	"godo/internal/exitcode"
	"godo/internal/model"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command. New tasks always land in the inbox.
type AddCmd struct {
	due      string
	notifyAt string
	priority string
	category string
	tags     string
	notes    string
	noNotify bool
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task in the inbox" }
func (c *AddCmd) Usage() string {
	return "godo add [--due <when>] [--priority low|normal|high] [--category <name>] [--tags <t1,t2>] [--notes <text>] [--notify-at <when>] [--no-notify] <title...>"
}
func (c *AddCmd) NeedsStore() bool { return true }
func (c *AddCmd) Mutates() bool    { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.due, "due", "", "")
	fs.StringVar(&c.notifyAt, "notify-at", "", "")
	fs.StringVar(&c.priority, "priority", "", "")
	fs.StringVar(&c.priority, "p", "", "")
	fs.StringVar(&c.category, "category", "", "")
	fs.StringVar(&c.category, "c", "", "")
	fs.StringVar(&c.tags, "tags", "", "")
	fs.StringVar(&c.notes, "notes", "", "")
	fs.BoolVar(&c.noNotify, "no-notify", false, "")
}

// parseWhen accepts a date or a date with time, in the local zone.
func parseWhen(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02T15:04", "2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q (want 2006-01-02 or 2006-01-02T15:04)", s)
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	t := model.NewTask(title)
	t.Notes = c.notes
	t.NotificationEnabled = !c.noNotify

	if c.due != "" {
		due, err := parseWhen(c.due)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		t.Due = &due
	}
	if c.notifyAt != "" {
		at, err := parseWhen(c.notifyAt)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		t.NotificationTime = &at
	}
	if c.priority != "" {
		p, err := model.ParsePriority(c.priority)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		t.Priority = p
	}
	if c.category != "" {
		cat, err := a.Store.CategoryByName(c.category)
		if err != nil {
			return fail(errOut, err)
		}
		t.CategoryID = cat.ID
	}
	for _, tag := range strings.Split(c.tags, ",") {
		if tag = model.CanonicalTag(tag); tag != "" {
			t.Tags = append(t.Tags, tag)
		}
	}

	if _, err := a.Store.Add(t); err != nil {
		return fail(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
