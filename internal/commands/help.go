package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"godo/internal/app"
	"godo/internal/config"
	"godo/internal/exitcode"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "godo help" }
func (c *HelpCmd) NeedsStore() bool  { return false }
func (c *HelpCmd) Mutates() bool     { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  godo                                               List all tasks by bucket
  godo list [common flags] [--bucket <b>] [--sort <key>] [--dir asc|desc] [--tags <t1,t2>] [--hide-done] [--grouped]
  godo add [common flags] [--due <when>] [--priority <p>] [--category <name>] [--tags <t1,t2>] [--notify-at <when>] [--no-notify] <title...>
  godo move <n>                                      Move inbox task n to today
  godo done [--bucket inbox|today] <n>               Complete a task
  godo restore <n>                                   Restore a completed task
  godo snooze <n>                                    Push a today task's due date out a day
  godo rm [--bucket <b>] <n>                         Delete a task
  godo reorder [--bucket <b>] <from> <to>            Move a task within its bucket
  godo category <ls|add|rename|rm> ...               Manage categories
  godo tag <ls|add|rename|rm> ...                    Manage tags
  godo export [--out <file>]                         Export the store as JSON
  godo import [<file>]                               Replace the store from JSON
  godo triggers                                      List pending notification triggers
  godo watch                                         Reload when the document changes
  godo help
  godo version

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
