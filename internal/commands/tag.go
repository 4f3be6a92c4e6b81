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
	Register(&TagCmd{})
}

// TagCmd implements the tag command with ls/add/rename/rm subactions.
// Renaming rewrites the tag on every task referencing it; removing filters
// it out of every task's tag list.
type TagCmd struct{}

func (c *TagCmd) Name() string      { return "tag" }
func (c *TagCmd) Aliases() []string { return nil }
func (c *TagCmd) Synopsis() string  { return "Manage the tag registry" }
func (c *TagCmd) Usage() string {
	return "godo tag <ls | add <name> | rename <old> <new> | rm <name>>"
}
func (c *TagCmd) NeedsStore() bool                { return true }
func (c *TagCmd) Mutates() bool                   { return true }
func (c *TagCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *TagCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	action := "ls"
	if len(args) > 0 {
		action = args[0]
		args = args[1:]
	}

	switch action {
	case "ls":
		for _, tag := range a.Store.Tags() {
			fmt.Fprintln(out, tag)
		}
		return exitcode.Success

	case "add":
		if len(args) != 1 {
			fmt.Fprintln(errOut, "error: tag name required")
			return exitcode.UserError
		}
		if _, err := a.Store.AddTag(args[0]); err != nil {
			return fail(errOut, err)
		}

	case "rename":
		if len(args) != 2 {
			fmt.Fprintln(errOut, "error: expected <old> and <new> names")
			return exitcode.UserError
		}
		if _, err := a.Store.RenameTag(args[0], args[1]); err != nil {
			return fail(errOut, err)
		}

	case "rm":
		if len(args) != 1 {
			fmt.Fprintln(errOut, "error: tag name required")
			return exitcode.UserError
		}
		if err := a.Store.RemoveTag(args[0]); err != nil {
			return fail(errOut, err)
		}

	default:
		fmt.Fprintf(errOut, "error: unknown tag action: %s\n", action)
		return exitcode.UserError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
