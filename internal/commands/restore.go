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
	Register(&RestoreCmd{})
}

// RestoreCmd sends a done task back to the bucket it was completed from.
type RestoreCmd struct{}

func (c *RestoreCmd) Name() string                    { return "restore" }
func (c *RestoreCmd) Aliases() []string               { return []string{"undone"} }
func (c *RestoreCmd) Synopsis() string                { return "Restore a completed task" }
func (c *RestoreCmd) Usage() string                   { return "godo restore <n>" }
func (c *RestoreCmd) NeedsStore() bool                { return true }
func (c *RestoreCmd) Mutates() bool                   { return true }
func (c *RestoreCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RestoreCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	num, err := parseRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	task, err := a.FindByRef(model.StatusDone, num)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	restored, err := a.Store.Restore(task.ID)
	if err != nil {
		return fail(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "restored to %s\n", restored.Status)
	}
	return exitcode.Success
}
