package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"godo/internal/app"
	"godo/internal/config"
	"godo/internal/exitcode"
	"godo/internal/output"
)

func init() {
	Register(&TriggersCmd{})
}

// TriggersCmd lists pending notification triggers in fire order.
type TriggersCmd struct{}

func (c *TriggersCmd) Name() string                    { return "triggers" }
func (c *TriggersCmd) Aliases() []string               { return nil }
func (c *TriggersCmd) Synopsis() string                { return "List pending notification triggers" }
func (c *TriggersCmd) Usage() string                   { return "godo triggers" }
func (c *TriggersCmd) NeedsStore() bool                { return true }
func (c *TriggersCmd) Mutates() bool                   { return false }
func (c *TriggersCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *TriggersCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	if a.Triggers == nil {
		fmt.Fprintln(errOut, "error: no trigger registry available")
		return exitcode.StorageError
	}
	pending, err := a.Triggers.Pending()
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.StorageError
	}
	for _, d := range pending {
		output.FormatTrigger(out, d)
	}
	return exitcode.Success
}
