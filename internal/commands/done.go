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
	Register(&DoneCmd{})
}

// DoneCmd implements the done command: complete a task from the inbox or
// today bucket.
type DoneCmd struct {
	bucket string
}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return []string{"complete"} }
func (c *DoneCmd) Synopsis() string  { return "Mark a task completed" }
func (c *DoneCmd) Usage() string     { return "godo done [--bucket inbox|today] <n>" }
func (c *DoneCmd) NeedsStore() bool  { return true }
func (c *DoneCmd) Mutates() bool     { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.bucket, "bucket", "inbox", "")
	fs.StringVar(&c.bucket, "b", "inbox", "")
}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	num, err := parseRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	bucket, err := parseBucket(c.bucket)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	task, err := a.FindByRef(bucket, num)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if _, err := a.Store.Complete(task.ID); err != nil {
		return fail(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
