package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"

	"godo/internal/app"
	"godo/internal/config"
	"godo/internal/exitcode"
)

func init() {
	Register(&ReorderCmd{})
}

// ReorderCmd moves a task to a new position within its bucket and
// renumbers the bucket's manual order.
type ReorderCmd struct {
	bucket string
}

func (c *ReorderCmd) Name() string      { return "reorder" }
func (c *ReorderCmd) Aliases() []string { return nil }
func (c *ReorderCmd) Synopsis() string  { return "Move a task within its bucket" }
func (c *ReorderCmd) Usage() string     { return "godo reorder [--bucket inbox|today|done] <from> <to>" }
func (c *ReorderCmd) NeedsStore() bool  { return true }
func (c *ReorderCmd) Mutates() bool     { return true }

func (c *ReorderCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.bucket, "bucket", "inbox", "")
	fs.StringVar(&c.bucket, "b", "inbox", "")
}

func (c *ReorderCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	if len(args) != 2 {
		fmt.Fprintln(errOut, "error: expected <from> and <to> positions")
		return exitcode.UserError
	}
	from, err1 := strconv.Atoi(args[0])
	to, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil || from < 1 || to < 1 {
		fmt.Fprintln(errOut, "error: positions must be positive numbers")
		return exitcode.UserError
	}
	bucket, err := parseBucket(c.bucket)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	// Positions are 1-based on the CLI, 0-based in the store. The store
	// counts the destination against the list with the moved task removed,
	// so a downward move shifts by one to keep <to> meaning the final
	// position.
	fromIdx, toIdx := from-1, to-1
	if toIdx > fromIdx {
		toIdx++
	}
	if err := a.Store.Reorder(bucket, []int{fromIdx}, toIdx); err != nil {
		return fail(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
