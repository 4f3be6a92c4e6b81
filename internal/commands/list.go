package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"godo/internal/app"
	"godo/internal/config"
	"godo/internal/exitcode"
	"godo/internal/model"
	"godo/internal/output"
	"godo/internal/query"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
type ListCmd struct {
	bucket   string
	sortKey  string
	dir      string
	tags     string
	hideDone bool
	grouped  bool
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string {
	return "godo list [--bucket inbox|today|done|all] [--sort manual|priority|dueDate|category|createdAt|title] [--dir asc|desc] [--tags <t1,t2>] [--hide-done] [--grouped]"
}
func (c *ListCmd) NeedsStore() bool { return true }
func (c *ListCmd) Mutates() bool    { return false }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.bucket, "bucket", "all", "")
	fs.StringVar(&c.bucket, "b", "all", "")
	fs.StringVar(&c.sortKey, "sort", string(query.SortManual), "")
	fs.StringVar(&c.sortKey, "s", string(query.SortManual), "")
	fs.StringVar(&c.dir, "dir", "", "")
	fs.StringVar(&c.tags, "tags", "", "")
	fs.BoolVar(&c.hideDone, "hide-done", false, "")
	fs.BoolVar(&c.grouped, "grouped", false, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	key, err := query.ParseSortKey(c.sortKey)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	opts := query.Options{
		Key:           key,
		Direction:     query.Descending,
		HideCompleted: c.hideDone,
	}
	switch c.dir {
	case "":
	case "asc":
		opts.Direction = query.Ascending
	case "desc":
		opts.Direction = query.Descending
	default:
		fmt.Fprintf(errOut, "error: unknown direction: %s\n", c.dir)
		return exitcode.UserError
	}
	for _, tag := range strings.Split(c.tags, ",") {
		if tag = model.CanonicalTag(tag); tag != "" {
			opts.TagFilter = append(opts.TagFilter, tag)
		}
	}

	var tasks []model.Task
	if c.bucket == "all" {
		tasks = a.Store.Snapshot()
	} else {
		bucket, err := parseBucket(c.bucket)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		tasks = a.Store.Bucket(bucket)
	}
	categories := a.Store.Categories()

	if c.grouped {
		for _, g := range query.Grouped(tasks, categories, opts) {
			output.FormatSectionHeader(out, g.Name, len(g.Tasks))
			for i, t := range g.Tasks {
				output.FormatTask(out, i+1, t)
			}
		}
		return exitcode.Success
	}

	view := query.View(tasks, categories, opts)
	if c.bucket == "all" {
		// Numbering restarts per bucket so numbers line up with refs.
		for _, bucket := range model.Statuses {
			n := 0
			for _, t := range view {
				if t.Status != bucket {
					continue
				}
				if n == 0 {
					output.FormatSectionHeader(out, bucketTitle(bucket), countStatus(view, bucket))
				}
				n++
				output.FormatTask(out, n, t)
			}
		}
		return exitcode.Success
	}
	for i, t := range view {
		output.FormatTask(out, i+1, t)
	}
	return exitcode.Success
}

func bucketTitle(s model.Status) string {
	switch s {
	case model.StatusInbox:
		return "Inbox"
	case model.StatusToday:
		return "Today"
	case model.StatusDone:
		return "Done"
	}
	return string(s)
}

func countStatus(tasks []model.Task, s model.Status) int {
	n := 0
	for _, t := range tasks {
		if t.Status == s {
			n++
		}
	}
	return n
}
