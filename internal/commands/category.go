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
	"godo/internal/output"
)

func init() {
	Register(&CategoryCmd{})
}

// CategoryCmd implements the category command with ls/add/rename/rm
// subactions.
type CategoryCmd struct {
	icon  string
	color string
}

func (c *CategoryCmd) Name() string      { return "category" }
func (c *CategoryCmd) Aliases() []string { return []string{"cat"} }
func (c *CategoryCmd) Synopsis() string  { return "Manage categories" }
func (c *CategoryCmd) Usage() string {
	return "godo category <ls | add <name> [--icon <icon>] [--color <color>] | rename <old> <new> | rm <name>>"
}
func (c *CategoryCmd) NeedsStore() bool { return true }
func (c *CategoryCmd) Mutates() bool    { return true }

func (c *CategoryCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.icon, "icon", string(model.IconFolder), "")
	fs.StringVar(&c.color, "color", string(model.ColorBlue), "")
}

func (c *CategoryCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	action := "ls"
	if len(args) > 0 {
		action = args[0]
		args = args[1:]
	}

	switch action {
	case "ls":
		for _, cat := range a.Store.Categories() {
			output.FormatCategory(out, cat)
		}
		return exitcode.Success

	case "add":
		if len(args) != 1 {
			fmt.Fprintln(errOut, "error: category name required")
			return exitcode.UserError
		}
		icon, err := model.ParseCategoryIcon(c.icon)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		color, err := model.ParseCategoryColor(c.color)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		cat := model.NewCategory(args[0])
		cat.Icon = icon
		cat.Color = color
		if _, err := a.Store.AddCategory(cat); err != nil {
			return fail(errOut, err)
		}

	case "rename":
		if len(args) != 2 {
			fmt.Fprintln(errOut, "error: expected <old> and <new> names")
			return exitcode.UserError
		}
		cat, err := a.Store.CategoryByName(args[0])
		if err != nil {
			return fail(errOut, err)
		}
		cat.Name = args[1]
		if _, err := a.Store.UpdateCategory(cat); err != nil {
			return fail(errOut, err)
		}

	case "rm":
		if len(args) != 1 {
			fmt.Fprintln(errOut, "error: category name required")
			return exitcode.UserError
		}
		cat, err := a.Store.CategoryByName(args[0])
		if err != nil {
			return fail(errOut, err)
		}
		if err := a.Store.DeleteCategory(cat.ID); err != nil {
			return fail(errOut, err)
		}

	default:
		fmt.Fprintf(errOut, "error: unknown category action: %s\n", action)
		return exitcode.UserError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
