// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"godo/internal/model"
	"godo/internal/notify"
)

const (
	// SectionSeparator is the separator line for bucket and group sections.
	SectionSeparator = "------------"
)

// FormatTask formats a task line.
// Format: "{N:>4}  {MARK} {TITLE}{SUFFIX}\n" where MARK is the priority
// marker and SUFFIX carries due date and tags.
func FormatTask(w io.Writer, num int, task model.Task) {
	fmt.Fprintf(w, "%4d  %s%s%s\n", num, priorityMark(task.Priority), normalizeTitle(task.Title), taskSuffix(task))
}

func priorityMark(p model.Priority) string {
	switch p {
	case model.PriorityHigh:
		return "! "
	case model.PriorityLow:
		return ". "
	}
	return "  "
}

func taskSuffix(task model.Task) string {
	var b strings.Builder
	if task.Due != nil {
		fmt.Fprintf(&b, "  (due %s)", task.Due.Format("2006-01-02 15:04"))
	}
	if len(task.Tags) > 0 {
		fmt.Fprintf(&b, "  %s", strings.Join(task.Tags, " "))
	}
	return b.String()
}

// FormatSectionHeader formats a bucket or category group header.
func FormatSectionHeader(w io.Writer, title string, count int) {
	fmt.Fprintln(w, SectionSeparator)
	fmt.Fprintf(w, "%s (%d)\n", title, count)
	fmt.Fprintln(w, SectionSeparator)
}

// FormatCategory formats a category line for the category ls command.
func FormatCategory(w io.Writer, c model.Category) {
	fmt.Fprintf(w, "%s  [%s/%s]\n", c.Name, c.Icon, c.Color)
}

// FormatTrigger formats a pending trigger line.
func FormatTrigger(w io.Writer, d notify.Descriptor) {
	repeat := ""
	if d.Repeats {
		repeat = " (repeats)"
	}
	fmt.Fprintf(w, "%s  %-14s  %s%s\n", d.FireAt.Format("2006-01-02 15:04"), d.Kind, normalizeTitle(d.Body), repeat)
}

// normalizeTitle normalizes a title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
