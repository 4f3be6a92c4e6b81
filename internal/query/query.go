// Package query builds filtered, sorted and grouped views over immutable
// task snapshots. Every function is pure; the store is never reached into.
package query

import (
	"fmt"
	"sort"
	"strings"

	"godo/internal/model"
)

// SortKey selects the dimension a view is ordered by.
type SortKey string

const (
	SortManual    SortKey = "manual"
	SortPriority  SortKey = "priority"
	SortDueDate   SortKey = "dueDate"
	SortCategory  SortKey = "category"
	SortCreatedAt SortKey = "createdAt"
	SortTitle     SortKey = "title"
)

// ParseSortKey decodes a sort key string.
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(s) {
	case SortManual, SortPriority, SortDueDate, SortCategory, SortCreatedAt, SortTitle:
		return SortKey(s), nil
	}
	return "", fmt.Errorf("unknown sort key: %q", s)
}

// Direction flips the order for keys that honor it.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Uncategorized is the synthetic category label for tasks without one.
const Uncategorized = "uncategorized"

// Options parameterize a view.
type Options struct {
	Key       SortKey
	Direction Direction
	// TagFilter keeps only tasks whose tag set intersects it. Empty means
	// no tag filtering.
	TagFilter []string
	// HideCompleted drops done tasks from the view.
	HideCompleted bool
}

// View filters and sorts a task snapshot. The sort is stable and every key
// breaks ties by ascending sort order, so repeated views are idempotent and
// manual order is the deterministic tiebreaker.
func View(tasks []model.Task, categories []model.Category, opts Options) []model.Task {
	out := filter(tasks, opts)
	names := categoryNames(categories)

	less := lessFunc(opts, names)
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func filter(tasks []model.Task, opts Options) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if opts.HideCompleted && t.Status == model.StatusDone {
			continue
		}
		if len(opts.TagFilter) > 0 && !intersects(t.Tags, opts.TagFilter) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func intersects(tags, filter []string) bool {
	for _, f := range filter {
		for _, t := range tags {
			if t == f {
				return true
			}
		}
	}
	return false
}

func categoryNames(categories []model.Category) map[string]string {
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return names
}

func resolveCategory(t model.Task, names map[string]string) string {
	if t.CategoryID != "" {
		if name, ok := names[t.CategoryID]; ok {
			return name
		}
	}
	return Uncategorized
}

func lessFunc(opts Options, names map[string]string) func(a, b model.Task) bool {
	byOrder := func(a, b model.Task) bool { return a.SortOrder < b.SortOrder }

	switch opts.Key {
	case SortPriority:
		desc := opts.Direction != Ascending // high-first is the default
		return func(a, b model.Task) bool {
			ra, rb := a.Priority.Rank(), b.Priority.Rank()
			if ra == rb {
				return byOrder(a, b)
			}
			if desc {
				return ra > rb
			}
			return ra < rb
		}
	case SortDueDate:
		// Tasks without a due date sort after every dated task.
		return func(a, b model.Task) bool {
			switch {
			case a.Due == nil && b.Due == nil:
				return byOrder(a, b)
			case a.Due == nil:
				return false
			case b.Due == nil:
				return true
			case a.Due.Equal(*b.Due):
				return byOrder(a, b)
			}
			return a.Due.Before(*b.Due)
		}
	case SortCategory:
		return func(a, b model.Task) bool {
			ca, cb := resolveCategory(a, names), resolveCategory(b, names)
			if ca == cb {
				return byOrder(a, b)
			}
			return ca < cb
		}
	case SortCreatedAt:
		// Newest first; this key ignores the direction toggle.
		return func(a, b model.Task) bool {
			if a.CreatedAt.Equal(b.CreatedAt) {
				return byOrder(a, b)
			}
			return a.CreatedAt.After(b.CreatedAt)
		}
	case SortTitle:
		return func(a, b model.Task) bool {
			ta, tb := strings.ToLower(a.Title), strings.ToLower(b.Title)
			if ta == tb {
				return byOrder(a, b)
			}
			return ta < tb
		}
	default: // SortManual
		return byOrder
	}
}

// Group is one category partition of a grouped view.
type Group struct {
	Name  string
	Tasks []model.Task
}

// Grouped partitions the sorted view by resolved category name, including
// the synthetic uncategorized bucket. Groups come back in lexicographic
// name order for deterministic display.
func Grouped(tasks []model.Task, categories []model.Category, opts Options) []Group {
	sorted := View(tasks, categories, opts)
	names := categoryNames(categories)

	byName := map[string][]model.Task{}
	for _, t := range sorted {
		name := resolveCategory(t, names)
		byName[name] = append(byName[name], t)
	}

	keys := make([]string, 0, len(byName))
	for name := range byName {
		keys = append(keys, name)
	}
	sort.Strings(keys)

	out := make([]Group, 0, len(keys))
	for _, name := range keys {
		out = append(out, Group{Name: name, Tasks: byName[name]})
	}
	return out
}
