// Package model defines the task, category and recurrence value types.
package model

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle bucket a task belongs to.
type Status string

const (
	StatusInbox Status = "inbox"
	StatusToday Status = "today"
	StatusDone  Status = "done"
)

// Statuses lists every valid status in lifecycle order.
var Statuses = []Status{StatusInbox, StatusToday, StatusDone}

// ParseStatus decodes a wire status string.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusInbox, StatusToday, StatusDone:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown status: %q", s)
}

// Priority orders tasks by importance. High > Normal > Low.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

// ParsePriority decodes a wire priority string.
func ParsePriority(s string) (Priority, error) {
	switch Priority(s) {
	case PriorityLow, PriorityNormal, PriorityHigh:
		return Priority(s), nil
	}
	return "", fmt.Errorf("unknown priority: %q", s)
}

// Rank returns the numeric rank used for sorting (high=3, normal=2, low=1).
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityNormal:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// Task is a single to-do item. A task lives in exactly one status bucket;
// Status mirrors bucket membership and is maintained by the store.
type Task struct {
	ID        string
	Title     string
	Notes     string
	Due       *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
	Status    Status
	Priority  Priority
	// CategoryID is a lookup key into the category set, not ownership.
	CategoryID string
	Tags       []string
	// SortOrder is the manual position within the task's status bucket.
	SortOrder int

	NotificationEnabled bool
	// NotificationTime is an explicit reminder time, independent of Due.
	NotificationTime *time.Time

	Recurrence *RecurrenceRule

	// OriginalStatus records the bucket a task was completed from, so
	// restore can send it back there.
	OriginalStatus Status

	// CustomFields holds per-task extension data from richer producers.
	// The store never interprets it; it rides along so a document round
	// trip does not lose it.
	CustomFields map[string]json.RawMessage
}

// NewTask creates a task in the inbox with a fresh id and timestamps.
func NewTask(title string) Task {
	now := time.Now()
	return Task{
		ID:                  uuid.NewString(),
		Title:               title,
		CreatedAt:           now,
		UpdatedAt:           now,
		Status:              StatusInbox,
		Priority:            PriorityNormal,
		NotificationEnabled: true,
	}
}

// Touch refreshes UpdatedAt.
func (t *Task) Touch(now time.Time) {
	t.UpdatedAt = now
}

// HasTag reports whether the task carries the exact tag string.
func (t *Task) HasTag(tag string) bool {
	return slices.Contains(t.Tags, tag)
}

// Clone returns a deep copy of the task.
func (t Task) Clone() Task {
	c := t
	c.Tags = slices.Clone(t.Tags)
	if t.Due != nil {
		d := *t.Due
		c.Due = &d
	}
	if t.NotificationTime != nil {
		n := *t.NotificationTime
		c.NotificationTime = &n
	}
	if t.Recurrence != nil {
		r := *t.Recurrence
		if t.Recurrence.EndDate != nil {
			e := *t.Recurrence.EndDate
			r.EndDate = &e
		}
		c.Recurrence = &r
	}
	if t.CustomFields != nil {
		c.CustomFields = make(map[string]json.RawMessage, len(t.CustomFields))
		for k, v := range t.CustomFields {
			c.CustomFields[k] = slices.Clone(v)
		}
	}
	return c
}

// CanonicalTag trims a tag name and prefixes it with "#" if missing.
// Returns "" for blank input.
func CanonicalTag(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if !strings.HasPrefix(name, "#") {
		name = "#" + name
	}
	return name
}
