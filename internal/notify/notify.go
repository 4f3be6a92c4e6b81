// Package notify derives scheduled-trigger descriptors from task fields and
// global notification settings, and keeps a trigger registry in sync with
// the store through cancel-then-schedule rescheduling.
package notify

import (
	"time"
)

// Kind classifies a trigger descriptor.
type Kind string

const (
	KindReminder     Kind = "reminder"
	KindCustom       Kind = "custom"
	KindDailySummary Kind = "daily-summary"
	KindWeeklyReview Kind = "weekly-review"
	KindFocusSession Kind = "focus-session"
)

// Category identifiers carried in the trigger payload so the delivery layer
// can attach the right actions.
const (
	CategoryTaskReminder = "TASK_REMINDER"
	CategoryDailyReview  = "DAILY_REVIEW"
	CategoryWeeklyReview = "WEEKLY_REVIEW"
	CategoryFocusSession = "FOCUS_SESSION"
)

// Descriptor is one scheduled trigger, abstracted from the delivery
// mechanism. Its ID is deterministic for a given (task, kind) pair so that
// rescheduling is idempotent.
type Descriptor struct {
	ID       string
	TaskID   string
	Kind     Kind
	FireAt   time.Time
	Repeats  bool
	Title    string
	Body     string
	Category string
}

// ReminderID is the identifier of a task's due-date reminder trigger.
func ReminderID(taskID string) string { return "task_" + taskID }

// CustomID is the identifier of a task's explicit-time reminder trigger.
func CustomID(taskID string) string { return "custom_task_" + taskID }

// Identifiers for the store-wide repeating triggers.
const (
	DailySummaryID = "daily_review"
	WeeklyReviewID = "weekly_review"
)

// Registry is the external scheduling boundary. Implementations persist or
// deliver pending triggers; the scheduler only relies on these three
// primitives.
type Registry interface {
	// Schedule registers a trigger, replacing any pending trigger with the
	// same identifier.
	Schedule(d Descriptor) error

	// Cancel removes the pending trigger with the given identifier, if any.
	Cancel(id string) error

	// CancelAll removes every pending trigger belonging to the task.
	CancelAll(taskID string) error
}

// Clock abstracts time.Now for deterministic scheduling decisions.
type Clock interface {
	Now() time.Time
}

// SystemClock is the real-time Clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
