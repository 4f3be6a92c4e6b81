package notify

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"godo/internal/model"
)

// DescriptorsFor computes the set of triggers that should exist for a task
// snapshot under the given settings. Pure: the same inputs always yield the
// same descriptors.
//
// Two triggers may coexist per task: a due-date reminder at due minus the
// configured lead, and an explicit-time reminder at NotificationTime. Both
// require NotificationEnabled, and fire times in the past are dropped.
// Fire times inside the quiet-hours window are deferred to the window's end.
func DescriptorsFor(t model.Task, s Settings, now time.Time) []Descriptor {
	if !t.NotificationEnabled {
		return nil
	}

	var out []Descriptor
	if t.Due != nil && s.TaskRemindersEnabled {
		fire := t.Due.Add(-time.Duration(s.ReminderLeadMinutes) * time.Minute)
		fire = s.deferPastQuietHours(fire)
		if fire.After(now) {
			out = append(out, Descriptor{
				ID:       ReminderID(t.ID),
				TaskID:   t.ID,
				Kind:     KindReminder,
				FireAt:   fire,
				Title:    "Task due soon",
				Body:     t.Title,
				Category: CategoryTaskReminder,
			})
		}
	}
	if t.NotificationTime != nil {
		fire := s.deferPastQuietHours(*t.NotificationTime)
		if fire.After(now) {
			out = append(out, Descriptor{
				ID:       CustomID(t.ID),
				TaskID:   t.ID,
				Kind:     KindCustom,
				FireAt:   fire,
				Title:    "Task reminder",
				Body:     t.Title,
				Category: CategoryTaskReminder,
			})
		}
	}
	return out
}

// Scheduler keeps the trigger registry consistent with task state. All
// operations are best-effort: failures are logged and reported, never
// propagated as store failures.
type Scheduler struct {
	reg      Registry
	clock    Clock
	settings Settings
	log      *slog.Logger
}

// NewScheduler wires a scheduler to a registry. A nil clock means real time;
// a nil logger means slog.Default.
func NewScheduler(reg Registry, clock Clock, settings Settings, log *slog.Logger) *Scheduler {
	if clock == nil {
		clock = SystemClock{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Scheduler{reg: reg, clock: clock, settings: settings, log: log}
}

// ScheduleFor cancels the task's pending triggers and schedules the set the
// task's current fields call for. Idempotent: calling it twice leaves the
// same pending triggers as calling it once.
func (s *Scheduler) ScheduleFor(t model.Task) error {
	ids := []string{ReminderID(t.ID), CustomID(t.ID)}
	for _, id := range ids {
		if err := s.reg.Cancel(id); err != nil {
			s.log.Warn("cancel trigger failed", "id", id, "error", err)
		}
	}
	var firstErr error
	for _, d := range DescriptorsFor(t, s.settings, s.clock.Now()) {
		if err := s.reg.Schedule(d); err != nil {
			s.log.Warn("schedule trigger failed", "id", d.ID, "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// CancelFor removes every pending trigger belonging to the task.
func (s *Scheduler) CancelFor(taskID string) error {
	if err := s.reg.CancelAll(taskID); err != nil {
		s.log.Warn("cancel triggers failed", "task", taskID, "error", err)
		return err
	}
	return nil
}

// ScheduleSummaries replaces the repeating daily-summary and weekly-review
// triggers according to settings. Anchored on the next occurrence after now.
func (s *Scheduler) ScheduleSummaries() error {
	now := s.clock.Now()

	for _, id := range []string{DailySummaryID, WeeklyReviewID} {
		if err := s.reg.Cancel(id); err != nil {
			s.log.Warn("cancel trigger failed", "id", id, "error", err)
		}
	}

	var firstErr error
	if s.settings.DailySummaryEnabled {
		fire := s.settings.DailySummaryTime.At(now)
		if !fire.After(now) {
			fire = fire.AddDate(0, 0, 1)
		}
		err := s.reg.Schedule(Descriptor{
			ID:       DailySummaryID,
			Kind:     KindDailySummary,
			FireAt:   fire,
			Repeats:  true,
			Title:    "Daily review",
			Body:     "Look back on today's tasks and plan tomorrow",
			Category: CategoryDailyReview,
		})
		if err != nil {
			s.log.Warn("schedule daily summary failed", "error", err)
			firstErr = err
		}
	}
	if s.settings.WeeklyReviewEnabled {
		fire := s.settings.WeeklyReviewTime.At(now)
		for int(fire.Weekday()) != s.settings.WeeklyReviewDay || !fire.After(now) {
			fire = fire.AddDate(0, 0, 1)
		}
		err := s.reg.Schedule(Descriptor{
			ID:       WeeklyReviewID,
			Kind:     KindWeeklyReview,
			FireAt:   fire,
			Repeats:  true,
			Title:    "Weekly review",
			Body:     "Look back on this week's tasks and plan the next",
			Category: CategoryWeeklyReview,
		})
		if err != nil {
			s.log.Warn("schedule weekly review failed", "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// ScheduleFocusSession schedules a one-shot completion trigger for a focus
// session running against the named task.
func (s *Scheduler) ScheduleFocusSession(taskTitle string, duration time.Duration) error {
	if !s.settings.FocusSessionEnabled {
		return nil
	}
	d := Descriptor{
		ID:       "focus_session_" + uuid.NewString(),
		Kind:     KindFocusSession,
		FireAt:   s.clock.Now().Add(duration),
		Title:    "Focus session finished",
		Body:     fmt.Sprintf("Focus time for %s is over", taskTitle),
		Category: CategoryFocusSession,
	}
	if err := s.reg.Schedule(d); err != nil {
		s.log.Warn("schedule focus session failed", "error", err)
		return err
	}
	return nil
}
