// Package recur materializes the next instance of a recurring task. The
// expander is deliberately separate from complete: it reads a completed
// recurring task and creates the follow-up through the store's normal add
// path.
package recur

import (
	"time"

	"godo/internal/model"
	"godo/internal/store"
)

// Next computes the due date following from, per the rule. Returns false
// when the rule is disabled or the next occurrence falls past the end date.
func Next(rule *model.RecurrenceRule, from time.Time) (time.Time, bool) {
	if rule == nil || !rule.Enabled || rule.Interval < 1 {
		return time.Time{}, false
	}
	var next time.Time
	switch rule.Unit {
	case model.RecurDaily:
		next = from.AddDate(0, 0, rule.Interval)
	case model.RecurWeekly:
		next = from.AddDate(0, 0, 7*rule.Interval)
	case model.RecurMonthly:
		next = from.AddDate(0, rule.Interval, 0)
	default:
		return time.Time{}, false
	}
	if rule.EndDate != nil && next.After(*rule.EndDate) {
		return time.Time{}, false
	}
	return next, true
}

// Expand creates the next instance of a completed recurring task in the
// store's inbox. The new task copies title, notes, priority, category, tags
// and notification settings, carries the advanced due date, and gets a
// fresh id. Returns false without mutating when the task does not recur.
func Expand(st *store.Store, t model.Task) (model.Task, bool, error) {
	if t.Status != model.StatusDone || t.Due == nil {
		return model.Task{}, false, nil
	}
	due, ok := Next(t.Recurrence, *t.Due)
	if !ok {
		return model.Task{}, false, nil
	}

	next := t.Clone()
	next.ID = ""
	next.CreatedAt = time.Time{}
	next.Due = &due
	next.OriginalStatus = ""
	next.NotificationTime = nil

	created, err := st.Add(next)
	if err != nil {
		return model.Task{}, false, err
	}
	return created, true, nil
}
