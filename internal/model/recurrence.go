package model

import (
	"fmt"
	"time"
)

// RecurrenceUnit is the calendar unit a recurrence rule advances by.
type RecurrenceUnit string

const (
	RecurDaily   RecurrenceUnit = "day"
	RecurWeekly  RecurrenceUnit = "week"
	RecurMonthly RecurrenceUnit = "month"
)

// ParseRecurrenceUnit decodes a wire recurrence unit string.
func ParseRecurrenceUnit(s string) (RecurrenceUnit, error) {
	switch RecurrenceUnit(s) {
	case RecurDaily, RecurWeekly, RecurMonthly:
		return RecurrenceUnit(s), nil
	}
	return "", fmt.Errorf("unknown recurrence unit: %q", s)
}

// RecurrenceRule describes how a task repeats. The rule is descriptive
// metadata; materializing the next instance is the recurrence expander's job.
type RecurrenceRule struct {
	Enabled  bool
	Unit     RecurrenceUnit
	Interval int
	EndDate  *time.Time
}

// Validate rejects structurally invalid rules.
func (r RecurrenceRule) Validate() error {
	if !r.Enabled {
		return nil
	}
	if _, err := ParseRecurrenceUnit(string(r.Unit)); err != nil {
		return err
	}
	if r.Interval < 1 {
		return fmt.Errorf("recurrence interval must be >= 1, got %d", r.Interval)
	}
	return nil
}
