package notify

import (
	"fmt"
	"time"
)

// ClockTime is a wall-clock time of day ("15:04") used in settings.
type ClockTime struct {
	Hour   int `yaml:"hour"`
	Minute int `yaml:"minute"`
}

// At anchors the clock time on the given day.
func (c ClockTime) At(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), c.Hour, c.Minute, 0, 0, day.Location())
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Settings are the global notification preferences.
type Settings struct {
	TaskRemindersEnabled bool `yaml:"task_reminders_enabled"`
	// ReminderLeadMinutes is how long before the due date the reminder fires.
	ReminderLeadMinutes int `yaml:"reminder_lead_minutes"`

	DailySummaryEnabled bool      `yaml:"daily_summary_enabled"`
	DailySummaryTime    ClockTime `yaml:"daily_summary_time"`

	WeeklyReviewEnabled bool `yaml:"weekly_review_enabled"`
	// WeeklyReviewDay is 0=Sunday .. 6=Saturday.
	WeeklyReviewDay  int       `yaml:"weekly_review_day"`
	WeeklyReviewTime ClockTime `yaml:"weekly_review_time"`

	FocusSessionEnabled bool `yaml:"focus_session_enabled"`

	QuietHoursEnabled bool      `yaml:"quiet_hours_enabled"`
	QuietHoursStart   ClockTime `yaml:"quiet_hours_start"`
	QuietHoursEnd     ClockTime `yaml:"quiet_hours_end"`
}

// DefaultSettings returns the stock preferences: reminders 30 minutes before
// due, daily summary at 09:00, weekly review Monday 20:00, quiet hours
// 22:00-07:00 but disabled.
func DefaultSettings() Settings {
	return Settings{
		TaskRemindersEnabled: true,
		ReminderLeadMinutes:  30,
		DailySummaryEnabled:  true,
		DailySummaryTime:     ClockTime{Hour: 9},
		WeeklyReviewEnabled:  true,
		WeeklyReviewDay:      1,
		WeeklyReviewTime:     ClockTime{Hour: 20},
		FocusSessionEnabled:  true,
		QuietHoursEnabled:    false,
		QuietHoursStart:      ClockTime{Hour: 22},
		QuietHoursEnd:        ClockTime{Hour: 7},
	}
}

// inQuietHours reports whether t falls inside the quiet window. The window
// may wrap midnight (22:00-07:00).
func (s Settings) inQuietHours(t time.Time) bool {
	if !s.QuietHoursEnabled {
		return false
	}
	start := s.QuietHoursStart.At(t)
	end := s.QuietHoursEnd.At(t)
	if start.Before(end) {
		return !t.Before(start) && t.Before(end)
	}
	// Wraps midnight.
	return !t.Before(start) || t.Before(end)
}

// deferPastQuietHours shifts a fire time that lands in the quiet window to
// the end of that window.
func (s Settings) deferPastQuietHours(t time.Time) time.Time {
	if !s.inQuietHours(t) {
		return t
	}
	end := s.QuietHoursEnd.At(t)
	if end.Before(t) || end.Equal(t) {
		end = end.AddDate(0, 0, 1)
	}
	return end
}
