package models

import "time"

// Reminder types.
const (
	ReminderTypeMedicine = "medicine"
	ReminderTypeTask     = "task"
)

// Reminder is a daily clock-time reminder. Time is a local wall-clock
// "HH:MM" string with no date or timezone component: while enabled, the
// reminder fires every day at that clock time.
type Reminder struct {
	Title     string `json:"title"`
	Time      string `json:"time"`
	Type      string `json:"type"`
	Enabled   bool   `json:"enabled"`
	CreatedAt int64  `json:"createdAt"`
}

// ReminderView is a Reminder as returned by list operations, carrying its
// KV key as ID. The ID is what update and delete operations address.
type ReminderView struct {
	ID string `json:"id"`
	Reminder
}

// ReminderInput is the create payload. Enabled is a pointer so that an
// absent field defaults to true while an explicit false is honored.
type ReminderInput struct {
	Title   string `json:"title"`
	Time    string `json:"time"`
	Type    string `json:"type,omitempty"`
	Enabled *bool  `json:"enabled,omitempty"`
}

// ValidClockTime reports whether s is a 24-hour "HH:MM" clock time.
func ValidClockTime(s string) bool {
	if len(s) != 5 {
		return false
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}

// ValidReminderType reports whether s is a known reminder type.
func ValidReminderType(s string) bool {
	return s == ReminderTypeMedicine || s == ReminderTypeTask
}

// ClockMinute formats t as the "HH:MM" minute the scheduler matches against.
func ClockMinute(t time.Time) string {
	return t.Format("15:04")
}
