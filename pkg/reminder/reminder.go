package reminder

import (
	"fmt"
	"time"
)

// Settings controls the daily spending reminder and which notification kinds
// are delivered.
type Settings struct {
	ReminderTime   string // "HH:MM", 24-hour clock
	DailyReminder  bool
	BudgetWarnings bool
	BillReminders  bool
}

// Record is the persisted and exported form of Settings.
type Record struct {
	ReminderTime   string `json:"reminderTime"`
	DailyReminder  *bool  `json:"dailyReminder,omitempty"`
	BudgetWarnings bool   `json:"budgetWarnings"`
	BillReminders  bool   `json:"billReminders"`
}

func ToRecord(s Settings) Record {
	return Record{
		ReminderTime:   s.ReminderTime,
		DailyReminder:  &s.DailyReminder,
		BudgetWarnings: s.BudgetWarnings,
		BillReminders:  s.BillReminders,
	}
}

// FromRecord restores Settings from their persisted form. Snapshots written
// before the daily reminder toggle existed carry no dailyReminder field;
// those load as enabled.
func FromRecord(r Record) Settings {
	s := Settings{
		ReminderTime:   r.ReminderTime,
		DailyReminder:  true,
		BudgetWarnings: r.BudgetWarnings,
		BillReminders:  r.BillReminders,
	}
	if r.DailyReminder != nil {
		s.DailyReminder = *r.DailyReminder
	}
	return s
}

// ParseClockTime splits an "HH:MM" string into its hour and minute parts.
func ParseClockTime(value string) (hour, minute int, err error) {
	parsed, err := time.Parse("15:04", value)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid reminder time %q: %w", value, err)
	}
	return parsed.Hour(), parsed.Minute(), nil
}
