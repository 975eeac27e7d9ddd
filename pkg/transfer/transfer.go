package transfer

import (
	"github.com/kharcha/kharcha/pkg/archive"
	"github.com/kharcha/kharcha/pkg/bills"
	"github.com/kharcha/kharcha/pkg/budget"
	"github.com/kharcha/kharcha/pkg/expense"
	"github.com/kharcha/kharcha/pkg/period"
	"github.com/kharcha/kharcha/pkg/reminder"
)

// Version identifies the backup document layout.
const Version = "2.0"

// Document is a full backup of the tracker. On import, absent sections keep
// their current values; a present but empty section overwrites.
type Document struct {
	Version              string           `json:"version"`
	ExportDate           string           `json:"exportDate"`
	Expenses             []expense.Record `json:"expenses,omitempty"`
	RecurringBills       []bills.Record   `json:"recurringBills,omitempty"`
	BudgetSettings       *budget.Record   `json:"budgetSettings,omitempty"`
	TrackingPeriods      []period.Record  `json:"trackingPeriods,omitempty"`
	CurrentPeriod        *period.Record   `json:"currentPeriod,omitempty"`
	ArchivedData         []archive.Record `json:"archivedData,omitempty"`
	NotificationSettings *reminder.Record `json:"notificationSettings,omitempty"`
}

// HistorySnapshot is the current period's state inside a history export.
type HistorySnapshot struct {
	Period     period.Record    `json:"period"`
	Expenses   []expense.Record `json:"expenses"`
	TotalSpent int64            `json:"totalSpent"`
}

// HistoryDocument is a read-only export of the archive plus the running
// period. It is not importable.
type HistoryDocument struct {
	ExportDate    string           `json:"exportDate"`
	ArchivedData  []archive.Record `json:"archivedData"`
	CurrentPeriod *HistorySnapshot `json:"currentPeriod,omitempty"`
}
