package archive

import (
	"time"

	"github.com/kharcha/kharcha/internal/money"
	"github.com/kharcha/kharcha/pkg/expense"
	"github.com/kharcha/kharcha/pkg/period"
)

// Entry is an immutable snapshot of a retired period together with its
// expenses and their total. Entries are never mutated after archival.
type Entry struct {
	Period     period.TrackingPeriod
	Expenses   []expense.Expense
	ArchivedAt time.Time
	TotalSpent money.Money
}

// Record is the persisted and exported form of Entry.
type Record struct {
	Period     period.Record    `json:"period"`
	Expenses   []expense.Record `json:"expenses"`
	ArchivedAt string           `json:"archivedAt"`
	TotalSpent int64            `json:"totalSpent"`
}

func ToRecord(e Entry) Record {
	return Record{
		Period:     period.ToRecord(e.Period),
		Expenses:   expense.ToRecords(e.Expenses),
		ArchivedAt: e.ArchivedAt.Format(time.RFC3339),
		TotalSpent: int64(e.TotalSpent),
	}
}

func FromRecord(r Record) (Entry, error) {
	p, err := period.FromRecord(r.Period)
	if err != nil {
		return Entry{}, err
	}
	expenses, err := expense.FromRecords(r.Expenses)
	if err != nil {
		return Entry{}, err
	}
	archivedAt, err := time.Parse(time.RFC3339, r.ArchivedAt)
	if err != nil {
		return Entry{}, err
	}
	return Entry{
		Period:     p,
		Expenses:   expenses,
		ArchivedAt: archivedAt,
		TotalSpent: money.Money(r.TotalSpent),
	}, nil
}

func ToRecords(entries []Entry) []Record {
	records := make([]Record, 0, len(entries))
	for _, e := range entries {
		records = append(records, ToRecord(e))
	}
	return records
}

func FromRecords(records []Record) ([]Entry, error) {
	entries := make([]Entry, 0, len(records))
	for _, r := range records {
		e, err := FromRecord(r)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}
