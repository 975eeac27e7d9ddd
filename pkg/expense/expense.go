package expense

import (
	"time"

	"github.com/kharcha/kharcha/internal/money"
)

// Category is one of the fixed spending categories. Unknown categories are
// displayed with a fallback icon but are not rejected.
type Category string

const (
	CategoryFood          Category = "Food"
	CategoryTransport     Category = "Transport"
	CategoryEducation     Category = "Education"
	CategoryEntertainment Category = "Entertainment"
	CategoryHealth        Category = "Health"
	CategoryShopping      Category = "Shopping"
	CategoryPersonal      Category = "Personal"
	CategoryEmergency     Category = "Emergency"
	CategoryOther         Category = "Other"
)

var categoryIcons = map[Category]string{
	CategoryFood:          "utensils",
	CategoryTransport:     "bus",
	CategoryEducation:     "book",
	CategoryEntertainment: "film",
	CategoryHealth:        "heartbeat",
	CategoryShopping:      "shopping-bag",
	CategoryPersonal:      "user",
	CategoryEmergency:     "exclamation-triangle",
	CategoryOther:         "tag",
}

// Icon returns the display icon name for the category, with a fallback for
// unknown categories.
func (c Category) Icon() string {
	if icon, ok := categoryIcons[c]; ok {
		return icon
	}
	return "tag"
}

func Categories() []Category {
	return []Category{
		CategoryFood, CategoryTransport, CategoryEducation, CategoryEntertainment,
		CategoryHealth, CategoryShopping, CategoryPersonal, CategoryEmergency,
		CategoryOther,
	}
}

// Expense is a single ledger entry. Entries are append-only and immutable
// once created.
type Expense struct {
	ID          int64
	Description string
	Amount      money.Money
	Category    Category
	Date        time.Time // the spending date, user-editable
	Notes       string
	Timestamp   time.Time // creation instant, used only for recency ordering
	PeriodID    int64
}

const dateLayout = "2006-01-02"

// Record is the persisted and exported form of Expense.
type Record struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
	Amount      int64  `json:"amount"`
	Category    string `json:"category"`
	Date        string `json:"date"`
	Notes       string `json:"notes,omitempty"`
	Timestamp   string `json:"timestamp"`
	PeriodID    int64  `json:"periodId"`
}

func ToRecord(e Expense) Record {
	return Record{
		ID:          e.ID,
		Description: e.Description,
		Amount:      int64(e.Amount),
		Category:    string(e.Category),
		Date:        e.Date.Format(dateLayout),
		Notes:       e.Notes,
		Timestamp:   e.Timestamp.Format(time.RFC3339),
		PeriodID:    e.PeriodID,
	}
}

func FromRecord(r Record) (Expense, error) {
	date, err := time.Parse(dateLayout, r.Date)
	if err != nil {
		return Expense{}, err
	}
	timestamp, err := time.Parse(time.RFC3339, r.Timestamp)
	if err != nil {
		return Expense{}, err
	}
	return Expense{
		ID:          r.ID,
		Description: r.Description,
		Amount:      money.Money(r.Amount),
		Category:    Category(r.Category),
		Date:        date,
		Notes:       r.Notes,
		Timestamp:   timestamp,
		PeriodID:    r.PeriodID,
	}, nil
}

func ToRecords(expenses []Expense) []Record {
	records := make([]Record, 0, len(expenses))
	for _, e := range expenses {
		records = append(records, ToRecord(e))
	}
	return records
}

func FromRecords(records []Record) ([]Expense, error) {
	expenses := make([]Expense, 0, len(records))
	for _, r := range records {
		e, err := FromRecord(r)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, nil
}

// Total sums the amounts of the given expenses.
func Total(expenses []Expense) money.Money {
	total := money.Money(0)
	for _, e := range expenses {
		total += e.Amount
	}
	return total
}
