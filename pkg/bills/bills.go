package bills

import (
	"math"
	"time"

	"github.com/kharcha/kharcha/internal/money"
)

type Frequency string

const (
	FrequencyWeekly    Frequency = "weekly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyYearly    Frequency = "yearly"
)

func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyWeekly, FrequencyMonthly, FrequencyQuarterly, FrequencyYearly:
		return true
	}
	return false
}

// averageWeeksPerMonth approximates how many weeks a month has when
// normalizing weekly bills to a monthly contribution.
const averageWeeksPerMonth = 4.33

// Bill is a recurring obligation used for forecasting. It is never converted
// into ledger entries automatically.
type Bill struct {
	ID        int64
	Name      string
	Amount    money.Money
	Frequency Frequency
	DueDate   time.Time // calendar date
	Category  string
	IsActive  bool
	LastPaid  *time.Time // calendar date, nil until first marked paid
	CreatedAt time.Time
}

// MonthlyEquivalent normalizes the bill's amount to an average monthly
// contribution.
func (b Bill) MonthlyEquivalent() money.Money {
	switch b.Frequency {
	case FrequencyWeekly:
		return money.Money(math.Round(float64(b.Amount) * averageWeeksPerMonth))
	case FrequencyQuarterly:
		return money.Money(math.Round(float64(b.Amount) / 3))
	case FrequencyYearly:
		return money.Money(math.Round(float64(b.Amount) / 12))
	default:
		return b.Amount
	}
}

const dateLayout = "2006-01-02"

// Record is the persisted and exported form of Bill.
type Record struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Amount    int64  `json:"amount"`
	Frequency string `json:"frequency"`
	DueDate   string `json:"dueDate"`
	Category  string `json:"category"`
	IsActive  bool   `json:"isActive"`
	LastPaid  string `json:"lastPaid,omitempty"`
	CreatedAt string `json:"createdAt"`
}

func ToRecord(b Bill) Record {
	lastPaid := ""
	if b.LastPaid != nil {
		lastPaid = b.LastPaid.Format(dateLayout)
	}
	return Record{
		ID:        b.ID,
		Name:      b.Name,
		Amount:    int64(b.Amount),
		Frequency: string(b.Frequency),
		DueDate:   b.DueDate.Format(dateLayout),
		Category:  b.Category,
		IsActive:  b.IsActive,
		LastPaid:  lastPaid,
		CreatedAt: b.CreatedAt.Format(time.RFC3339),
	}
}

func FromRecord(r Record) (Bill, error) {
	dueDate, err := time.Parse(dateLayout, r.DueDate)
	if err != nil {
		return Bill{}, err
	}
	createdAt, err := time.Parse(time.RFC3339, r.CreatedAt)
	if err != nil {
		return Bill{}, err
	}
	var lastPaid *time.Time
	if r.LastPaid != "" {
		parsed, err := time.Parse(dateLayout, r.LastPaid)
		if err != nil {
			return Bill{}, err
		}
		lastPaid = &parsed
	}
	return Bill{
		ID:        r.ID,
		Name:      r.Name,
		Amount:    money.Money(r.Amount),
		Frequency: Frequency(r.Frequency),
		DueDate:   dueDate,
		Category:  r.Category,
		IsActive:  r.IsActive,
		LastPaid:  lastPaid,
		CreatedAt: createdAt,
	}, nil
}

func ToRecords(bills []Bill) []Record {
	records := make([]Record, 0, len(bills))
	for _, b := range bills {
		records = append(records, ToRecord(b))
	}
	return records
}

func FromRecords(records []Record) ([]Bill, error) {
	bills := make([]Bill, 0, len(records))
	for _, r := range records {
		b, err := FromRecord(r)
		if err != nil {
			return nil, err
		}
		bills = append(bills, b)
	}
	return bills, nil
}
