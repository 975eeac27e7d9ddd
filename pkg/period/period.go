package period

import (
	"math"
	"time"

	"github.com/kharcha/kharcha/internal/money"
)

type Unit string

const (
	UnitDays   Unit = "days"
	UnitWeeks  Unit = "weeks"
	UnitMonths Unit = "months"
)

func (u Unit) IsValid() bool {
	return u == UnitDays || u == UnitWeeks || u == UnitMonths
}

// TrackingPeriod is a bounded date range with its own budget limit, against
// which expenses are scoped. Exactly one period is current at a time.
type TrackingPeriod struct {
	ID          int64
	Name        string
	StartDate   time.Time // calendar date
	EndDate     time.Time // calendar date, derived from StartDate + Duration*Unit
	Duration    int
	Unit        Unit
	BudgetLimit money.Money
	IsActive    bool
	CreatedAt   time.Time
}

// EndDateFor derives a period's end date. Month arithmetic may shift the
// day-of-month at month ends; that is accepted input behavior, not corrected.
func EndDateFor(startDate time.Time, duration int, unit Unit) time.Time {
	switch unit {
	case UnitWeeks:
		return startDate.AddDate(0, 0, duration*7)
	case UnitMonths:
		return startDate.AddDate(0, duration, 0)
	default:
		return startDate.AddDate(0, 0, duration)
	}
}

// DaysRemaining counts the days left until the period's end date, never negative.
func (p TrackingPeriod) DaysRemaining(now time.Time) int {
	days := int(math.Ceil(p.EndDate.Sub(now).Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}

// DaysElapsed counts the days since the period started. It is never below 1,
// so rate computations stay defined on the first day.
func (p TrackingPeriod) DaysElapsed(now time.Time) int {
	days := int(math.Ceil(now.Sub(p.StartDate).Hours() / 24))
	if days < 1 {
		return 1
	}
	return days
}

const dateLayout = "2006-01-02"

// Record is the persisted and exported form of TrackingPeriod.
type Record struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Duration    int    `json:"duration"`
	Unit        string `json:"unit"`
	BudgetLimit int64  `json:"budgetLimit"`
	IsActive    bool   `json:"isActive"`
	CreatedAt   string `json:"createdAt"`
}

func ToRecord(p TrackingPeriod) Record {
	return Record{
		ID:          p.ID,
		Name:        p.Name,
		StartDate:   p.StartDate.Format(dateLayout),
		EndDate:     p.EndDate.Format(dateLayout),
		Duration:    p.Duration,
		Unit:        string(p.Unit),
		BudgetLimit: int64(p.BudgetLimit),
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
	}
}

func FromRecord(r Record) (TrackingPeriod, error) {
	startDate, err := time.Parse(dateLayout, r.StartDate)
	if err != nil {
		return TrackingPeriod{}, err
	}
	endDate, err := time.Parse(dateLayout, r.EndDate)
	if err != nil {
		return TrackingPeriod{}, err
	}
	createdAt, err := time.Parse(time.RFC3339, r.CreatedAt)
	if err != nil {
		return TrackingPeriod{}, err
	}
	return TrackingPeriod{
		ID:          r.ID,
		Name:        r.Name,
		StartDate:   startDate,
		EndDate:     endDate,
		Duration:    r.Duration,
		Unit:        Unit(r.Unit),
		BudgetLimit: money.Money(r.BudgetLimit),
		IsActive:    r.IsActive,
		CreatedAt:   createdAt,
	}, nil
}

func ToRecords(periods []TrackingPeriod) []Record {
	records := make([]Record, 0, len(periods))
	for _, p := range periods {
		records = append(records, ToRecord(p))
	}
	return records
}

func FromRecords(records []Record) ([]TrackingPeriod, error) {
	periods := make([]TrackingPeriod, 0, len(records))
	for _, r := range records {
		p, err := FromRecord(r)
		if err != nil {
			return nil, err
		}
		periods = append(periods, p)
	}
	return periods, nil
}
