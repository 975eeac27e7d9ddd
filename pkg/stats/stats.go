package stats

import (
	"time"

	"github.com/kharcha/kharcha/internal/money"
	"github.com/kharcha/kharcha/pkg/expense"
)

// NoneCategory is the sentinel returned when there is nothing to rank.
const NoneCategory = "None"

// Summary is the dashboard view of the current tracking period.
type Summary struct {
	PeriodName    string
	TotalSpent    money.Money
	BudgetLimit   money.Money
	Remaining     money.Money // never negative
	TodayTotal    money.Money
	DailyAverage  float64 // rupees per active day
	DaysRemaining int
	DaysElapsed   int
	SpendingRate  float64 // percent of budget consumed per elapsed day
	Trend         string  // "high", "increasing" or "moderate"
}

// Scope selects which expenses feed the quick statistics.
type Scope string

const (
	ScopeCurrent Scope = "current"
	ScopeWeek    Scope = "week"
	ScopeMonth   Scope = "month"
)

type QuickStats struct {
	Scope         Scope
	Total         money.Money
	TopCategory   string
	ActiveDays    int
	AveragePerDay float64 // rupees per active day
}

// TrendBucket is one 7-day window of the weekly trend. Bucket 0 is the most
// recent window, ending today.
type TrendBucket struct {
	Start time.Time
	End   time.Time
	Total money.Money
}

type CategoryShare struct {
	Category   string
	Total      money.Money
	Percentage float64
}

type Insight struct {
	Kind        string // "warning", "danger" or "info"
	Title       string
	Description string
}

// TopCategory returns the category with the highest summed amount. Ties are
// broken by first-encountered insertion order; an empty input yields the
// "None" sentinel.
func TopCategory(expenses []expense.Expense) string {
	totals := map[expense.Category]money.Money{}
	order := make([]expense.Category, 0)
	for _, e := range expenses {
		if _, seen := totals[e.Category]; !seen {
			order = append(order, e.Category)
		}
		totals[e.Category] += e.Amount
	}
	if len(order) == 0 {
		return NoneCategory
	}

	top := order[0]
	for _, category := range order[1:] {
		if totals[category] > totals[top] {
			top = category
		}
	}
	return string(top)
}

func activeDays(expenses []expense.Expense) int {
	days := map[string]struct{}{}
	for _, e := range expenses {
		days[e.Date.Format("2006-01-02")] = struct{}{}
	}
	return len(days)
}

// averagePerActiveDay divides the total over the number of distinct spending
// dates; it is zero when there are no active days.
func averagePerActiveDay(expenses []expense.Expense) float64 {
	days := activeDays(expenses)
	if days == 0 {
		return 0
	}
	return expense.Total(expenses).Rupees() / float64(days)
}
