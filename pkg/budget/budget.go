package budget

import (
	"github.com/kharcha/kharcha/internal/money"
)

// Settings hold the budgeting preferences that are independent of any single
// tracking period. CategoryBudgets is sparse: categories without an entry have
// no dedicated limit.
type Settings struct {
	MonthlyLimit     money.Money
	WarningThreshold int // percentage, 1-100
	CategoryBudgets  map[string]money.Money
}

// Signal classifies the outcome of a threshold evaluation.
type Signal int

const (
	SignalNone Signal = iota
	SignalWarning
	SignalExceeded
)

func (s Signal) String() string {
	switch s {
	case SignalWarning:
		return "warning"
	case SignalExceeded:
		return "exceeded"
	default:
		return "none"
	}
}

// Evaluate classifies total spending against a budget limit. It is
// level-triggered: the same signal is returned for every evaluation while the
// spending stays in the corresponding band, not only when a band is crossed.
func Evaluate(totalSpent, limit money.Money, warningThreshold int) (Signal, float64) {
	if limit <= 0 {
		return SignalNone, 0
	}
	percentage := float64(totalSpent) / float64(limit) * 100
	switch {
	case percentage >= 100:
		return SignalExceeded, percentage
	case percentage >= float64(warningThreshold):
		return SignalWarning, percentage
	default:
		return SignalNone, percentage
	}
}

// Record is the persisted and exported form of Settings.
type Record struct {
	MonthlyLimit     int64            `json:"monthlyLimit"`
	WarningThreshold int              `json:"warningThreshold"`
	CategoryBudgets  map[string]int64 `json:"categoryBudgets"`
}

func ToRecord(s Settings) Record {
	categoryBudgets := make(map[string]int64, len(s.CategoryBudgets))
	for category, limit := range s.CategoryBudgets {
		categoryBudgets[category] = int64(limit)
	}
	return Record{
		MonthlyLimit:     int64(s.MonthlyLimit),
		WarningThreshold: s.WarningThreshold,
		CategoryBudgets:  categoryBudgets,
	}
}

func FromRecord(r Record) Settings {
	categoryBudgets := make(map[string]money.Money, len(r.CategoryBudgets))
	for category, limit := range r.CategoryBudgets {
		categoryBudgets[category] = money.Money(limit)
	}
	return Settings{
		MonthlyLimit:     money.Money(r.MonthlyLimit),
		WarningThreshold: r.WarningThreshold,
		CategoryBudgets:  categoryBudgets,
	}
}
