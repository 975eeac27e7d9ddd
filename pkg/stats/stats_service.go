package stats

import (
	"context"
	"fmt"
	"sort"

	"github.com/kharcha/kharcha/internal/money"
	"github.com/kharcha/kharcha/internal/utils"
	"github.com/kharcha/kharcha/pkg/budget"
	"github.com/kharcha/kharcha/pkg/expense"
	"github.com/kharcha/kharcha/pkg/period"
)

type Service interface {
	// Summary aggregates the current tracking period into the dashboard view.
	Summary(ctx context.Context) (Summary, error)
	Quick(ctx context.Context, scope Scope) (QuickStats, error)
	// WeeklyTrend returns four non-overlapping 7-day buckets, the first one
	// ending today.
	WeeklyTrend(ctx context.Context) ([]TrendBucket, error)
	// CategoryBreakdown ranks the top five categories of the current calendar
	// month with their share of the month's total.
	CategoryBreakdown(ctx context.Context) ([]CategoryShare, error)
	// OverspendDayCount counts the days of the current calendar month whose
	// total exceeded one thirtieth of the monthly limit.
	OverspendDayCount(ctx context.Context) (int, error)
	Insights(ctx context.Context) ([]Insight, error)
}

type ServiceImpl struct {
	expenses expense.Service
	periods  period.Service
	budgets  budget.Service
	clock    utils.Clock
}

func NewService(expenses expense.Service, periods period.Service, budgets budget.Service, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{expenses: expenses, periods: periods, budgets: budgets, clock: clock}
}

func (s *ServiceImpl) Summary(ctx context.Context) (Summary, error) {
	current, err := s.periods.Current(ctx)
	if err != nil {
		return Summary{}, err
	}
	expenses, err := s.expenses.CurrentPeriodExpenses(ctx)
	if err != nil {
		return Summary{}, err
	}

	now := s.clock.Now()
	today := utils.DateOf(now)
	total := expense.Total(expenses)

	var todayTotal money.Money
	for _, e := range expenses {
		if utils.SameDay(e.Date, today) {
			todayTotal += e.Amount
		}
	}

	remaining := current.BudgetLimit - total
	if remaining < 0 {
		remaining = 0
	}

	daysElapsed := current.DaysElapsed(now)
	var spendingRate float64
	if current.BudgetLimit > 0 && daysElapsed > 0 {
		spendingRate = total.Rupees() / current.BudgetLimit.Rupees() * 100 / float64(daysElapsed)
	}

	return Summary{
		PeriodName:    current.Name,
		TotalSpent:    total,
		BudgetLimit:   current.BudgetLimit,
		Remaining:     remaining,
		TodayTotal:    todayTotal,
		DailyAverage:  averagePerActiveDay(expenses),
		DaysRemaining: current.DaysRemaining(now),
		DaysElapsed:   daysElapsed,
		SpendingRate:  spendingRate,
		Trend:         trendLabel(spendingRate),
	}, nil
}

// trendLabel maps the daily spending rate to a coarse label: above 3.5 percent
// of the budget per day is "high", above 2 is "increasing".
func trendLabel(spendingRate float64) string {
	switch {
	case spendingRate > 3.5:
		return "high"
	case spendingRate > 2:
		return "increasing"
	default:
		return "moderate"
	}
}

func (s *ServiceImpl) Quick(ctx context.Context, scope Scope) (QuickStats, error) {
	expenses, err := s.scoped(ctx, scope)
	if err != nil {
		return QuickStats{}, err
	}
	return QuickStats{
		Scope:         scope,
		Total:         expense.Total(expenses),
		TopCategory:   TopCategory(expenses),
		ActiveDays:    activeDays(expenses),
		AveragePerDay: averagePerActiveDay(expenses),
	}, nil
}

func (s *ServiceImpl) scoped(ctx context.Context, scope Scope) ([]expense.Expense, error) {
	switch scope {
	case ScopeCurrent:
		return s.expenses.CurrentPeriodExpenses(ctx)
	case ScopeWeek:
		return s.lastSevenDays(ctx)
	case ScopeMonth:
		return s.currentMonth(ctx)
	default:
		return nil, fmt.Errorf("unknown stats scope %q", scope)
	}
}

func (s *ServiceImpl) lastSevenDays(ctx context.Context) ([]expense.Expense, error) {
	all, err := s.expenses.All(ctx)
	if err != nil {
		return nil, err
	}
	cutoff := utils.Today(s.clock).AddDate(0, 0, -7)
	filtered := make([]expense.Expense, 0, len(all))
	for _, e := range all {
		if !e.Date.Before(cutoff) {
			filtered = append(filtered, e)
		}
	}
	return filtered, nil
}

func (s *ServiceImpl) currentMonth(ctx context.Context) ([]expense.Expense, error) {
	all, err := s.expenses.All(ctx)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	filtered := make([]expense.Expense, 0, len(all))
	for _, e := range all {
		if e.Date.Year() == now.Year() && e.Date.Month() == now.Month() {
			filtered = append(filtered, e)
		}
	}
	return filtered, nil
}

func (s *ServiceImpl) WeeklyTrend(ctx context.Context) ([]TrendBucket, error) {
	all, err := s.expenses.All(ctx)
	if err != nil {
		return nil, err
	}
	today := utils.Today(s.clock)

	buckets := make([]TrendBucket, 4)
	for i := range buckets {
		end := today.AddDate(0, 0, -7*i)
		start := end.AddDate(0, 0, -6)
		var total money.Money
		for _, e := range all {
			if !e.Date.Before(start) && !e.Date.After(end) {
				total += e.Amount
			}
		}
		buckets[i] = TrendBucket{Start: start, End: end, Total: total}
	}
	return buckets, nil
}

func (s *ServiceImpl) CategoryBreakdown(ctx context.Context) ([]CategoryShare, error) {
	expenses, err := s.currentMonth(ctx)
	if err != nil {
		return nil, err
	}

	totals := map[expense.Category]money.Money{}
	order := make([]expense.Category, 0)
	var monthTotal money.Money
	for _, e := range expenses {
		if _, seen := totals[e.Category]; !seen {
			order = append(order, e.Category)
		}
		totals[e.Category] += e.Amount
		monthTotal += e.Amount
	}

	shares := make([]CategoryShare, 0, len(order))
	for _, category := range order {
		var percentage float64
		if monthTotal > 0 {
			percentage = totals[category].Rupees() / monthTotal.Rupees() * 100
		}
		shares = append(shares, CategoryShare{
			Category:   string(category),
			Total:      totals[category],
			Percentage: percentage,
		})
	}
	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Total > shares[j].Total
	})
	if len(shares) > 5 {
		shares = shares[:5]
	}
	return shares, nil
}

func (s *ServiceImpl) OverspendDayCount(ctx context.Context) (int, error) {
	expenses, err := s.currentMonth(ctx)
	if err != nil {
		return 0, err
	}
	settings, err := s.budgets.Get(ctx)
	if err != nil {
		return 0, err
	}

	dailyBudget := settings.MonthlyLimit / 30
	dailyTotals := map[string]money.Money{}
	for _, e := range expenses {
		dailyTotals[e.Date.Format("2006-01-02")] += e.Amount
	}
	count := 0
	for _, total := range dailyTotals {
		if total > dailyBudget {
			count++
		}
	}
	return count, nil
}

func (s *ServiceImpl) Insights(ctx context.Context) ([]Insight, error) {
	summary, err := s.Summary(ctx)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenses.CurrentPeriodExpenses(ctx)
	if err != nil {
		return nil, err
	}
	if len(expenses) == 0 {
		return []Insight{}, nil
	}

	insights := make([]Insight, 0, 3)

	if summary.DailyAverage > 0 && summary.TodayTotal.Rupees() > summary.DailyAverage*1.5 {
		over := (summary.TodayTotal.Rupees()/summary.DailyAverage - 1) * 100
		insights = append(insights, Insight{
			Kind:        "warning",
			Title:       "High Spending Alert",
			Description: fmt.Sprintf("Today's spending is %.0f%% above your daily average", over),
		})
	}

	totalDays := summary.DaysElapsed + summary.DaysRemaining
	if totalDays > 0 && summary.BudgetLimit > 0 {
		expected := summary.BudgetLimit.Rupees() * float64(summary.DaysElapsed) / float64(totalDays)
		if summary.TotalSpent.Rupees() > expected*1.2 {
			insights = append(insights, Insight{
				Kind:        "danger",
				Title:       "Budget Pace Warning",
				Description: fmt.Sprintf("You have spent %s but should be around ₹%.2f at this point", summary.TotalSpent, expected),
			})
		}
	}

	if top := TopCategory(expenses); top != NoneCategory {
		var topTotal money.Money
		for _, e := range expenses {
			if string(e.Category) == top {
				topTotal += e.Amount
			}
		}
		share := topTotal.Rupees() / summary.TotalSpent.Rupees() * 100
		insights = append(insights, Insight{
			Kind:        "info",
			Title:       "Top Spending Category",
			Description: fmt.Sprintf("%s accounts for %.0f%% of this period's spending (%s)", top, share, topTotal),
		})
	}

	return insights, nil
}
