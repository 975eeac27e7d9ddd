package expense

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/kharcha/kharcha/internal/event_bus"
	"github.com/kharcha/kharcha/internal/money"
	"github.com/kharcha/kharcha/internal/utils"
	"github.com/kharcha/kharcha/pkg/budget"
	"github.com/kharcha/kharcha/pkg/period"
	log "github.com/sirupsen/logrus"
)

var (
	ErrValidation       = fmt.Errorf("invalid expense")
	ErrEmptyDescription = fmt.Errorf("%w: description is required", ErrValidation)
	ErrInvalidAmount    = fmt.Errorf("%w: amount must be positive", ErrValidation)
	ErrMissingCategory  = fmt.Errorf("%w: category is required", ErrValidation)
)

// NewExpense carries the user input for a new ledger entry.
type NewExpense struct {
	Description string
	Amount      money.Money
	Category    Category
	Date        string // "2006-01-02", defaults to today when empty
	Notes       string
}

type Service interface {
	// Record validates and appends a new expense to the ledger, attaches it
	// to the current period, persists the ledger, and re-evaluates the budget
	// thresholds. Validation failures leave the ledger unchanged.
	Record(ctx context.Context, input NewExpense) (Expense, error)
	// CurrentPeriodExpenses returns the live ledger scoped to the current period.
	CurrentPeriodExpenses(ctx context.Context) ([]Expense, error)
	// Recent returns the newest current-period expenses by creation instant.
	Recent(ctx context.Context, limit int) ([]Expense, error)
	All(ctx context.Context) ([]Expense, error)
}

type ServiceImpl struct {
	repo    Repository
	periods period.Service
	budgets budget.Service
	bus     *event_bus.EventBus
	clock   utils.Clock
}

func NewService(
	repo Repository,
	periods period.Service,
	budgets budget.Service,
	bus *event_bus.EventBus,
	clock utils.Clock,
) *ServiceImpl {
	return &ServiceImpl{repo: repo, periods: periods, budgets: budgets, bus: bus, clock: clock}
}

func (s *ServiceImpl) Record(ctx context.Context, input NewExpense) (Expense, error) {
	if strings.TrimSpace(input.Description) == "" {
		return Expense{}, ErrEmptyDescription
	}
	if input.Amount <= 0 {
		return Expense{}, ErrInvalidAmount
	}
	if input.Category == "" {
		return Expense{}, ErrMissingCategory
	}

	now := s.clock.Now()
	date := utils.DateOf(now)
	if input.Date != "" {
		parsed, err := utils.ParseDate(input.Date)
		if err != nil {
			return Expense{}, fmt.Errorf("%w: date must be formatted as 2006-01-02", ErrValidation)
		}
		date = parsed
	}

	current, err := s.periods.Current(ctx)
	if err != nil {
		return Expense{}, err
	}
	expenses, err := s.repo.GetAll(ctx)
	if err != nil {
		return Expense{}, err
	}

	// Timestamp-derived id, bumped past any existing id to stay monotonically
	// increasing for insertion order.
	id := now.UnixMilli()
	for _, e := range expenses {
		if e.ID >= id {
			id = e.ID + 1
		}
	}

	e := Expense{
		ID:          id,
		Description: strings.TrimSpace(input.Description),
		Amount:      input.Amount,
		Category:    input.Category,
		Date:        date,
		Notes:       strings.TrimSpace(input.Notes),
		Timestamp:   now,
		PeriodID:    current.ID,
	}

	if err := s.repo.Append(ctx, e); err != nil {
		return Expense{}, err
	}

	s.checkBudgetLimits(ctx, append(expenses, e), current)

	return e, nil
}

// checkBudgetLimits re-evaluates the spending thresholds after an insertion
// and publishes the resulting signal. Failures here never fail the insertion.
func (s *ServiceImpl) checkBudgetLimits(ctx context.Context, expenses []Expense, current period.TrackingPeriod) {
	settings, err := s.budgets.Get(ctx)
	if err != nil {
		log.Warnf("unable to load budget settings for threshold check: %v", err)
		return
	}

	totalSpent := Total(scopeToPeriod(expenses, current.ID))
	signal, percentage := budget.Evaluate(totalSpent, current.BudgetLimit, settings.WarningThreshold)

	switch signal {
	case budget.SignalExceeded:
		event := event_bus.NewEvent(ctx, event_bus.TypeBudgetExceeded, event_bus.BudgetExceededIssued{
			TotalSpent:  int64(totalSpent),
			BudgetLimit: int64(current.BudgetLimit),
			Percentage:  percentage,
		})
		if err := s.bus.Publish(event); err != nil {
			log.Warnf("failed to publish budget exceeded event: %v", err)
		}
	case budget.SignalWarning:
		event := event_bus.NewEvent(ctx, event_bus.TypeBudgetWarning, event_bus.BudgetWarningIssued{
			TotalSpent:  int64(totalSpent),
			BudgetLimit: int64(current.BudgetLimit),
			Percentage:  percentage,
		})
		if err := s.bus.Publish(event); err != nil {
			log.Warnf("failed to publish budget warning event: %v", err)
		}
	}
}

func (s *ServiceImpl) CurrentPeriodExpenses(ctx context.Context) ([]Expense, error) {
	current, err := s.periods.Current(ctx)
	if err != nil {
		return nil, err
	}
	expenses, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return scopeToPeriod(expenses, current.ID), nil
}

func (s *ServiceImpl) Recent(ctx context.Context, limit int) ([]Expense, error) {
	expenses, err := s.CurrentPeriodExpenses(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(expenses, func(i, j int) bool {
		return expenses[i].Timestamp.After(expenses[j].Timestamp)
	})
	if len(expenses) > limit {
		expenses = expenses[:limit]
	}
	return expenses, nil
}

func (s *ServiceImpl) All(ctx context.Context) ([]Expense, error) {
	return s.repo.GetAll(ctx)
}

func scopeToPeriod(expenses []Expense, periodID int64) []Expense {
	scoped := make([]Expense, 0, len(expenses))
	for _, e := range expenses {
		if e.PeriodID == periodID {
			scoped = append(scoped, e)
		}
	}
	return scoped
}
