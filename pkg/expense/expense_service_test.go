package expense

import (
	"context"
	"testing"
	"time"

	"github.com/kharcha/kharcha/internal/config"
	"github.com/kharcha/kharcha/internal/event_bus"
	"github.com/kharcha/kharcha/internal/money"
	"github.com/kharcha/kharcha/internal/utils"
	"github.com/kharcha/kharcha/pkg/budget"
	"github.com/kharcha/kharcha/pkg/period"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaults = config.Defaults{
	BudgetLimit:      1000000, // ₹10000
	WarningThreshold: 80,
	PeriodDays:       30,
	ReminderTime:     "21:30",
}

type fixture struct {
	service *ServiceImpl
	repo    *StubRepository
	periods period.Service
	bus     *event_bus.EventBus
	clock   *utils.MockClock
}

func setup() fixture {
	repo := NewStubRepository()
	clock := &utils.MockClock{FixedNow: time.Date(2024, time.March, 10, 14, 30, 0, 0, time.UTC)}
	periods := period.NewService(period.NewStubRepository(), clock, defaults)
	budgets := budget.NewService(budget.NewStubRepository(), defaults)
	bus := event_bus.NewEventBus()
	return fixture{
		service: NewService(repo, periods, budgets, bus, clock),
		repo:    repo,
		periods: periods,
		bus:     bus,
		clock:   clock,
	}
}

func TestServiceImpl_Record(t *testing.T) {
	ctx := context.Background()

	t.Run("should persist a valid expense", func(t *testing.T) {
		f := setup()

		recorded, err := f.service.Record(ctx, NewExpense{
			Description: "  Lunch  ",
			Amount:      money.FromRupees(250),
			Category:    CategoryFood,
			Notes:       "team outing",
		})

		assert.NoError(t, err)
		assert.Equal(t, "Lunch", recorded.Description)
		assert.Equal(t, money.FromRupees(250), recorded.Amount)
		assert.Equal(t, f.clock.FixedNow, recorded.Timestamp)
		// date defaults to today when not provided
		assert.Equal(t, time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC), recorded.Date)

		all, err := f.repo.GetAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("should attach the current period id", func(t *testing.T) {
		f := setup()
		current, err := f.periods.Current(ctx)
		require.NoError(t, err)

		recorded, err := f.service.Record(ctx, NewExpense{
			Description: "Groceries",
			Amount:      money.FromRupees(500),
			Category:    CategoryFood,
		})

		assert.NoError(t, err)
		assert.Equal(t, current.ID, recorded.PeriodID)
	})

	t.Run("should bump the id past existing expenses", func(t *testing.T) {
		f := setup()

		first, err := f.service.Record(ctx, NewExpense{
			Description: "First",
			Amount:      money.FromRupees(10),
			Category:    CategoryOther,
		})
		require.NoError(t, err)
		second, err := f.service.Record(ctx, NewExpense{
			Description: "Second",
			Amount:      money.FromRupees(20),
			Category:    CategoryOther,
		})

		assert.NoError(t, err)
		assert.Greater(t, second.ID, first.ID)
	})

	t.Run("should reject a blank description", func(t *testing.T) {
		f := setup()

		_, err := f.service.Record(ctx, NewExpense{
			Description: "   ",
			Amount:      money.FromRupees(10),
			Category:    CategoryFood,
		})

		assert.ErrorIs(t, err, ErrEmptyDescription)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("should reject a non-positive amount", func(t *testing.T) {
		f := setup()

		_, err := f.service.Record(ctx, NewExpense{
			Description: "Lunch",
			Amount:      0,
			Category:    CategoryFood,
		})

		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("should reject a missing category", func(t *testing.T) {
		f := setup()

		_, err := f.service.Record(ctx, NewExpense{
			Description: "Lunch",
			Amount:      money.FromRupees(10),
		})

		assert.ErrorIs(t, err, ErrMissingCategory)
	})

	t.Run("should reject an unparseable date", func(t *testing.T) {
		f := setup()

		_, err := f.service.Record(ctx, NewExpense{
			Description: "Lunch",
			Amount:      money.FromRupees(10),
			Category:    CategoryFood,
			Date:        "10/03/2024",
		})

		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestServiceImpl_Record_BudgetSignals(t *testing.T) {
	ctx := context.Background()

	record := func(t *testing.T, f fixture, rupees float64) {
		t.Helper()
		_, err := f.service.Record(ctx, NewExpense{
			Description: "Spending",
			Amount:      money.FromRupees(rupees),
			Category:    CategoryShopping,
		})
		require.NoError(t, err)
	}

	t.Run("should stay silent below the warning threshold", func(t *testing.T) {
		f := setup()
		var fired []event_bus.EventType
		f.bus.Subscribe(event_bus.TypeBudgetWarning, func(e event_bus.Event) error {
			fired = append(fired, e.Type)
			return nil
		})
		f.bus.Subscribe(event_bus.TypeBudgetExceeded, func(e event_bus.Event) error {
			fired = append(fired, e.Type)
			return nil
		})

		record(t, f, 7990)

		assert.Empty(t, fired)
	})

	t.Run("should warn when the threshold is crossed", func(t *testing.T) {
		f := setup()
		var warning *event_bus.BudgetWarningIssued
		event_bus.SubscribeTyped(f.bus, event_bus.TypeBudgetWarning,
			func(e event_bus.EventT[event_bus.BudgetWarningIssued]) error {
				warning = &e.Data
				return nil
			})

		record(t, f, 8000)

		require.NotNil(t, warning)
		assert.Equal(t, int64(800000), warning.TotalSpent)
		assert.Equal(t, int64(1000000), warning.BudgetLimit)
		assert.InDelta(t, 80.0, warning.Percentage, 0.001)
	})

	t.Run("should signal exceeded at and above the limit", func(t *testing.T) {
		f := setup()
		var exceeded []event_bus.BudgetExceededIssued
		event_bus.SubscribeTyped(f.bus, event_bus.TypeBudgetExceeded,
			func(e event_bus.EventT[event_bus.BudgetExceededIssued]) error {
				exceeded = append(exceeded, e.Data)
				return nil
			})

		record(t, f, 10000)
		record(t, f, 2000)

		// level-triggered: both insertions over the limit fire
		require.Len(t, exceeded, 2)
		assert.InDelta(t, 100.0, exceeded[0].Percentage, 0.001)
		assert.InDelta(t, 120.0, exceeded[1].Percentage, 0.001)
	})
}

func TestServiceImpl_CurrentPeriodExpenses(t *testing.T) {
	ctx := context.Background()

	t.Run("should exclude expenses of other periods", func(t *testing.T) {
		f := setup()
		current, err := f.periods.Current(ctx)
		require.NoError(t, err)
		require.NoError(t, f.repo.Append(ctx, Expense{
			ID:       1,
			Amount:   money.FromRupees(999),
			Category: CategoryOther,
			PeriodID: current.ID - 42,
		}))

		recorded, err := f.service.Record(ctx, NewExpense{
			Description: "Lunch",
			Amount:      money.FromRupees(250),
			Category:    CategoryFood,
		})
		require.NoError(t, err)

		scoped, err := f.service.CurrentPeriodExpenses(ctx)

		assert.NoError(t, err)
		require.Len(t, scoped, 1)
		assert.Equal(t, recorded.ID, scoped[0].ID)
	})
}

func TestServiceImpl_Recent(t *testing.T) {
	ctx := context.Background()

	t.Run("should return the newest first, capped at the limit", func(t *testing.T) {
		f := setup()
		for i, name := range []string{"One", "Two", "Three"} {
			f.clock.SetNow(f.clock.FixedNow.Add(time.Duration(i) * time.Minute))
			_, err := f.service.Record(ctx, NewExpense{
				Description: name,
				Amount:      money.FromRupees(10),
				Category:    CategoryOther,
			})
			require.NoError(t, err)
		}

		recent, err := f.service.Recent(ctx, 2)

		assert.NoError(t, err)
		require.Len(t, recent, 2)
		assert.Equal(t, "Three", recent[0].Description)
		assert.Equal(t, "Two", recent[1].Description)
	})
}

func TestTotal(t *testing.T) {
	expenses := []Expense{
		{Amount: money.FromRupees(10.50)},
		{Amount: money.FromRupees(20.25)},
	}

	assert.Equal(t, money.FromRupees(30.75), Total(expenses))
}
