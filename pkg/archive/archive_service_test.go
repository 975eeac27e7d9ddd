package archive

import (
	"context"
	"testing"
	"time"

	"github.com/kharcha/kharcha/internal/config"
	"github.com/kharcha/kharcha/internal/money"
	"github.com/kharcha/kharcha/internal/utils"
	"github.com/kharcha/kharcha/pkg/expense"
	"github.com/kharcha/kharcha/pkg/period"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaults = config.Defaults{
	BudgetLimit:      1000000,
	WarningThreshold: 80,
	PeriodDays:       30,
	ReminderTime:     "21:30",
}

type fixture struct {
	service  *ServiceImpl
	repo     *StubRepository
	expenses *expense.StubRepository
	periods  period.Service
	clock    *utils.MockClock
}

func setup() fixture {
	repo := NewStubRepository()
	expenses := expense.NewStubRepository()
	clock := &utils.MockClock{FixedNow: time.Date(2024, time.March, 10, 14, 30, 0, 0, time.UTC)}
	periods := period.NewService(period.NewStubRepository(), clock, defaults)
	return fixture{
		service:  NewService(repo, expenses, periods, clock),
		repo:     repo,
		expenses: expenses,
		periods:  periods,
		clock:    clock,
	}
}

func seedExpenses(t *testing.T, f fixture, periodID int64, rupees ...float64) {
	t.Helper()
	ctx := context.Background()
	for i, amount := range rupees {
		require.NoError(t, f.expenses.Append(ctx, expense.Expense{
			ID:       int64(i + 1),
			Amount:   money.FromRupees(amount),
			Category: expense.CategoryOther,
			PeriodID: periodID,
		}))
	}
}

func TestServiceImpl_ArchiveCurrent(t *testing.T) {
	ctx := context.Background()

	t.Run("should move current expenses into an archive entry", func(t *testing.T) {
		f := setup()
		current, err := f.periods.Current(ctx)
		require.NoError(t, err)
		seedExpenses(t, f, current.ID, 100, 250.50)

		entry, err := f.service.ArchiveCurrent(ctx)

		assert.NoError(t, err)
		require.NotNil(t, entry)
		assert.Equal(t, current, entry.Period)
		assert.Len(t, entry.Expenses, 2)
		assert.Equal(t, money.FromRupees(350.50), entry.TotalSpent)
		assert.Equal(t, f.clock.FixedNow, entry.ArchivedAt)

		remaining, err := f.expenses.GetAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, remaining)

		archived, err := f.repo.GetAll(ctx)
		require.NoError(t, err)
		assert.Len(t, archived, 1)
	})

	t.Run("should not archive a period without expenses", func(t *testing.T) {
		f := setup()

		entry, err := f.service.ArchiveCurrent(ctx)

		assert.NoError(t, err)
		assert.Nil(t, entry)

		archived, err := f.repo.GetAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, archived)
	})

	t.Run("should leave other periods' expenses in the ledger", func(t *testing.T) {
		f := setup()
		current, err := f.periods.Current(ctx)
		require.NoError(t, err)
		seedExpenses(t, f, current.ID, 100)
		require.NoError(t, f.expenses.Append(ctx, expense.Expense{
			ID:       99,
			Amount:   money.FromRupees(500),
			Category: expense.CategoryOther,
			PeriodID: current.ID - 42,
		}))

		_, err = f.service.ArchiveCurrent(ctx)
		require.NoError(t, err)

		remaining, err := f.expenses.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, remaining, 1)
		assert.Equal(t, int64(99), remaining[0].ID)
	})
}

func TestServiceImpl_StartNewPeriod(t *testing.T) {
	ctx := context.Background()

	t.Run("should archive the old period and install the new one", func(t *testing.T) {
		f := setup()
		current, err := f.periods.Current(ctx)
		require.NoError(t, err)
		seedExpenses(t, f, current.ID, 100)

		// a later instant so the new period gets a fresh id
		f.clock.SetNow(f.clock.FixedNow.Add(time.Hour))
		installed, err := f.service.StartNewPeriod(ctx, period.NewPeriod{
			Duration:    14,
			Unit:        period.UnitDays,
			StartDate:   "2024-03-10",
			BudgetLimit: money.FromRupees(5000),
		})

		assert.NoError(t, err)
		assert.NotEqual(t, current.ID, installed.ID)

		newCurrent, err := f.periods.Current(ctx)
		require.NoError(t, err)
		assert.Equal(t, installed, newCurrent)

		archived, err := f.repo.GetAll(ctx)
		require.NoError(t, err)
		assert.Len(t, archived, 1)
	})

	t.Run("should reject an invalid new period before installing", func(t *testing.T) {
		f := setup()

		_, err := f.service.StartNewPeriod(ctx, period.NewPeriod{
			Duration:  0,
			Unit:      period.UnitDays,
			StartDate: "2024-03-10",
		})

		assert.ErrorIs(t, err, period.ErrValidation)
	})
}

func TestServiceImpl_ResetCurrent(t *testing.T) {
	ctx := context.Background()

	t.Run("should archive before clearing when asked to", func(t *testing.T) {
		f := setup()
		current, err := f.periods.Current(ctx)
		require.NoError(t, err)
		seedExpenses(t, f, current.ID, 100, 200)

		assert.NoError(t, f.service.ResetCurrent(ctx, true))

		remaining, err := f.expenses.GetAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, remaining)

		archived, err := f.repo.GetAll(ctx)
		require.NoError(t, err)
		assert.Len(t, archived, 1)
	})

	t.Run("should discard expenses without archiving otherwise", func(t *testing.T) {
		f := setup()
		current, err := f.periods.Current(ctx)
		require.NoError(t, err)
		seedExpenses(t, f, current.ID, 100, 200)

		assert.NoError(t, f.service.ResetCurrent(ctx, false))

		remaining, err := f.expenses.GetAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, remaining)

		archived, err := f.repo.GetAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, archived)
	})
}
