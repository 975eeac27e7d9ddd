package reminder

import (
	"context"
	"testing"
	"time"

	"github.com/kharcha/kharcha/internal/event_bus"
	"github.com/kharcha/kharcha/internal/money"
	"github.com/kharcha/kharcha/internal/utils"
	"github.com/kharcha/kharcha/pkg/budget"
	"github.com/kharcha/kharcha/pkg/expense"
	"github.com/kharcha/kharcha/pkg/period"
	"github.com/kharcha/kharcha/pkg/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type schedulerFixture struct {
	scheduler    *Scheduler
	expenses     expense.Service
	settingsRepo *StubRepository
	bus          *event_bus.EventBus
	clock        *utils.MockClock
}

func setupScheduler() schedulerFixture {
	clock := &utils.MockClock{FixedNow: time.Date(2024, time.March, 10, 21, 29, 0, 0, time.UTC)}
	bus := event_bus.NewEventBus()
	periods := period.NewService(period.NewStubRepository(), clock, defaults)
	budgets := budget.NewService(budget.NewStubRepository(), defaults)
	expenses := expense.NewService(expense.NewStubRepository(), periods, budgets, bus, clock)
	statsService := stats.NewService(expenses, periods, budgets, clock)
	settingsRepo := NewStubRepository()
	settings := NewService(settingsRepo, defaults)
	return schedulerFixture{
		scheduler:    NewScheduler(settings, statsService, bus, clock),
		expenses:     expenses,
		settingsRepo: settingsRepo,
		bus:          bus,
		clock:        clock,
	}
}

func TestScheduler_Tick(t *testing.T) {
	ctx := context.Background()

	t.Run("should fire at the configured minute with today's numbers", func(t *testing.T) {
		f := setupScheduler()
		var fired []event_bus.ReminderDue
		event_bus.SubscribeTyped(f.bus, event_bus.TypeReminderDue,
			func(e event_bus.EventT[event_bus.ReminderDue]) error {
				fired = append(fired, e.Data)
				return nil
			})
		_, err := f.expenses.Record(ctx, expense.NewExpense{
			Description: "Dinner",
			Amount:      money.FromRupees(250),
			Category:    expense.CategoryFood,
		})
		require.NoError(t, err)

		f.clock.SetNow(time.Date(2024, time.March, 10, 21, 30, 10, 0, time.UTC))
		f.scheduler.Tick(ctx)

		require.Len(t, fired, 1)
		assert.Equal(t, int64(25000), fired[0].TodaySpent)
		assert.Equal(t, int64(975000), fired[0].Remaining)
	})

	t.Run("should not fire before the configured time", func(t *testing.T) {
		f := setupScheduler()
		var count int
		f.bus.Subscribe(event_bus.TypeReminderDue, func(event_bus.Event) error {
			count++
			return nil
		})

		f.scheduler.Tick(ctx)

		assert.Zero(t, count)
	})

	t.Run("should stay silent when the daily reminder is turned off", func(t *testing.T) {
		f := setupScheduler()
		f.settingsRepo.Settings = &Settings{
			ReminderTime:   "21:30",
			DailyReminder:  false,
			BudgetWarnings: true,
			BillReminders:  true,
		}
		var count int
		f.bus.Subscribe(event_bus.TypeReminderDue, func(event_bus.Event) error {
			count++
			return nil
		})

		f.clock.SetNow(time.Date(2024, time.March, 10, 21, 30, 0, 0, time.UTC))
		f.scheduler.Tick(ctx)

		assert.Zero(t, count)
	})

	t.Run("should fire at most once per day", func(t *testing.T) {
		f := setupScheduler()
		var count int
		f.bus.Subscribe(event_bus.TypeReminderDue, func(event_bus.Event) error {
			count++
			return nil
		})

		f.clock.SetNow(time.Date(2024, time.March, 10, 21, 30, 0, 0, time.UTC))
		f.scheduler.Tick(ctx)
		f.clock.SetNow(time.Date(2024, time.March, 10, 21, 30, 40, 0, time.UTC))
		f.scheduler.Tick(ctx)

		assert.Equal(t, 1, count)
	})

	t.Run("should re-arm on the next day", func(t *testing.T) {
		f := setupScheduler()
		var count int
		f.bus.Subscribe(event_bus.TypeReminderDue, func(event_bus.Event) error {
			count++
			return nil
		})

		f.clock.SetNow(time.Date(2024, time.March, 10, 21, 30, 0, 0, time.UTC))
		f.scheduler.Tick(ctx)
		f.clock.SetNow(time.Date(2024, time.March, 11, 21, 30, 0, 0, time.UTC))
		f.scheduler.Tick(ctx)

		assert.Equal(t, 2, count)
	})
}
