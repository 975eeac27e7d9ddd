package budget

import (
	"context"
	"testing"

	"github.com/kharcha/kharcha/internal/config"
	"github.com/kharcha/kharcha/internal/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaults = config.Defaults{
	BudgetLimit:      1000000,
	WarningThreshold: 80,
	PeriodDays:       30,
	ReminderTime:     "21:30",
}

func TestEvaluate(t *testing.T) {
	t.Run("should stay silent below the warning threshold", func(t *testing.T) {
		signal, percentage := Evaluate(money.Money(79900), money.Money(100000), 80)

		assert.Equal(t, SignalNone, signal)
		assert.InDelta(t, 79.9, percentage, 0.001)
	})

	t.Run("should warn exactly at the threshold", func(t *testing.T) {
		signal, percentage := Evaluate(money.Money(80000), money.Money(100000), 80)

		assert.Equal(t, SignalWarning, signal)
		assert.InDelta(t, 80.0, percentage, 0.001)
	})

	t.Run("should report exceeded at the limit", func(t *testing.T) {
		signal, _ := Evaluate(money.Money(100000), money.Money(100000), 80)

		assert.Equal(t, SignalExceeded, signal)
	})

	t.Run("should report exceeded above the limit", func(t *testing.T) {
		signal, percentage := Evaluate(money.Money(120000), money.Money(100000), 80)

		assert.Equal(t, SignalExceeded, signal)
		assert.InDelta(t, 120.0, percentage, 0.001)
	})

	t.Run("should stay silent when no limit is configured", func(t *testing.T) {
		signal, percentage := Evaluate(money.Money(120000), 0, 80)

		assert.Equal(t, SignalNone, signal)
		assert.Equal(t, 0.0, percentage)
	})
}

func TestServiceImpl_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("should fall back to defaults when nothing is stored", func(t *testing.T) {
		service := NewService(NewStubRepository(), defaults)

		settings, err := service.Get(ctx)

		assert.NoError(t, err)
		assert.Equal(t, money.Money(1000000), settings.MonthlyLimit)
		assert.Equal(t, 80, settings.WarningThreshold)
		assert.Empty(t, settings.CategoryBudgets)
	})

	t.Run("should return stored settings", func(t *testing.T) {
		repo := NewStubRepository()
		service := NewService(repo, defaults)
		stored := Settings{MonthlyLimit: money.Money(500000), WarningThreshold: 90}
		require.NoError(t, repo.Set(ctx, stored))

		settings, err := service.Get(ctx)

		assert.NoError(t, err)
		assert.Equal(t, stored, settings)
	})
}

func TestServiceImpl_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("should persist valid settings", func(t *testing.T) {
		repo := NewStubRepository()
		service := NewService(repo, defaults)

		updated, err := service.Update(ctx, Settings{
			MonthlyLimit:     money.Money(750000),
			WarningThreshold: 75,
			CategoryBudgets:  map[string]money.Money{"Food": money.Money(200000)},
		})

		assert.NoError(t, err)
		assert.Equal(t, money.Money(750000), updated.MonthlyLimit)
		require.NotNil(t, repo.Settings)
		assert.Equal(t, updated, *repo.Settings)
	})

	t.Run("should reject a non-positive monthly limit", func(t *testing.T) {
		service := NewService(NewStubRepository(), defaults)

		_, err := service.Update(ctx, Settings{MonthlyLimit: 0, WarningThreshold: 80})

		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("should reject a threshold outside 1-100", func(t *testing.T) {
		service := NewService(NewStubRepository(), defaults)

		_, err := service.Update(ctx, Settings{MonthlyLimit: money.Money(1000), WarningThreshold: 101})

		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("should reject a non-positive category budget", func(t *testing.T) {
		service := NewService(NewStubRepository(), defaults)

		_, err := service.Update(ctx, Settings{
			MonthlyLimit:     money.Money(1000),
			WarningThreshold: 80,
			CategoryBudgets:  map[string]money.Money{"Food": 0},
		})

		assert.ErrorIs(t, err, ErrValidation)
	})
}
