package reminder

import (
	"context"
	"testing"

	"github.com/kharcha/kharcha/internal/config"
	"github.com/stretchr/testify/assert"
)

var defaults = config.Defaults{
	BudgetLimit:      1000000,
	WarningThreshold: 80,
	PeriodDays:       30,
	ReminderTime:     "21:30",
}

func TestServiceImpl_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("should fall back to defaults when nothing is stored", func(t *testing.T) {
		service := NewService(NewStubRepository(), defaults)

		settings, err := service.Get(ctx)

		assert.NoError(t, err)
		assert.Equal(t, "21:30", settings.ReminderTime)
		assert.True(t, settings.DailyReminder)
		assert.True(t, settings.BudgetWarnings)
		assert.True(t, settings.BillReminders)
	})

	t.Run("should return stored settings", func(t *testing.T) {
		repo := NewStubRepository()
		service := NewService(repo, defaults)
		stored := Settings{ReminderTime: "08:00", BudgetWarnings: false, BillReminders: true}
		repo.Settings = &stored

		settings, err := service.Get(ctx)

		assert.NoError(t, err)
		assert.Equal(t, stored, settings)
	})
}

func TestFromRecord(t *testing.T) {
	t.Run("should enable the daily reminder for snapshots predating the toggle", func(t *testing.T) {
		settings := FromRecord(Record{ReminderTime: "21:30", BudgetWarnings: true, BillReminders: true})

		assert.True(t, settings.DailyReminder)
	})

	t.Run("should keep an explicitly disabled daily reminder", func(t *testing.T) {
		off := false

		settings := FromRecord(Record{ReminderTime: "21:30", DailyReminder: &off})

		assert.False(t, settings.DailyReminder)
	})
}

func TestServiceImpl_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("should persist valid settings", func(t *testing.T) {
		repo := NewStubRepository()
		service := NewService(repo, defaults)

		updated, err := service.Update(ctx, Settings{ReminderTime: "07:45", BudgetWarnings: true})

		assert.NoError(t, err)
		assert.Equal(t, "07:45", updated.ReminderTime)
		assert.NotNil(t, repo.Settings)
	})

	t.Run("should reject a malformed reminder time", func(t *testing.T) {
		service := NewService(NewStubRepository(), defaults)

		_, err := service.Update(ctx, Settings{ReminderTime: "9pm"})

		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("should reject an out-of-range hour", func(t *testing.T) {
		service := NewService(NewStubRepository(), defaults)

		_, err := service.Update(ctx, Settings{ReminderTime: "25:00"})

		assert.ErrorIs(t, err, ErrValidation)
	})
}
