package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestEndDateFor(t *testing.T) {
	t.Run("should add days", func(t *testing.T) {
		end := EndDateFor(date(2024, time.January, 1), 30, UnitDays)
		assert.Equal(t, date(2024, time.January, 31), end)
	})

	t.Run("should add weeks as seven days each", func(t *testing.T) {
		end := EndDateFor(date(2024, time.January, 1), 2, UnitWeeks)
		assert.Equal(t, date(2024, time.January, 15), end)
	})

	t.Run("should add calendar months", func(t *testing.T) {
		end := EndDateFor(date(2024, time.January, 15), 1, UnitMonths)
		assert.Equal(t, date(2024, time.February, 15), end)
	})

	t.Run("should let month arithmetic shift the day at month ends", func(t *testing.T) {
		end := EndDateFor(date(2024, time.January, 31), 1, UnitMonths)
		assert.Equal(t, date(2024, time.March, 2), end)
	})
}

func TestTrackingPeriod_DaysRemaining(t *testing.T) {
	p := TrackingPeriod{
		StartDate: date(2024, time.January, 1),
		EndDate:   date(2024, time.January, 31),
	}

	t.Run("should count partial days up", func(t *testing.T) {
		now := time.Date(2024, time.January, 28, 12, 0, 0, 0, time.UTC)
		assert.Equal(t, 3, p.DaysRemaining(now))
	})

	t.Run("should never go negative", func(t *testing.T) {
		now := date(2024, time.February, 10)
		assert.Equal(t, 0, p.DaysRemaining(now))
	})
}

func TestTrackingPeriod_DaysElapsed(t *testing.T) {
	p := TrackingPeriod{
		StartDate: date(2024, time.January, 1),
		EndDate:   date(2024, time.January, 31),
	}

	t.Run("should count partial days up", func(t *testing.T) {
		now := time.Date(2024, time.January, 3, 12, 0, 0, 0, time.UTC)
		assert.Equal(t, 3, p.DaysElapsed(now))
	})

	t.Run("should be at least one on the first day", func(t *testing.T) {
		assert.Equal(t, 1, p.DaysElapsed(date(2024, time.January, 1)))
	})
}

func TestRecordRoundTrip(t *testing.T) {
	original := TrackingPeriod{
		ID:          1700000000000,
		Name:        "Default Period",
		StartDate:   date(2024, time.January, 1),
		EndDate:     date(2024, time.January, 31),
		Duration:    30,
		Unit:        UnitDays,
		BudgetLimit: 1000000,
		IsActive:    true,
		CreatedAt:   time.Date(2024, time.January, 1, 9, 30, 0, 0, time.UTC),
	}

	restored, err := FromRecord(ToRecord(original))

	assert.NoError(t, err)
	assert.Equal(t, original, restored)
}

func TestFromRecord_InvalidDate(t *testing.T) {
	_, err := FromRecord(Record{StartDate: "not-a-date", EndDate: "2024-01-31", CreatedAt: "2024-01-01T00:00:00Z"})
	assert.Error(t, err)
}
