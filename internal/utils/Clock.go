package utils

import "time"

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (s SystemClock) Now() time.Time {
	return time.Now()
}

type MockClock struct {
	FixedNow time.Time
}

func (m *MockClock) Now() time.Time {
	return m.FixedNow
}

func (m *MockClock) SetNow(now time.Time) {
	m.FixedNow = now
}

// Today truncates the clock's current time to a calendar date (midnight, same location).
func Today(clock Clock) time.Time {
	return DateOf(clock.Now())
}

// DateOf drops the time-of-day part of t.
func DateOf(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// ParseDate parses a calendar date in the "2006-01-02" layout.
func ParseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// SameDay reports whether two instants fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	year1, month1, day1 := a.Date()
	year2, month2, day2 := b.Date()
	return year1 == year2 && month1 == month2 && day1 == day2
}
