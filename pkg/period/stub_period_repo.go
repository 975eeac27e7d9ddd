package period

import "context"

// StubRepository is an in-memory Repository for tests.
type StubRepository struct {
	current *TrackingPeriod
	periods []TrackingPeriod
}

func NewStubRepository() *StubRepository {
	return &StubRepository{}
}

func (s *StubRepository) Current(ctx context.Context) (*TrackingPeriod, error) {
	if s.current == nil {
		return nil, nil
	}
	p := *s.current
	return &p, nil
}

func (s *StubRepository) SetCurrent(ctx context.Context, p TrackingPeriod) error {
	s.current = &p
	return nil
}

func (s *StubRepository) All(ctx context.Context) ([]TrackingPeriod, error) {
	return append([]TrackingPeriod{}, s.periods...), nil
}

func (s *StubRepository) Append(ctx context.Context, p TrackingPeriod) error {
	s.periods = append(s.periods, p)
	return nil
}

func (s *StubRepository) ReplaceAll(ctx context.Context, periods []TrackingPeriod) error {
	s.periods = append([]TrackingPeriod{}, periods...)
	return nil
}
