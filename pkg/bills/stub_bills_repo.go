package bills

import "context"

// StubRepository is an in-memory Repository for tests.
type StubRepository struct {
	bills []Bill
}

func NewStubRepository() *StubRepository {
	return &StubRepository{}
}

func (s *StubRepository) GetAll(ctx context.Context) ([]Bill, error) {
	return append([]Bill{}, s.bills...), nil
}

func (s *StubRepository) ReplaceAll(ctx context.Context, bills []Bill) error {
	s.bills = append([]Bill{}, bills...)
	return nil
}
