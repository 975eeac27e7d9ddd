package expense

import "context"

// StubRepository is an in-memory Repository for tests.
type StubRepository struct {
	expenses []Expense
}

func NewStubRepository() *StubRepository {
	return &StubRepository{}
}

func (s *StubRepository) GetAll(ctx context.Context) ([]Expense, error) {
	return append([]Expense{}, s.expenses...), nil
}

func (s *StubRepository) Append(ctx context.Context, e Expense) error {
	s.expenses = append(s.expenses, e)
	return nil
}

func (s *StubRepository) ReplaceAll(ctx context.Context, expenses []Expense) error {
	s.expenses = append([]Expense{}, expenses...)
	return nil
}
