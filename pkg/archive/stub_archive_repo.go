package archive

import "context"

// StubRepository is an in-memory Repository for tests.
type StubRepository struct {
	entries []Entry
}

func NewStubRepository() *StubRepository {
	return &StubRepository{}
}

func (s *StubRepository) GetAll(ctx context.Context) ([]Entry, error) {
	return append([]Entry{}, s.entries...), nil
}

func (s *StubRepository) Append(ctx context.Context, e Entry) error {
	s.entries = append(s.entries, e)
	return nil
}

func (s *StubRepository) ReplaceAll(ctx context.Context, entries []Entry) error {
	s.entries = append([]Entry{}, entries...)
	return nil
}
