package reminder

import "context"

type StubRepository struct {
	Settings *Settings
}

func NewStubRepository() *StubRepository {
	return &StubRepository{}
}

func (s *StubRepository) Get(_ context.Context) (*Settings, error) {
	return s.Settings, nil
}

func (s *StubRepository) Set(_ context.Context, settings Settings) error {
	s.Settings = &settings
	return nil
}
