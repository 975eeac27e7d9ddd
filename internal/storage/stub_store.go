package storage

import "context"

// StubStore is an in-memory Store for tests.
type StubStore struct {
	data map[string][]byte
}

func NewStubStore() *StubStore {
	return &StubStore{data: map[string][]byte{}}
}

func (s *StubStore) Load(ctx context.Context, key string) ([]byte, error) {
	value, ok := s.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return value, nil
}

func (s *StubStore) Save(ctx context.Context, key string, value []byte) error {
	s.data[key] = value
	return nil
}

func (s *StubStore) Delete(ctx context.Context, key string) error {
	delete(s.data, key)
	return nil
}

func (s *StubStore) Clear(ctx context.Context) error {
	s.data = map[string][]byte{}
	return nil
}
