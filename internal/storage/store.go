package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// ErrNotFound is returned by Load when no snapshot exists under the key.
var ErrNotFound = errors.New("snapshot not found")

// Store is the persistent key-value store behind every collection. Each key
// holds one JSON-serialized snapshot which is always overwritten as a whole.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// Clear removes every snapshot in this store's namespace.
	Clear(ctx context.Context) error
}

type SQLStore struct {
	db        *sql.DB
	namespace string
}

func NewSQLStore(db *sql.DB, namespace string) *SQLStore {
	return &SQLStore{db: db, namespace: namespace}
}

func (s *SQLStore) qualify(key string) string {
	return s.namespace + "_" + key
}

func (s *SQLStore) Load(ctx context.Context, key string) ([]byte, error) {
	row := s.db.QueryRowContext(ctx, "SELECT value FROM snapshot WHERE key = ?", s.qualify(key))
	var value []byte
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		err := fmt.Errorf("could not load snapshot %q: %w", key, err)
		log.Error(err)
		return nil, err
	}
	return value, nil
}

func (s *SQLStore) Save(ctx context.Context, key string, value []byte) error {
	query := `INSERT INTO snapshot (key, value, updated_at) VALUES (?, ?, datetime('now'))
              ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	if _, err := s.db.ExecContext(ctx, query, s.qualify(key), value); err != nil {
		err := fmt.Errorf("could not save snapshot %q: %w", key, err)
		log.Error(err)
		return err
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM snapshot WHERE key = ?", s.qualify(key)); err != nil {
		err := fmt.Errorf("could not delete snapshot %q: %w", key, err)
		log.Error(err)
		return err
	}
	return nil
}

func (s *SQLStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM snapshot WHERE key LIKE ?", s.namespace+"_%"); err != nil {
		err := fmt.Errorf("could not clear snapshots: %w", err)
		log.Error(err)
		return err
	}
	return nil
}
