package archive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kharcha/kharcha/internal/storage"
	log "github.com/sirupsen/logrus"
)

const archivedKey = "archived"

type Repository interface {
	GetAll(ctx context.Context) ([]Entry, error)
	Append(ctx context.Context, e Entry) error
	ReplaceAll(ctx context.Context, entries []Entry) error
}

type RepositoryImpl struct {
	store storage.Store
}

func NewRepository(store storage.Store) *RepositoryImpl {
	return &RepositoryImpl{store: store}
}

func (r *RepositoryImpl) GetAll(ctx context.Context) ([]Entry, error) {
	raw, err := r.store.Load(ctx, archivedKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return []Entry{}, nil
		}
		return nil, fmt.Errorf("could not load archive: %w", err)
	}
	var records []Record
	if err := json.Unmarshal(raw, &records); err != nil {
		log.Warnf("stored archive is not parseable, falling back to empty list: %v", err)
		return []Entry{}, nil
	}
	entries, err := FromRecords(records)
	if err != nil {
		log.Warnf("stored archive contains invalid dates, falling back to empty list: %v", err)
		return []Entry{}, nil
	}
	return entries, nil
}

func (r *RepositoryImpl) Append(ctx context.Context, e Entry) error {
	entries, err := r.GetAll(ctx)
	if err != nil {
		return err
	}
	return r.ReplaceAll(ctx, append(entries, e))
}

func (r *RepositoryImpl) ReplaceAll(ctx context.Context, entries []Entry) error {
	raw, err := json.Marshal(ToRecords(entries))
	if err != nil {
		return fmt.Errorf("could not serialize archive: %w", err)
	}
	return r.store.Save(ctx, archivedKey, raw)
}
