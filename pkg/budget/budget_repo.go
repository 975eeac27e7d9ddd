package budget

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kharcha/kharcha/internal/storage"
	log "github.com/sirupsen/logrus"
)

const settingsKey = "budget"

type Repository interface {
	// Get returns the stored settings, or nil when none are stored yet
	// (or when the stored snapshot cannot be parsed).
	Get(ctx context.Context) (*Settings, error)
	Set(ctx context.Context, settings Settings) error
}

type RepositoryImpl struct {
	store storage.Store
}

func NewRepository(store storage.Store) *RepositoryImpl {
	return &RepositoryImpl{store: store}
}

func (r *RepositoryImpl) Get(ctx context.Context) (*Settings, error) {
	raw, err := r.store.Load(ctx, settingsKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("could not load budget settings: %w", err)
	}
	var record Record
	if err := json.Unmarshal(raw, &record); err != nil {
		log.Warnf("stored budget settings are not parseable, falling back to defaults: %v", err)
		return nil, nil
	}
	settings := FromRecord(record)
	return &settings, nil
}

func (r *RepositoryImpl) Set(ctx context.Context, settings Settings) error {
	raw, err := json.Marshal(ToRecord(settings))
	if err != nil {
		return fmt.Errorf("could not serialize budget settings: %w", err)
	}
	return r.store.Save(ctx, settingsKey, raw)
}
