package bills

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kharcha/kharcha/internal/storage"
	log "github.com/sirupsen/logrus"
)

const billsKey = "bills"

type Repository interface {
	GetAll(ctx context.Context) ([]Bill, error)
	ReplaceAll(ctx context.Context, bills []Bill) error
}

type RepositoryImpl struct {
	store storage.Store
}

func NewRepository(store storage.Store) *RepositoryImpl {
	return &RepositoryImpl{store: store}
}

func (r *RepositoryImpl) GetAll(ctx context.Context) ([]Bill, error) {
	raw, err := r.store.Load(ctx, billsKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return []Bill{}, nil
		}
		return nil, fmt.Errorf("could not load recurring bills: %w", err)
	}
	var records []Record
	if err := json.Unmarshal(raw, &records); err != nil {
		log.Warnf("stored recurring bills are not parseable, falling back to empty list: %v", err)
		return []Bill{}, nil
	}
	bills, err := FromRecords(records)
	if err != nil {
		log.Warnf("stored recurring bills contain invalid dates, falling back to empty list: %v", err)
		return []Bill{}, nil
	}
	return bills, nil
}

func (r *RepositoryImpl) ReplaceAll(ctx context.Context, bills []Bill) error {
	raw, err := json.Marshal(ToRecords(bills))
	if err != nil {
		return fmt.Errorf("could not serialize recurring bills: %w", err)
	}
	return r.store.Save(ctx, billsKey, raw)
}
