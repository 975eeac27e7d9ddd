package period

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kharcha/kharcha/internal/storage"
	log "github.com/sirupsen/logrus"
)

const (
	periodsKey       = "periods"
	currentPeriodKey = "current_period"
)

type Repository interface {
	// Current returns the current period, or nil when none is stored yet
	// (or when the stored snapshot cannot be parsed).
	Current(ctx context.Context) (*TrackingPeriod, error)
	SetCurrent(ctx context.Context, p TrackingPeriod) error
	All(ctx context.Context) ([]TrackingPeriod, error)
	Append(ctx context.Context, p TrackingPeriod) error
	ReplaceAll(ctx context.Context, periods []TrackingPeriod) error
}

type RepositoryImpl struct {
	store storage.Store
}

func NewRepository(store storage.Store) *RepositoryImpl {
	return &RepositoryImpl{store: store}
}

func (r *RepositoryImpl) Current(ctx context.Context) (*TrackingPeriod, error) {
	raw, err := r.store.Load(ctx, currentPeriodKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("could not load current period: %w", err)
	}
	var record Record
	if err := json.Unmarshal(raw, &record); err != nil {
		log.Warnf("stored current period is not parseable, falling back to default: %v", err)
		return nil, nil
	}
	p, err := FromRecord(record)
	if err != nil {
		log.Warnf("stored current period has invalid dates, falling back to default: %v", err)
		return nil, nil
	}
	return &p, nil
}

func (r *RepositoryImpl) SetCurrent(ctx context.Context, p TrackingPeriod) error {
	raw, err := json.Marshal(ToRecord(p))
	if err != nil {
		return fmt.Errorf("could not serialize current period: %w", err)
	}
	return r.store.Save(ctx, currentPeriodKey, raw)
}

func (r *RepositoryImpl) All(ctx context.Context) ([]TrackingPeriod, error) {
	raw, err := r.store.Load(ctx, periodsKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return []TrackingPeriod{}, nil
		}
		return nil, fmt.Errorf("could not load periods: %w", err)
	}
	var records []Record
	if err := json.Unmarshal(raw, &records); err != nil {
		log.Warnf("stored periods are not parseable, falling back to empty list: %v", err)
		return []TrackingPeriod{}, nil
	}
	periods, err := FromRecords(records)
	if err != nil {
		log.Warnf("stored periods contain invalid dates, falling back to empty list: %v", err)
		return []TrackingPeriod{}, nil
	}
	return periods, nil
}

func (r *RepositoryImpl) Append(ctx context.Context, p TrackingPeriod) error {
	periods, err := r.All(ctx)
	if err != nil {
		return err
	}
	return r.ReplaceAll(ctx, append(periods, p))
}

func (r *RepositoryImpl) ReplaceAll(ctx context.Context, periods []TrackingPeriod) error {
	raw, err := json.Marshal(ToRecords(periods))
	if err != nil {
		return fmt.Errorf("could not serialize periods: %w", err)
	}
	return r.store.Save(ctx, periodsKey, raw)
}
