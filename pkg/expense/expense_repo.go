package expense

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kharcha/kharcha/internal/storage"
	log "github.com/sirupsen/logrus"
)

const expensesKey = "expenses"

type Repository interface {
	GetAll(ctx context.Context) ([]Expense, error)
	Append(ctx context.Context, e Expense) error
	ReplaceAll(ctx context.Context, expenses []Expense) error
}

type RepositoryImpl struct {
	store storage.Store
}

func NewRepository(store storage.Store) *RepositoryImpl {
	return &RepositoryImpl{store: store}
}

func (r *RepositoryImpl) GetAll(ctx context.Context) ([]Expense, error) {
	raw, err := r.store.Load(ctx, expensesKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return []Expense{}, nil
		}
		return nil, fmt.Errorf("could not load expenses: %w", err)
	}
	var records []Record
	if err := json.Unmarshal(raw, &records); err != nil {
		log.Warnf("stored expenses are not parseable, falling back to empty ledger: %v", err)
		return []Expense{}, nil
	}
	expenses, err := FromRecords(records)
	if err != nil {
		log.Warnf("stored expenses contain invalid dates, falling back to empty ledger: %v", err)
		return []Expense{}, nil
	}
	return expenses, nil
}

func (r *RepositoryImpl) Append(ctx context.Context, e Expense) error {
	expenses, err := r.GetAll(ctx)
	if err != nil {
		return err
	}
	return r.ReplaceAll(ctx, append(expenses, e))
}

func (r *RepositoryImpl) ReplaceAll(ctx context.Context, expenses []Expense) error {
	// An empty ledger is stored as no snapshot at all; GetAll maps the
	// missing key back to an empty slice.
	if len(expenses) == 0 {
		return r.store.Delete(ctx, expensesKey)
	}
	raw, err := json.Marshal(ToRecords(expenses))
	if err != nil {
		return fmt.Errorf("could not serialize expenses: %w", err)
	}
	return r.store.Save(ctx, expensesKey, raw)
}
