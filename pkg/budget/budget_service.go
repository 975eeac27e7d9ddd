package budget

import (
	"context"
	"fmt"

	"github.com/kharcha/kharcha/internal/config"
	"github.com/kharcha/kharcha/internal/money"
)

var ErrValidation = fmt.Errorf("invalid budget settings")

type Service interface {
	Get(ctx context.Context) (Settings, error)
	Update(ctx context.Context, settings Settings) (Settings, error)
}

type ServiceImpl struct {
	repo     Repository
	defaults config.Defaults
}

func NewService(repo Repository, defaults config.Defaults) *ServiceImpl {
	return &ServiceImpl{repo: repo, defaults: defaults}
}

func (s *ServiceImpl) Get(ctx context.Context) (Settings, error) {
	stored, err := s.repo.Get(ctx)
	if err != nil {
		return Settings{}, err
	}
	if stored == nil {
		return s.defaultSettings(), nil
	}
	return *stored, nil
}

func (s *ServiceImpl) Update(ctx context.Context, settings Settings) (Settings, error) {
	if settings.MonthlyLimit <= 0 {
		return Settings{}, fmt.Errorf("%w: monthly limit must be positive", ErrValidation)
	}
	if settings.WarningThreshold < 1 || settings.WarningThreshold > 100 {
		return Settings{}, fmt.Errorf("%w: warning threshold must be between 1 and 100", ErrValidation)
	}
	for category, limit := range settings.CategoryBudgets {
		if limit <= 0 {
			return Settings{}, fmt.Errorf("%w: budget for category %q must be positive", ErrValidation, category)
		}
	}
	if err := s.repo.Set(ctx, settings); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

func (s *ServiceImpl) defaultSettings() Settings {
	return Settings{
		MonthlyLimit:     money.Money(s.defaults.BudgetLimit),
		WarningThreshold: s.defaults.WarningThreshold,
		CategoryBudgets:  map[string]money.Money{},
	}
}
