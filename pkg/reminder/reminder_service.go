package reminder

import (
	"context"
	"errors"
	"fmt"

	"github.com/kharcha/kharcha/internal/config"
)

var ErrValidation = errors.New("invalid notification settings")

type Service interface {
	// Get returns the stored settings, substituting defaults when nothing
	// has been saved yet.
	Get(ctx context.Context) (Settings, error)
	Update(ctx context.Context, settings Settings) (Settings, error)
}

type ServiceImpl struct {
	repository Repository
	defaults   config.Defaults
}

func NewService(repository Repository, defaults config.Defaults) *ServiceImpl {
	return &ServiceImpl{repository: repository, defaults: defaults}
}

func (s *ServiceImpl) defaultSettings() Settings {
	return Settings{
		ReminderTime:   s.defaults.ReminderTime,
		DailyReminder:  true,
		BudgetWarnings: true,
		BillReminders:  true,
	}
}

func (s *ServiceImpl) Get(ctx context.Context) (Settings, error) {
	stored, err := s.repository.Get(ctx)
	if err != nil {
		return Settings{}, err
	}
	if stored == nil {
		return s.defaultSettings(), nil
	}
	return *stored, nil
}

func (s *ServiceImpl) Update(ctx context.Context, settings Settings) (Settings, error) {
	if _, _, err := ParseClockTime(settings.ReminderTime); err != nil {
		return Settings{}, fmt.Errorf("%w: reminder time must be HH:MM", ErrValidation)
	}
	if err := s.repository.Set(ctx, settings); err != nil {
		return Settings{}, err
	}
	return settings, nil
}
