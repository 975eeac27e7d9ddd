package period

import (
	"context"
	"fmt"
	"time"

	"github.com/kharcha/kharcha/internal/config"
	"github.com/kharcha/kharcha/internal/money"
	"github.com/kharcha/kharcha/internal/utils"
	log "github.com/sirupsen/logrus"
)

var ErrValidation = fmt.Errorf("invalid tracking period")

type Service interface {
	// Current returns the current tracking period, installing the default
	// period on first use.
	Current(ctx context.Context) (TrackingPeriod, error)
	// UpdateCurrent changes the live period's window in place and recomputes
	// its end date. The budget limit and the recorded expenses are retained.
	UpdateCurrent(ctx context.Context, duration int, unit Unit, startDate string) (TrackingPeriod, error)
	// Install validates and makes p the current period, recording it in the
	// period list. Archival of the previous period is the caller's concern.
	Install(ctx context.Context, params NewPeriod) (TrackingPeriod, error)
	All(ctx context.Context) ([]TrackingPeriod, error)
}

type NewPeriod struct {
	Duration    int
	Unit        Unit
	StartDate   string // calendar date, "2006-01-02"
	BudgetLimit money.Money
}

type ServiceImpl struct {
	repo     Repository
	clock    utils.Clock
	defaults config.Defaults
}

func NewService(repo Repository, clock utils.Clock, defaults config.Defaults) *ServiceImpl {
	return &ServiceImpl{repo: repo, clock: clock, defaults: defaults}
}

func (s *ServiceImpl) Current(ctx context.Context) (TrackingPeriod, error) {
	stored, err := s.repo.Current(ctx)
	if err != nil {
		return TrackingPeriod{}, err
	}
	if stored != nil {
		return *stored, nil
	}

	p := s.defaultPeriod()
	log.Infof("no current period found, installing default period %q (%d %s)", p.Name, p.Duration, p.Unit)
	if err := s.repo.SetCurrent(ctx, p); err != nil {
		return TrackingPeriod{}, err
	}
	return p, nil
}

func (s *ServiceImpl) UpdateCurrent(ctx context.Context, duration int, unit Unit, startDate string) (TrackingPeriod, error) {
	if err := validateWindow(duration, unit, startDate); err != nil {
		return TrackingPeriod{}, err
	}
	current, err := s.Current(ctx)
	if err != nil {
		return TrackingPeriod{}, err
	}

	start, err := parseDate(startDate)
	if err != nil {
		return TrackingPeriod{}, err
	}
	current.Duration = duration
	current.Unit = unit
	current.StartDate = start
	current.EndDate = EndDateFor(start, duration, unit)

	if err := s.repo.SetCurrent(ctx, current); err != nil {
		return TrackingPeriod{}, err
	}
	return current, nil
}

func (s *ServiceImpl) Install(ctx context.Context, params NewPeriod) (TrackingPeriod, error) {
	if err := validateWindow(params.Duration, params.Unit, params.StartDate); err != nil {
		return TrackingPeriod{}, err
	}
	if params.BudgetLimit <= 0 {
		return TrackingPeriod{}, fmt.Errorf("%w: budget limit must be positive", ErrValidation)
	}
	start, err := parseDate(params.StartDate)
	if err != nil {
		return TrackingPeriod{}, err
	}

	now := s.clock.Now()
	p := TrackingPeriod{
		ID:          now.UnixMilli(),
		Name:        fmt.Sprintf("%d %s period", params.Duration, params.Unit),
		StartDate:   start,
		EndDate:     EndDateFor(start, params.Duration, params.Unit),
		Duration:    params.Duration,
		Unit:        params.Unit,
		BudgetLimit: params.BudgetLimit,
		IsActive:    true,
		CreatedAt:   now,
	}

	if err := s.repo.Append(ctx, p); err != nil {
		return TrackingPeriod{}, err
	}
	if err := s.repo.SetCurrent(ctx, p); err != nil {
		return TrackingPeriod{}, err
	}
	return p, nil
}

func (s *ServiceImpl) All(ctx context.Context) ([]TrackingPeriod, error) {
	return s.repo.All(ctx)
}

func (s *ServiceImpl) defaultPeriod() TrackingPeriod {
	now := s.clock.Now()
	start := utils.DateOf(now)
	return TrackingPeriod{
		ID:          now.UnixMilli(),
		Name:        "Default Period",
		StartDate:   start,
		EndDate:     EndDateFor(start, s.defaults.PeriodDays, UnitDays),
		Duration:    s.defaults.PeriodDays,
		Unit:        UnitDays,
		BudgetLimit: money.Money(s.defaults.BudgetLimit),
		IsActive:    true,
		CreatedAt:   now,
	}
}

func validateWindow(duration int, unit Unit, startDate string) error {
	if duration <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrValidation)
	}
	if !unit.IsValid() {
		return fmt.Errorf("%w: unit must be one of days, weeks, months", ErrValidation)
	}
	if startDate == "" {
		return fmt.Errorf("%w: start date is required", ErrValidation)
	}
	return nil
}

func parseDate(date string) (time.Time, error) {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: start date must be formatted as 2006-01-02", ErrValidation)
	}
	return t, nil
}
