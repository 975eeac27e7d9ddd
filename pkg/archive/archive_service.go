package archive

import (
	"context"

	"github.com/kharcha/kharcha/internal/utils"
	"github.com/kharcha/kharcha/pkg/expense"
	"github.com/kharcha/kharcha/pkg/period"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	List(ctx context.Context) ([]Entry, error)
	// ArchiveCurrent snapshots the current period and its expenses into the
	// archive and removes those expenses from the live ledger. A period with
	// no expenses is not archived; nil is returned in that case.
	ArchiveCurrent(ctx context.Context) (*Entry, error)
	// StartNewPeriod archives the current period, then installs a new one.
	StartNewPeriod(ctx context.Context, params period.NewPeriod) (period.TrackingPeriod, error)
	// ResetCurrent clears the current period's expenses, optionally archiving
	// them first. The period record itself is retained.
	ResetCurrent(ctx context.Context, archiveFirst bool) error
}

type ServiceImpl struct {
	repo     Repository
	expenses expense.Repository
	periods  period.Service
	clock    utils.Clock
}

func NewService(repo Repository, expenses expense.Repository, periods period.Service, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, expenses: expenses, periods: periods, clock: clock}
}

func (s *ServiceImpl) List(ctx context.Context) ([]Entry, error) {
	return s.repo.GetAll(ctx)
}

func (s *ServiceImpl) ArchiveCurrent(ctx context.Context) (*Entry, error) {
	current, err := s.periods.Current(ctx)
	if err != nil {
		return nil, err
	}
	all, err := s.expenses.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	archived, remaining := splitByPeriod(all, current.ID)
	if len(archived) == 0 {
		log.Debugf("period %d has no expenses, nothing to archive", current.ID)
		return nil, nil
	}

	entry := Entry{
		Period:     current,
		Expenses:   archived,
		ArchivedAt: s.clock.Now(),
		TotalSpent: expense.Total(archived),
	}
	if err := s.repo.Append(ctx, entry); err != nil {
		return nil, err
	}
	// Archival is destructive to the live set: archived expenses are only
	// reachable through the archive afterwards.
	if err := s.expenses.ReplaceAll(ctx, remaining); err != nil {
		return nil, err
	}
	log.Infof("archived period %d with %d expenses (%s)", current.ID, len(archived), entry.TotalSpent)
	return &entry, nil
}

func (s *ServiceImpl) StartNewPeriod(ctx context.Context, params period.NewPeriod) (period.TrackingPeriod, error) {
	if _, err := s.ArchiveCurrent(ctx); err != nil {
		return period.TrackingPeriod{}, err
	}
	return s.periods.Install(ctx, params)
}

func (s *ServiceImpl) ResetCurrent(ctx context.Context, archiveFirst bool) error {
	if archiveFirst {
		_, err := s.ArchiveCurrent(ctx)
		return err
	}

	current, err := s.periods.Current(ctx)
	if err != nil {
		return err
	}
	all, err := s.expenses.GetAll(ctx)
	if err != nil {
		return err
	}
	_, remaining := splitByPeriod(all, current.ID)
	return s.expenses.ReplaceAll(ctx, remaining)
}

func splitByPeriod(expenses []expense.Expense, periodID int64) (in, out []expense.Expense) {
	in = make([]expense.Expense, 0, len(expenses))
	out = make([]expense.Expense, 0, len(expenses))
	for _, e := range expenses {
		if e.PeriodID == periodID {
			in = append(in, e)
		} else {
			out = append(out, e)
		}
	}
	return in, out
}
