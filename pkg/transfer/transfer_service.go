package transfer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kharcha/kharcha/internal/storage"
	"github.com/kharcha/kharcha/internal/utils"
	"github.com/kharcha/kharcha/pkg/archive"
	"github.com/kharcha/kharcha/pkg/bills"
	"github.com/kharcha/kharcha/pkg/budget"
	"github.com/kharcha/kharcha/pkg/expense"
	"github.com/kharcha/kharcha/pkg/period"
	"github.com/kharcha/kharcha/pkg/reminder"
	log "github.com/sirupsen/logrus"
)

var ErrMalformedImport = errors.New("malformed import document")

type Service interface {
	// Export produces a full backup of everything currently stored.
	Export(ctx context.Context) (Document, error)
	// ExportHistory produces the archive plus the running period.
	ExportHistory(ctx context.Context) (HistoryDocument, error)
	// Import validates the whole document first and only then persists, so a
	// malformed document never leaves the store partially overwritten.
	Import(ctx context.Context, doc Document) error
	// ClearAll wipes every stored snapshot.
	ClearAll(ctx context.Context) error
}

type ServiceImpl struct {
	expenses  expense.Repository
	bills     bills.Repository
	budgets   budget.Repository
	periods   period.Repository
	archives  archive.Repository
	reminders reminder.Repository
	store     storage.Store
	clock     utils.Clock
}

func NewService(
	expenses expense.Repository,
	billRepo bills.Repository,
	budgets budget.Repository,
	periods period.Repository,
	archives archive.Repository,
	reminders reminder.Repository,
	store storage.Store,
	clock utils.Clock,
) *ServiceImpl {
	return &ServiceImpl{
		expenses:  expenses,
		bills:     billRepo,
		budgets:   budgets,
		periods:   periods,
		archives:  archives,
		reminders: reminders,
		store:     store,
		clock:     clock,
	}
}

func (s *ServiceImpl) Export(ctx context.Context) (Document, error) {
	expenses, err := s.expenses.GetAll(ctx)
	if err != nil {
		return Document{}, err
	}
	recurringBills, err := s.bills.GetAll(ctx)
	if err != nil {
		return Document{}, err
	}
	budgetSettings, err := s.budgets.Get(ctx)
	if err != nil {
		return Document{}, err
	}
	periods, err := s.periods.All(ctx)
	if err != nil {
		return Document{}, err
	}
	current, err := s.periods.Current(ctx)
	if err != nil {
		return Document{}, err
	}
	archived, err := s.archives.GetAll(ctx)
	if err != nil {
		return Document{}, err
	}
	notifications, err := s.reminders.Get(ctx)
	if err != nil {
		return Document{}, err
	}

	doc := Document{
		Version:         Version,
		ExportDate:      s.clock.Now().Format(time.RFC3339),
		Expenses:        expense.ToRecords(expenses),
		RecurringBills:  bills.ToRecords(recurringBills),
		TrackingPeriods: period.ToRecords(periods),
		ArchivedData:    archive.ToRecords(archived),
	}
	if budgetSettings != nil {
		record := budget.ToRecord(*budgetSettings)
		doc.BudgetSettings = &record
	}
	if current != nil {
		record := period.ToRecord(*current)
		doc.CurrentPeriod = &record
	}
	if notifications != nil {
		record := reminder.ToRecord(*notifications)
		doc.NotificationSettings = &record
	}
	return doc, nil
}

func (s *ServiceImpl) ExportHistory(ctx context.Context) (HistoryDocument, error) {
	archived, err := s.archives.GetAll(ctx)
	if err != nil {
		return HistoryDocument{}, err
	}

	doc := HistoryDocument{
		ExportDate:   s.clock.Now().Format(time.RFC3339),
		ArchivedData: archive.ToRecords(archived),
	}

	current, err := s.periods.Current(ctx)
	if err != nil {
		return HistoryDocument{}, err
	}
	if current == nil {
		return doc, nil
	}

	all, err := s.expenses.GetAll(ctx)
	if err != nil {
		return HistoryDocument{}, err
	}
	currentExpenses := make([]expense.Expense, 0, len(all))
	for _, e := range all {
		if e.PeriodID == current.ID {
			currentExpenses = append(currentExpenses, e)
		}
	}
	doc.CurrentPeriod = &HistorySnapshot{
		Period:     period.ToRecord(*current),
		Expenses:   expense.ToRecords(currentExpenses),
		TotalSpent: int64(expense.Total(currentExpenses)),
	}
	return doc, nil
}

// imported holds a fully validated document, converted to domain types.
type imported struct {
	expenses      []expense.Expense
	bills         []bills.Bill
	budget        *budget.Settings
	periods       []period.TrackingPeriod
	currentPeriod *period.TrackingPeriod
	archived      []archive.Entry
	notifications *reminder.Settings
}

func (s *ServiceImpl) Import(ctx context.Context, doc Document) error {
	parsed, err := validate(doc)
	if err != nil {
		return err
	}

	if parsed.expenses != nil {
		if err := s.expenses.ReplaceAll(ctx, parsed.expenses); err != nil {
			return err
		}
	}
	if parsed.bills != nil {
		if err := s.bills.ReplaceAll(ctx, parsed.bills); err != nil {
			return err
		}
	}
	if parsed.budget != nil {
		if err := s.budgets.Set(ctx, *parsed.budget); err != nil {
			return err
		}
	}
	if parsed.periods != nil {
		if err := s.periods.ReplaceAll(ctx, parsed.periods); err != nil {
			return err
		}
	}
	if parsed.currentPeriod != nil {
		if err := s.periods.SetCurrent(ctx, *parsed.currentPeriod); err != nil {
			return err
		}
	}
	if parsed.archived != nil {
		if err := s.archives.ReplaceAll(ctx, parsed.archived); err != nil {
			return err
		}
	}
	if parsed.notifications != nil {
		if err := s.reminders.Set(ctx, *parsed.notifications); err != nil {
			return err
		}
	}

	log.Infof("Imported backup document from %s", doc.ExportDate)
	return nil
}

func validate(doc Document) (imported, error) {
	var parsed imported
	var err error

	if doc.Expenses != nil {
		if parsed.expenses, err = expense.FromRecords(doc.Expenses); err != nil {
			return imported{}, fmt.Errorf("%w: expenses: %v", ErrMalformedImport, err)
		}
	}
	if doc.RecurringBills != nil {
		if parsed.bills, err = bills.FromRecords(doc.RecurringBills); err != nil {
			return imported{}, fmt.Errorf("%w: recurring bills: %v", ErrMalformedImport, err)
		}
	}
	if doc.BudgetSettings != nil {
		settings := budget.FromRecord(*doc.BudgetSettings)
		parsed.budget = &settings
	}
	if doc.TrackingPeriods != nil {
		if parsed.periods, err = period.FromRecords(doc.TrackingPeriods); err != nil {
			return imported{}, fmt.Errorf("%w: tracking periods: %v", ErrMalformedImport, err)
		}
	}
	if doc.CurrentPeriod != nil {
		current, err := period.FromRecord(*doc.CurrentPeriod)
		if err != nil {
			return imported{}, fmt.Errorf("%w: current period: %v", ErrMalformedImport, err)
		}
		parsed.currentPeriod = &current
	}
	if doc.ArchivedData != nil {
		if parsed.archived, err = archive.FromRecords(doc.ArchivedData); err != nil {
			return imported{}, fmt.Errorf("%w: archived data: %v", ErrMalformedImport, err)
		}
	}
	if doc.NotificationSettings != nil {
		settings := reminder.FromRecord(*doc.NotificationSettings)
		if _, _, err := reminder.ParseClockTime(settings.ReminderTime); err != nil {
			return imported{}, fmt.Errorf("%w: notification settings: %v", ErrMalformedImport, err)
		}
		parsed.notifications = &settings
	}

	return parsed, nil
}

func (s *ServiceImpl) ClearAll(ctx context.Context) error {
	log.Warn("Clearing all stored data")
	return s.store.Clear(ctx)
}
