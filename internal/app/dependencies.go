package app

import (
	"database/sql"

	"github.com/kharcha/kharcha/internal/config"
	"github.com/kharcha/kharcha/internal/event_bus"
	"github.com/kharcha/kharcha/internal/storage"
	"github.com/kharcha/kharcha/internal/utils"
	"github.com/kharcha/kharcha/pkg/archive"
	"github.com/kharcha/kharcha/pkg/bills"
	"github.com/kharcha/kharcha/pkg/budget"
	"github.com/kharcha/kharcha/pkg/expense"
	"github.com/kharcha/kharcha/pkg/period"
	"github.com/kharcha/kharcha/pkg/reminder"
	"github.com/kharcha/kharcha/pkg/stats"
	"github.com/kharcha/kharcha/pkg/transfer"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Store storage.Store
	Bus   *event_bus.EventBus
	Clock utils.Clock

	BudgetRepo    budget.Repository
	BudgetService budget.Service
	BudgetHandler *budget.Handler

	PeriodRepo    period.Repository
	PeriodService period.Service
	PeriodHandler *period.Handler

	ExpenseRepo    expense.Repository
	ExpenseService expense.Service
	ExpenseHandler *expense.Handler

	BillsRepo    bills.Repository
	BillsService bills.Service
	BillsHandler *bills.Handler

	ArchiveRepo    archive.Repository
	ArchiveService archive.Service
	ArchiveHandler *archive.Handler

	StatsService stats.Service
	StatsHandler *stats.Handler

	ReminderRepo      reminder.Repository
	ReminderService   reminder.Service
	ReminderHandler   *reminder.Handler
	ReminderScheduler *reminder.Scheduler

	TransferService transfer.Service
	TransferHandler *transfer.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Store = storage.NewSQLStore(db, cfg.Storage.Namespace)
	deps.Bus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	deps.BudgetRepo = budget.NewRepository(deps.Store)
	deps.BudgetService = budget.NewService(deps.BudgetRepo, cfg.Defaults)
	deps.BudgetHandler = budget.NewHandler(deps.BudgetService)

	deps.PeriodRepo = period.NewRepository(deps.Store)
	deps.PeriodService = period.NewService(deps.PeriodRepo, deps.Clock, cfg.Defaults)
	deps.PeriodHandler = period.NewHandler(deps.PeriodService)

	deps.ExpenseRepo = expense.NewRepository(deps.Store)
	deps.ExpenseService = expense.NewService(deps.ExpenseRepo, deps.PeriodService, deps.BudgetService, deps.Bus, deps.Clock)
	deps.ExpenseHandler = expense.NewHandler(deps.ExpenseService)

	deps.BillsRepo = bills.NewRepository(deps.Store)
	deps.BillsService = bills.NewService(deps.BillsRepo, deps.Clock)
	deps.BillsHandler = bills.NewHandler(deps.BillsService)

	deps.ArchiveRepo = archive.NewRepository(deps.Store)
	deps.ArchiveService = archive.NewService(deps.ArchiveRepo, deps.ExpenseRepo, deps.PeriodService, deps.Clock)
	deps.ArchiveHandler = archive.NewHandler(deps.ArchiveService)

	deps.StatsService = stats.NewService(deps.ExpenseService, deps.PeriodService, deps.BudgetService, deps.Clock)
	deps.StatsHandler = stats.NewHandler(deps.StatsService)

	deps.ReminderRepo = reminder.NewRepository(deps.Store)
	deps.ReminderService = reminder.NewService(deps.ReminderRepo, cfg.Defaults)
	deps.ReminderHandler = reminder.NewHandler(deps.ReminderService)
	deps.ReminderScheduler = reminder.NewScheduler(deps.ReminderService, deps.StatsService, deps.Bus, deps.Clock)

	deps.TransferService = transfer.NewService(
		deps.ExpenseRepo,
		deps.BillsRepo,
		deps.BudgetRepo,
		deps.PeriodRepo,
		deps.ArchiveRepo,
		deps.ReminderRepo,
		deps.Store,
		deps.Clock,
	)
	deps.TransferHandler = transfer.NewHandler(deps.TransferService, deps.Clock)

	return deps
}
