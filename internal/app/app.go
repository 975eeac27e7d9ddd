package app

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/kharcha/kharcha/internal/config"
	"github.com/kharcha/kharcha/internal/database"
	"github.com/kharcha/kharcha/internal/event_bus"
	"github.com/kharcha/kharcha/internal/money"
	log "github.com/sirupsen/logrus"
)

// Application wires configuration, storage, router, and server lifecycle.
type Application struct {
	cfg    config.Application
	deps   *Dependencies
	router *mux.Router
	srv    *http.Server
}

// NewApplication constructs the full HTTP application, ready to Run().
func NewApplication() (*Application, error) {
	cfg, err := config.Load("./config/application.yaml")
	if err != nil {
		return nil, err
	}

	// DB + migrations
	db, err := database.Open(cfg.Storage)
	if err != nil {
		return nil, err
	}
	// db will be closed when server shuts down; defer not possible here, leave to process exit.
	if err := database.Migrate(db); err != nil {
		return nil, err
	}

	r := mux.NewRouter()

	// Build dependencies (services, handlers...)
	deps := BuildDependencies(db, cfg)

	// Middleware chain
	SetupMiddleware(r, deps, cfg)

	// Routes
	RegisterRoutes(r, deps, cfg)

	// Notification log sink
	registerNotifications(deps)

	srv := &http.Server{
		Handler:      r,
		Addr:         cfg.Addr,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Application{cfg: cfg, deps: deps, router: r, srv: srv}, nil
}

// registerNotifications delivers budget and reminder events to the log,
// honoring the user's notification toggles.
func registerNotifications(deps *Dependencies) {
	event_bus.SubscribeTyped(deps.Bus, event_bus.TypeBudgetWarning,
		func(e event_bus.EventT[event_bus.BudgetWarningIssued]) error {
			settings, err := deps.ReminderService.Get(e.Context())
			if err != nil || !settings.BudgetWarnings {
				return err
			}
			log.Warnf("Budget warning: spent %s of %s (%.0f%%)",
				money.Money(e.Data.TotalSpent), money.Money(e.Data.BudgetLimit), e.Data.Percentage)
			return nil
		})
	event_bus.SubscribeTyped(deps.Bus, event_bus.TypeBudgetExceeded,
		func(e event_bus.EventT[event_bus.BudgetExceededIssued]) error {
			settings, err := deps.ReminderService.Get(e.Context())
			if err != nil || !settings.BudgetWarnings {
				return err
			}
			log.Warnf("Budget exceeded: spent %s of %s (%.0f%%)",
				money.Money(e.Data.TotalSpent), money.Money(e.Data.BudgetLimit), e.Data.Percentage)
			return nil
		})
	event_bus.SubscribeTyped(deps.Bus, event_bus.TypeReminderDue,
		func(e event_bus.EventT[event_bus.ReminderDue]) error {
			log.Infof("Daily reminder: spent %s today, %s remaining in this period",
				money.Money(e.Data.TodaySpent), money.Money(e.Data.Remaining))
			return nil
		})
}

// Run starts the reminder scheduler and the HTTP server, then blocks.
func (a *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go a.deps.ReminderScheduler.Run(ctx)

	log.Infof("Starting server on %s", a.srv.Addr)
	return a.srv.ListenAndServe()
}
