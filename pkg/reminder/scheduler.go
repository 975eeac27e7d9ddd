package reminder

import (
	"context"
	"time"

	"github.com/kharcha/kharcha/internal/event_bus"
	"github.com/kharcha/kharcha/internal/utils"
	"github.com/kharcha/kharcha/pkg/stats"
	log "github.com/sirupsen/logrus"
)

// Scheduler fires the daily reminder event when the configured time of day is
// reached. The reminder fires at most once per calendar day, tracked in
// memory: a restart re-arms the reminder but the minute check makes a double
// fire on the same day unlikely.
type Scheduler struct {
	settings Service
	stats    stats.Service
	bus      *event_bus.EventBus
	clock    utils.Clock

	firedOn time.Time
}

func NewScheduler(settings Service, stats stats.Service, bus *event_bus.EventBus, clock utils.Clock) *Scheduler {
	return &Scheduler{settings: settings, stats: stats, bus: bus, clock: clock}
}

// Run checks the reminder once per minute until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	log.Info("Reminder scheduler started")
	for {
		select {
		case <-ctx.Done():
			log.Info("Reminder scheduler stopped")
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick fires the reminder if the configured time has been reached and it has
// not fired today yet.
func (s *Scheduler) Tick(ctx context.Context) {
	now := s.clock.Now()
	if utils.SameDay(s.firedOn, now) {
		return
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		log.Errorf("reminder check failed to load settings: %v", err)
		return
	}
	if !settings.DailyReminder {
		return
	}
	hour, minute, err := ParseClockTime(settings.ReminderTime)
	if err != nil {
		log.Errorf("reminder check: %v", err)
		return
	}
	if now.Hour() != hour || now.Minute() != minute {
		return
	}

	summary, err := s.stats.Summary(ctx)
	if err != nil {
		log.Errorf("reminder check failed to build summary: %v", err)
		return
	}

	s.firedOn = now
	err = s.bus.Publish(event_bus.NewEvent(ctx, event_bus.TypeReminderDue, event_bus.ReminderDue{
		TodaySpent: int64(summary.TodayTotal),
		Remaining:  int64(summary.Remaining),
	}))
	if err != nil {
		log.Errorf("reminder event delivery: %v", err)
	}
}
