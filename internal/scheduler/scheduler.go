// Package scheduler fires reminder notifications at their clock times.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/raphaelgruber/wellkeep/internal/models"
)

// Source lists the reminders to watch. *client.Client satisfies this.
type Source interface {
	ListReminders(ctx context.Context) ([]models.ReminderView, error)
}

// Notifier delivers a fired reminder to the user.
type Notifier interface {
	Notify(reminder models.ReminderView)
}

// Options configures scheduler intervals. Zero values use the defaults.
type Options struct {
	// TickInterval is how often the clock-time check runs (default 1m).
	TickInterval time.Duration
	// RefreshInterval is how often the reminder list is re-fetched
	// (default 5m).
	RefreshInterval time.Duration
	// Clock overrides the time source (tests).
	Clock func() time.Time
}

// Scheduler polls a reminder source and checks the list every minute. A
// reminder fires when it is enabled and its clock time equals the current
// local minute. A reminder matching on two consecutive checks fires twice;
// deduplication is the notifier's concern if it wants any.
type Scheduler struct {
	source   Source
	notifier Notifier
	logger   *slog.Logger
	tick     time.Duration
	refresh  time.Duration
	clock    func() time.Time

	mu        sync.RWMutex
	reminders []models.ReminderView

	stopCh chan struct{}
	wg     sync.WaitGroup
}

// New creates a scheduler.
func New(source Source, notifier Notifier, logger *slog.Logger, opts Options) *Scheduler {
	if opts.TickInterval <= 0 {
		opts.TickInterval = time.Minute
	}
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = 5 * time.Minute
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Scheduler{
		source:   source,
		notifier: notifier,
		logger:   logger,
		tick:     opts.TickInterval,
		refresh:  opts.RefreshInterval,
		clock:    opts.Clock,
		stopCh:   make(chan struct{}),
	}
}

// Start launches the refresh and tick loops. Both run an immediate first
// pass, so activation checks the current minute right away.
func (s *Scheduler) Start(ctx context.Context) {
	s.wg.Add(2)
	go s.refreshLoop(ctx)
	go s.tickLoop(ctx)
}

// Stop halts both loops and waits for them to finish.
func (s *Scheduler) Stop() {
	close(s.stopCh)
	s.wg.Wait()
}

func (s *Scheduler) refreshLoop(ctx context.Context) {
	defer s.wg.Done()

	s.Refresh(ctx)

	ticker := time.NewTicker(s.refresh)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.Refresh(ctx)
		case <-s.stopCh:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (s *Scheduler) tickLoop(ctx context.Context) {
	defer s.wg.Done()

	s.CheckNow()

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.CheckNow()
		case <-s.stopCh:
			return
		case <-ctx.Done():
			return
		}
	}
}

// Refresh re-fetches the reminder list, replacing the watched set wholesale.
// On fetch failure the previous set stays active.
func (s *Scheduler) Refresh(ctx context.Context) {
	reminders, err := s.source.ListReminders(ctx)
	if err != nil {
		s.logger.Warn("refreshing reminders failed, keeping previous set", "error", err)
		return
	}

	s.mu.Lock()
	s.reminders = reminders
	s.mu.Unlock()

	s.logger.Debug("reminders refreshed", "count", len(reminders))
}

// CheckNow evaluates the watched set against the current minute and fires
// all due reminders.
func (s *Scheduler) CheckNow() {
	s.mu.RLock()
	reminders := s.reminders
	s.mu.RUnlock()

	for _, reminder := range Due(reminders, s.clock()) {
		s.logger.Info("reminder due", "id", reminder.ID, "title", reminder.Title, "time", reminder.Time)
		s.notifier.Notify(reminder)
	}
}

// Due returns the reminders that fire at the given instant: enabled ones
// whose clock time equals the instant's local minute.
func Due(reminders []models.ReminderView, now time.Time) []models.ReminderView {
	minute := models.ClockMinute(now)

	var due []models.ReminderView
	for _, reminder := range reminders {
		if reminder.Enabled && reminder.Time == minute {
			due = append(due, reminder)
		}
	}
	return due
}
