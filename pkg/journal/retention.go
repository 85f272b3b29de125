package journal

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler prunes the journal on a cron schedule.
type Scheduler struct {
	journal   *Journal
	schedule  string
	retention time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
	mu        sync.Mutex
	running   bool
}

// NewScheduler creates a retention scheduler. schedule is a standard
// five-field cron expression, e.g. "0 3 * * *" for daily at 3 AM.
func NewScheduler(j *Journal, schedule string, retention time.Duration) *Scheduler {
	return &Scheduler{
		journal:   j,
		schedule:  schedule,
		retention: retention,
		cron:      cron.New(),
		logger:    slog.Default().With("component", "journal.scheduler"),
	}
}

// Start begins scheduled pruning. An empty schedule disables the scheduler.
// The scheduler stops when ctx is cancelled or Stop is called.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.schedule == "" {
		s.logger.Info("prune schedule not configured, skipping scheduler")
		return nil
	}
	if s.running {
		return nil
	}

	if _, err := cron.ParseStandard(s.schedule); err != nil {
		return fmt.Errorf("journal: invalid cron schedule %q: %w", s.schedule, err)
	}

	if _, err := s.cron.AddFunc(s.schedule, func() {
		s.runPruning(ctx)
	}); err != nil {
		return fmt.Errorf("journal: failed to schedule pruning: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info("retention scheduler started",
		"schedule", s.schedule,
		"retention", s.retention,
	)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop halts scheduled pruning. It is idempotent and waits for an in-flight
// prune to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	<-s.cron.Stop().Done()
	s.running = false
	s.logger.Info("retention scheduler stopped")
}

func (s *Scheduler) runPruning(ctx context.Context) {
	deleted, err := s.journal.Prune(ctx, s.retention)
	if err != nil {
		s.logger.Error("scheduled prune failed", "error", err)
		return
	}
	s.logger.Info("scheduled prune completed", "deleted", deleted)
}
