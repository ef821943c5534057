package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/mrlokans/moodsnapshot/internal/logger"
)

// PurgeQueue hands a purge to the background task queue.
type PurgeQueue interface {
	EnqueuePurge(ctx context.Context, days int) (string, error)
}

// MoodPurger deletes old entries in-process.
type MoodPurger interface {
	PurgeOlderThan(ctx context.Context, days int) (int64, error)
}

// RetentionConfig controls the periodic purge.
type RetentionConfig struct {
	Schedule string
	Days     int
	Location *time.Location
}

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateSchedule checks a five-field cron expression.
func ValidateSchedule(schedule string) error {
	_, err := parser.Parse(schedule)
	return err
}

// RetentionScheduler periodically purges entries older than the retention
// window. Purges go through the task queue when one is configured and run
// in-process otherwise.
type RetentionScheduler struct {
	cfg    RetentionConfig
	queue  PurgeQueue
	purger MoodPurger
	log    zerolog.Logger

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewRetentionScheduler creates a new scheduler instance. queue may be nil.
func NewRetentionScheduler(cfg RetentionConfig, queue PurgeQueue, purger MoodPurger, log zerolog.Logger) *RetentionScheduler {
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}
	log = log.With().Str("component", "retention").Logger()
	return &RetentionScheduler{
		cfg:    cfg,
		queue:  queue,
		purger: purger,
		log:    log,
		cron: cron.New(
			cron.WithParser(parser),
			cron.WithLocation(loc),
			cron.WithLogger(logger.ForCron(log)),
		),
	}
}

// Start begins the scheduler.
func (s *RetentionScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}
	if s.cfg.Days < 0 {
		return fmt.Errorf("invalid retention days %d", s.cfg.Days)
	}
	if err := ValidateSchedule(s.cfg.Schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.cfg.Schedule, err)
	}

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	entryID, err := s.cron.AddFunc(s.cfg.Schedule, func() {
		if err := s.RunNow(cancelCtx); err != nil {
			s.log.Error().Err(err).Msg("scheduled purge failed")
		}
	})
	if err != nil {
		s.cancelFunc()
		return fmt.Errorf("failed to schedule purge job: %w", err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true

	s.log.Info().
		Str("schedule", s.cfg.Schedule).
		Int("days", s.cfg.Days).
		Time("next_run", s.cron.Entry(entryID).Next).
		Msg("retention scheduler started")

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler
func (s *RetentionScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	// Stop accepting new jobs and wait for running jobs to complete
	ctx := s.cron.Stop()
	<-ctx.Done()

	s.cron.Remove(s.entryID)
	s.isRunning = false
	if s.cancelFunc != nil {
		s.cancelFunc()
		s.cancelFunc = nil
	}

	s.log.Info().Msg("retention scheduler stopped")
}

// RunNow triggers a purge immediately.
func (s *RetentionScheduler) RunNow(ctx context.Context) error {
	if s.queue != nil {
		id, err := s.queue.EnqueuePurge(ctx, s.cfg.Days)
		if err != nil {
			return fmt.Errorf("enqueue purge: %w", err)
		}
		s.log.Debug().Str("task_id", id).Msg("purge enqueued")
		return nil
	}
	if s.purger == nil {
		return fmt.Errorf("no purger configured")
	}
	_, err := s.purger.PurgeOlderThan(ctx, s.cfg.Days)
	return err
}

// IsRunning returns whether the scheduler is active
func (s *RetentionScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRunTime returns when the next purge will occur
func (s *RetentionScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	entry := s.cron.Entry(s.entryID)
	if !entry.Valid() {
		return nil
	}
	t := entry.Next
	return &t
}
