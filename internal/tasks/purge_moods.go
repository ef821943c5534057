package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/rs/zerolog"
)

// MoodPurger provides the ability to delete old mood entries.
type MoodPurger interface {
	PurgeOlderThan(ctx context.Context, days int) (int64, error)
}

// PurgeMoodsTask removes mood entries dated more than Days days before today.
type PurgeMoodsTask struct {
	Days int `json:"days"`
}

// Config returns the queue configuration for purge tasks.
func (t PurgeMoodsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "purge_moods",
		MaxAttempts: 3,
		Backoff:     5 * time.Minute,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// PurgeMoodsProcessor creates a processor function for PurgeMoodsTask.
func PurgeMoodsProcessor(purger MoodPurger, log zerolog.Logger) backlite.QueueProcessor[PurgeMoodsTask] {
	return func(ctx context.Context, task PurgeMoodsTask) error {
		if purger == nil {
			return fmt.Errorf("mood purger not configured")
		}

		deleted, err := purger.PurgeOlderThan(ctx, task.Days)
		if err != nil {
			return fmt.Errorf("purge moods older than %d days: %w", task.Days, err)
		}

		log.Info().Int64("deleted", deleted).Int("days", task.Days).Msg("purged old mood entries")
		return nil
	}
}

// NewPurgeMoodsQueue creates a backlite queue for purge tasks.
func NewPurgeMoodsQueue(purger MoodPurger, log zerolog.Logger) backlite.Queue {
	return backlite.NewQueue(PurgeMoodsProcessor(purger, log))
}
