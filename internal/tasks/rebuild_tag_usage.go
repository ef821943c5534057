package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/rs/zerolog"
)

// TagUsageRebuilder provides the ability to recompute tag counters.
type TagUsageRebuilder interface {
	RebuildTagUsage(ctx context.Context) (int, error)
}

// RebuildTagUsageTask recomputes every tag-usage counter from the stored entries.
type RebuildTagUsageTask struct{}

// Config returns the queue configuration for rebuild tasks.
func (t RebuildTagUsageTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "rebuild_tag_usage",
		MaxAttempts: 1,
		Backoff:     time.Minute,
		Timeout:     time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// RebuildTagUsageProcessor creates a processor function for RebuildTagUsageTask.
func RebuildTagUsageProcessor(rebuilder TagUsageRebuilder, log zerolog.Logger) backlite.QueueProcessor[RebuildTagUsageTask] {
	return func(ctx context.Context, task RebuildTagUsageTask) error {
		if rebuilder == nil {
			return fmt.Errorf("tag usage rebuilder not configured")
		}

		n, err := rebuilder.RebuildTagUsage(ctx)
		if err != nil {
			return fmt.Errorf("rebuild tag usage: %w", err)
		}

		log.Info().Int("tags", n).Msg("rebuilt tag usage counters")
		return nil
	}
}

// NewRebuildTagUsageQueue creates a backlite queue for rebuild tasks.
func NewRebuildTagUsageQueue(rebuilder TagUsageRebuilder, log zerolog.Logger) backlite.Queue {
	return backlite.NewQueue(RebuildTagUsageProcessor(rebuilder, log))
}
