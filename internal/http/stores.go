package http

import (
	"context"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/moodsnapshot/internal/entities"
	"github.com/mrlokans/moodsnapshot/internal/insights"
	"github.com/mrlokans/moodsnapshot/internal/journal"
)

// Controllers depend on the narrow slice of the journal they use. *journal.Service
// satisfies all of them.

type MoodStore interface {
	SaveMood(ctx context.Context, draft journal.MoodDraft) (*entities.MoodEntry, error)
	GetMood(ctx context.Context, id string) (*entities.MoodEntry, error)
	GetMoodByDate(ctx context.Context, date string) (*entities.MoodEntry, error)
	GetMoodsInRange(ctx context.Context, start, end string) ([]entities.MoodEntry, error)
	GetAllMoods(ctx context.Context) ([]entities.MoodEntry, error)
	UpdateMood(ctx context.Context, id string, patch journal.MoodPatch) (*entities.MoodEntry, error)
	DeleteMood(ctx context.Context, id string) error
	ClearMoods(ctx context.Context) (int64, error)
	Today() string
}

type SettingsStore interface {
	GetSettings(ctx context.Context) (*entities.Settings, error)
	UpdateSettings(ctx context.Context, patch journal.SettingsPatch) (*entities.Settings, error)
}

type TagStore interface {
	GetFrequentTags(ctx context.Context, limit int) ([]string, error)
	GetTagUsage(ctx context.Context) ([]entities.TagUsage, error)
	RebuildTagUsage(ctx context.Context) (int, error)
}

type InsightsProvider interface {
	Insights(ctx context.Context, tf insights.Timeframe) (*insights.Report, error)
}

type SnapshotStore interface {
	ExportSnapshot(ctx context.Context) (*journal.Snapshot, error)
	ImportSnapshot(ctx context.Context, data []byte) (*journal.ImportResult, error)
	Today() string
}

type RetentionStore interface {
	PurgeOlderThan(ctx context.Context, days int) (int64, error)
	PurgeCutoff(days int) string
}

// Journal is everything the router needs from the journal service.
type Journal interface {
	MoodStore
	SettingsStore
	TagStore
	InsightsProvider
	SnapshotStore
	RetentionStore
}

// TaskQueue is the background queue. A nil TaskQueue makes admin operations run
// inline.
type TaskQueue interface {
	EnqueuePurge(ctx context.Context, days int) (string, error)
	EnqueueRebuildTagUsage(ctx context.Context) (string, error)
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}

// Pinger reports whether the record store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
