package journal

import (
	"context"

	"github.com/mrlokans/moodsnapshot/internal/entities"
	"github.com/mrlokans/moodsnapshot/internal/insights"
)

// Insights builds the statistics report for tf. The streak is computed over
// the same window as the other figures.
func (s *Service) Insights(ctx context.Context, tf insights.Timeframe) (*insights.Report, error) {
	now := s.Now()

	var (
		entries []entities.MoodEntry
		err     error
	)
	if start, end, bounded := insights.Window(tf, now); bounded {
		entries, err = s.GetMoodsInRange(ctx, start, end)
	} else {
		entries, err = s.GetAllMoods(ctx)
	}
	if err != nil {
		return nil, err
	}

	report := insights.BuildReport(tf, entries, now, s.topTags)
	return &report, nil
}
