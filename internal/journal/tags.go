package journal

import (
	"context"
	"fmt"

	"github.com/mrlokans/moodsnapshot/internal/database"
	"github.com/mrlokans/moodsnapshot/internal/database/moods"
	"github.com/mrlokans/moodsnapshot/internal/database/tags"
	"github.com/mrlokans/moodsnapshot/internal/entities"
)

// GetFrequentTags returns up to limit tag names, most used first. Equal counts
// are ordered by most recent use, then by name. A limit <= 0 uses the default.
func (s *Service) GetFrequentTags(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 {
		limit = s.frequentTags
	}
	usages, err := tags.NewRepository(s.store).GetTop(ctx, limit)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(usages))
	for _, u := range usages {
		names = append(names, u.Tag)
	}
	return names, nil
}

// GetTagUsage returns every tag counter, most used first.
func (s *Service) GetTagUsage(ctx context.Context) ([]entities.TagUsage, error) {
	return tags.NewRepository(s.store).GetTop(ctx, 0)
}

// RebuildTagUsage recomputes every counter from the stored entries and returns
// how many tags exist afterwards.
func (s *Service) RebuildTagUsage(ctx context.Context) (int, error) {
	var n int
	err := s.store.Transaction(ctx, func(tx database.Conn) error {
		var err error
		n, err = rebuildTagUsage(ctx, tx)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("rebuild tag usage: %w", err)
	}
	s.log.Info().Int("tags", n).Msg("tag usage rebuilt")
	return n, nil
}

func rebuildTagUsage(ctx context.Context, tx database.Conn) (int, error) {
	entries, err := moods.NewRepository(tx).GetAll(ctx)
	if err != nil {
		return 0, err
	}
	usages := CountTagUsage(entries)
	if err := tags.NewRepository(tx).ReplaceAll(ctx, usages); err != nil {
		return 0, err
	}
	return len(usages), nil
}

// CountTagUsage derives counters from entries: one use per entry that lists a
// tag, with LastUsed set to the latest UpdatedAt among those entries.
func CountTagUsage(entries []entities.MoodEntry) []entities.TagUsage {
	byTag := make(map[string]*entities.TagUsage)
	var order []string
	for _, e := range entries {
		for _, tag := range e.DistinctTags() {
			u, ok := byTag[tag]
			if !ok {
				u = &entities.TagUsage{Tag: tag}
				byTag[tag] = u
				order = append(order, tag)
			}
			u.Count++
			if e.UpdatedAt.After(u.LastUsed) {
				u.LastUsed = e.UpdatedAt.UTC()
			}
		}
	}
	out := make([]entities.TagUsage, 0, len(order))
	for _, tag := range order {
		out = append(out, *byTag[tag])
	}
	tags.SortByFrequency(out)
	return out
}
