package journal

import (
	"context"
	"fmt"

	"github.com/mrlokans/moodsnapshot/internal/database"
	"github.com/mrlokans/moodsnapshot/internal/database/moods"
	"github.com/mrlokans/moodsnapshot/internal/database/tags"
	"github.com/mrlokans/moodsnapshot/internal/entities"
)

// DefaultRetentionDays is how much history the scheduled purge keeps.
const DefaultRetentionDays = 365

// PurgeCutoff returns the first calendar day kept by PurgeOlderThan(days).
func (s *Service) PurgeCutoff(days int) string {
	return s.Now().AddDate(0, 0, -days).Format(entities.DateLayout)
}

// PurgeOlderThan deletes every entry dated strictly before today minus days and
// returns how many were removed. Tag counters of the removed entries are
// released in the same transaction.
func (s *Service) PurgeOlderThan(ctx context.Context, days int) (int64, error) {
	if days < 0 {
		return 0, entities.NewValidationError("days", fmt.Sprintf("%d must not be negative", days))
	}
	cutoff := s.PurgeCutoff(days)

	var deleted int64
	err := s.store.Transaction(ctx, func(tx database.Conn) error {
		repo := moods.NewRepository(tx)
		old, err := repo.QueryBefore(ctx, cutoff)
		if err != nil || len(old) == 0 {
			return err
		}
		if deleted, err = repo.DeleteBefore(ctx, cutoff); err != nil {
			return err
		}
		tagRepo := tags.NewRepository(tx)
		for _, e := range old {
			if err := tagRepo.Decrement(ctx, e.DistinctTags()); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("purge moods: %w", err)
	}

	s.log.Info().Int64("deleted", deleted).Str("cutoff", cutoff).Msg("old moods purged")
	return deleted, nil
}
