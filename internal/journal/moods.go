package journal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mrlokans/moodsnapshot/internal/database"
	"github.com/mrlokans/moodsnapshot/internal/database/moods"
	"github.com/mrlokans/moodsnapshot/internal/database/tags"
	"github.com/mrlokans/moodsnapshot/internal/entities"
)

// MoodDraft is the caller-supplied part of a new entry.
type MoodDraft struct {
	Date  string   `json:"date"`
	Mood  int      `json:"mood"`
	Tags  []string `json:"tags"`
	Notes string   `json:"notes,omitempty"`
}

// MoodPatch lists the fields to change on an existing entry. Nil fields are
// left alone; a non-nil empty Tags clears the tags.
type MoodPatch struct {
	Date  *string   `json:"date,omitempty"`
	Mood  *int      `json:"mood,omitempty"`
	Tags  *[]string `json:"tags,omitempty"`
	Notes *string   `json:"notes,omitempty"`
}

// NormalizeTags trims every tag and drops empty ones. Order and duplicates are kept.
func NormalizeTags(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, tag := range raw {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

func validateDate(field, date string) error {
	if !entities.IsValidDate(date) {
		return entities.NewValidationError(field, fmt.Sprintf("%q is not a YYYY-MM-DD date", date))
	}
	return nil
}

func validateMood(mood int) error {
	if !entities.IsValidMood(mood) {
		return entities.NewValidationError("mood", fmt.Sprintf("%d is outside %d..%d", mood, entities.MoodMin, entities.MoodMax))
	}
	return nil
}

// SaveMood creates a new entry from draft and counts its tags.
func (s *Service) SaveMood(ctx context.Context, draft MoodDraft) (*entities.MoodEntry, error) {
	if err := validateDate("date", draft.Date); err != nil {
		return nil, err
	}
	if err := validateMood(draft.Mood); err != nil {
		return nil, err
	}

	now := s.stamp()
	entry := &entities.MoodEntry{
		ID:        s.newID(),
		Date:      draft.Date,
		Mood:      draft.Mood,
		Tags:      NormalizeTags(draft.Tags),
		Notes:     strings.TrimSpace(draft.Notes),
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.store.Transaction(ctx, func(tx database.Conn) error {
		if err := moods.NewRepository(tx).Put(ctx, entry); err != nil {
			return err
		}
		return tags.NewRepository(tx).Increment(ctx, entry.DistinctTags(), now)
	})
	if err != nil {
		return nil, fmt.Errorf("save mood: %w", err)
	}

	s.log.Debug().Str("id", entry.ID).Str("date", entry.Date).Int("mood", entry.Mood).Msg("mood saved")
	return entry, nil
}

// GetMood returns the entry with id, or nil.
func (s *Service) GetMood(ctx context.Context, id string) (*entities.MoodEntry, error) {
	return moods.NewRepository(s.store).Get(ctx, id)
}

// GetMoodByDate returns the entry for date, or nil. When several entries share
// the date the one created last wins; equal creation times fall back to the
// greater id.
func (s *Service) GetMoodByDate(ctx context.Context, date string) (*entities.MoodEntry, error) {
	if err := validateDate("date", date); err != nil {
		return nil, err
	}
	entries, err := moods.NewRepository(s.store).GetByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	return latest(entries), nil
}

func latest(entries []entities.MoodEntry) *entities.MoodEntry {
	var best *entities.MoodEntry
	for i := range entries {
		e := &entries[i]
		switch {
		case best == nil:
			best = e
		case e.CreatedAt.After(best.CreatedAt):
			best = e
		case e.CreatedAt.Equal(best.CreatedAt) && e.ID > best.ID:
			best = e
		}
	}
	return best
}

// GetMoodsInRange returns every entry dated within [start, end], both ends
// included. start after end yields no entries.
func (s *Service) GetMoodsInRange(ctx context.Context, start, end string) ([]entities.MoodEntry, error) {
	if err := validateDate("start", start); err != nil {
		return nil, err
	}
	if err := validateDate("end", end); err != nil {
		return nil, err
	}
	if start > end {
		return []entities.MoodEntry{}, nil
	}
	return moods.NewRepository(s.store).QueryByDateRange(ctx, start, end)
}

// GetAllMoods returns every stored entry.
func (s *Service) GetAllMoods(ctx context.Context) ([]entities.MoodEntry, error) {
	return moods.NewRepository(s.store).GetAll(ctx)
}

// UpdateMood applies patch to the entry with id. It fails with
// entities.ErrNotFound when there is no such entry. If the tag set changes,
// counters are adjusted by the difference and every tag now on the entry is
// stamped as used.
func (s *Service) UpdateMood(ctx context.Context, id string, patch MoodPatch) (*entities.MoodEntry, error) {
	if patch.Date != nil {
		if err := validateDate("date", *patch.Date); err != nil {
			return nil, err
		}
	}
	if patch.Mood != nil {
		if err := validateMood(*patch.Mood); err != nil {
			return nil, err
		}
	}

	now := s.stamp()
	var updated *entities.MoodEntry
	err := s.store.Transaction(ctx, func(tx database.Conn) error {
		repo := moods.NewRepository(tx)
		entry, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if entry == nil {
			return fmt.Errorf("mood %s: %w", id, entities.ErrNotFound)
		}

		oldTags := entry.DistinctTags()
		if patch.Date != nil {
			entry.Date = *patch.Date
		}
		if patch.Mood != nil {
			entry.Mood = *patch.Mood
		}
		if patch.Notes != nil {
			entry.Notes = strings.TrimSpace(*patch.Notes)
		}
		if patch.Tags != nil {
			entry.Tags = NormalizeTags(*patch.Tags)
		}
		entry.UpdatedAt = now

		if err := repo.Put(ctx, entry); err != nil {
			return err
		}
		if patch.Tags != nil {
			if err := reconcileTags(ctx, tags.NewRepository(tx), oldTags, entry.DistinctTags(), now); err != nil {
				return err
			}
		}
		updated = entry
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update mood: %w", err)
	}
	return updated, nil
}

func reconcileTags(ctx context.Context, repo *tags.Repository, before, after []string, now time.Time) error {
	added, removed := diffTags(before, after)
	if len(added) == 0 && len(removed) == 0 {
		return nil
	}
	if err := repo.Decrement(ctx, removed); err != nil {
		return err
	}
	if err := repo.Increment(ctx, added, now); err != nil {
		return err
	}
	return repo.Touch(ctx, after, now)
}

// diffTags returns the tags only in after and the tags only in before.
func diffTags(before, after []string) (added, removed []string) {
	inBefore := make(map[string]struct{}, len(before))
	for _, t := range before {
		inBefore[t] = struct{}{}
	}
	inAfter := make(map[string]struct{}, len(after))
	for _, t := range after {
		inAfter[t] = struct{}{}
		if _, ok := inBefore[t]; !ok {
			added = append(added, t)
		}
	}
	for _, t := range before {
		if _, ok := inAfter[t]; !ok {
			removed = append(removed, t)
		}
	}
	return added, removed
}

// DeleteMood removes the entry with id and releases its tag counts. Deleting a
// missing id is not an error.
func (s *Service) DeleteMood(ctx context.Context, id string) error {
	err := s.store.Transaction(ctx, func(tx database.Conn) error {
		repo := moods.NewRepository(tx)
		entry, err := repo.Get(ctx, id)
		if err != nil || entry == nil {
			return err
		}
		if err := repo.Delete(ctx, id); err != nil {
			return err
		}
		return tags.NewRepository(tx).Decrement(ctx, entry.DistinctTags())
	})
	if err != nil {
		return fmt.Errorf("delete mood: %w", err)
	}
	return nil
}

// ClearMoods deletes every entry and every tag counter, leaving settings alone.
func (s *Service) ClearMoods(ctx context.Context) (int64, error) {
	var deleted int64
	err := s.store.Transaction(ctx, func(tx database.Conn) error {
		var err error
		if deleted, err = moods.NewRepository(tx).DeleteAll(ctx); err != nil {
			return err
		}
		return tags.NewRepository(tx).ReplaceAll(ctx, nil)
	})
	if err != nil {
		return 0, fmt.Errorf("clear moods: %w", err)
	}
	s.log.Info().Int64("deleted", deleted).Msg("all moods cleared")
	return deleted, nil
}
