package journal

import (
	"context"
	"fmt"

	"gorm.io/datatypes"

	"github.com/mrlokans/moodsnapshot/internal/database"
	"github.com/mrlokans/moodsnapshot/internal/database/settings"
	"github.com/mrlokans/moodsnapshot/internal/entities"
)

// SettingsPatch lists the settings fields to change. MoodConfig is merged per
// mood value, so a patch may carry a single label. An empty ReminderTime clears it.
type SettingsPatch struct {
	MoodConfig      *entities.MoodConfig `json:"moodConfig,omitempty"`
	ReminderEnabled *bool                `json:"reminderEnabled,omitempty"`
	ReminderTime    *string              `json:"reminderTime,omitempty"`
	Theme           *entities.Theme      `json:"theme,omitempty"`
}

func (p SettingsPatch) validate() error {
	if p.Theme != nil && !p.Theme.IsValid() {
		return entities.NewValidationError("theme", fmt.Sprintf("%q is not one of light, dark, auto", *p.Theme))
	}
	if p.ReminderTime != nil && *p.ReminderTime != "" && !entities.IsValidReminderTime(*p.ReminderTime) {
		return entities.NewValidationError("reminderTime", fmt.Sprintf("%q is not a HH:MM time", *p.ReminderTime))
	}
	if p.MoodConfig != nil {
		for field, m := range map[string]map[int]string{
			"moodConfig.labels": p.MoodConfig.Labels,
			"moodConfig.colors": p.MoodConfig.Colors,
			"moodConfig.emojis": p.MoodConfig.Emojis,
		} {
			for k := range m {
				if !entities.IsValidMood(k) {
					return entities.NewValidationError(field, fmt.Sprintf("key %d is not a mood value", k))
				}
			}
		}
	}
	return nil
}

// GetSettings returns the settings, creating and persisting the defaults the
// first time it is called on a fresh store.
func (s *Service) GetSettings(ctx context.Context) (*entities.Settings, error) {
	var out *entities.Settings
	err := s.store.Transaction(ctx, func(tx database.Conn) error {
		var err error
		out, err = s.loadSettings(ctx, settings.NewRepository(tx))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return out, nil
}

// UpdateSettings merges patch into the current settings.
func (s *Service) UpdateSettings(ctx context.Context, patch SettingsPatch) (*entities.Settings, error) {
	if err := patch.validate(); err != nil {
		return nil, err
	}

	var out *entities.Settings
	err := s.store.Transaction(ctx, func(tx database.Conn) error {
		repo := settings.NewRepository(tx)
		current, err := s.loadSettings(ctx, repo)
		if err != nil {
			return err
		}

		if patch.MoodConfig != nil {
			current.MoodConfig = datatypes.NewJSONType(current.Config().Merge(*patch.MoodConfig))
		}
		if patch.ReminderEnabled != nil {
			current.ReminderEnabled = *patch.ReminderEnabled
		}
		if patch.ReminderTime != nil {
			if *patch.ReminderTime == "" {
				current.ReminderTime = nil
			} else {
				t := *patch.ReminderTime
				current.ReminderTime = &t
			}
		}
		if patch.Theme != nil {
			current.Theme = *patch.Theme
		}
		current.UpdatedAt = s.stamp()

		if err := repo.Put(ctx, current); err != nil {
			return err
		}
		out = current
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update settings: %w", err)
	}
	return out, nil
}

func (s *Service) loadSettings(ctx context.Context, repo *settings.Repository) (*entities.Settings, error) {
	current, err := repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if current == nil {
		def := entities.DefaultSettings(s.stamp())
		if err := repo.Put(ctx, &def); err != nil {
			return nil, err
		}
		s.log.Info().Msg("default settings created")
		return &def, nil
	}
	current.MoodConfig = datatypes.NewJSONType(current.Config())
	if !current.Theme.IsValid() {
		current.Theme = entities.ThemeAuto
	}
	return current, nil
}
