package journal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/moodsnapshot/internal/database/settings"
	"github.com/mrlokans/moodsnapshot/internal/entities"
)

func TestService_GetSettings_MaterializesDefaults(t *testing.T) {
	svc, db, clock := setupTestService(t)

	stored, err := settings.NewRepository(db).Get(ctx)
	require.NoError(t, err)
	require.Nil(t, stored, "fresh store should have no settings row")

	s, err := svc.GetSettings(ctx)
	require.NoError(t, err)

	assert.Equal(t, entities.SettingsID, s.ID)
	assert.Equal(t, entities.DefaultMoodConfig(), s.Config())
	assert.False(t, s.ReminderEnabled)
	assert.Nil(t, s.ReminderTime)
	assert.Equal(t, entities.ThemeAuto, s.Theme)
	assert.True(t, s.CreatedAt.Equal(clock.now))

	stored, err = settings.NewRepository(db).Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, stored, "defaults should be persisted on first access")

	clock.Advance(time.Hour)
	again, err := svc.GetSettings(ctx)
	require.NoError(t, err)
	assert.True(t, again.CreatedAt.Equal(s.CreatedAt))
}

func TestService_UpdateSettings(t *testing.T) {
	svc, _, clock := setupTestService(t)

	clock.Advance(time.Hour)
	s, err := svc.UpdateSettings(ctx, SettingsPatch{
		MoodConfig:      &entities.MoodConfig{Labels: map[int]string{3: "Meh"}},
		ReminderEnabled: ptr(true),
		ReminderTime:    ptr("20:30"),
		Theme:           ptr(entities.ThemeDark),
	})
	require.NoError(t, err)

	cfg := s.Config()
	assert.Equal(t, "Meh", cfg.Labels[3])
	assert.Equal(t, "Very Happy", cfg.Labels[5])
	assert.Equal(t, entities.DefaultMoodConfig().Colors, cfg.Colors)
	assert.True(t, s.ReminderEnabled)
	require.NotNil(t, s.ReminderTime)
	assert.Equal(t, "20:30", *s.ReminderTime)
	assert.Equal(t, entities.ThemeDark, s.Theme)
	assert.True(t, s.UpdatedAt.Equal(clock.now))

	got, err := svc.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Meh", got.Config().Labels[3])
	assert.Equal(t, entities.ThemeDark, got.Theme)

	// Leaving fields out keeps them; an empty reminder time clears it.
	s, err = svc.UpdateSettings(ctx, SettingsPatch{ReminderTime: ptr("")})
	require.NoError(t, err)
	assert.Nil(t, s.ReminderTime)
	assert.True(t, s.ReminderEnabled)
	assert.Equal(t, "Meh", s.Config().Labels[3])
}

func TestService_UpdateSettings_Validation(t *testing.T) {
	svc, _, _ := setupTestService(t)

	tests := []struct {
		name  string
		patch SettingsPatch
	}{
		{name: "unknown theme", patch: SettingsPatch{Theme: ptr(entities.Theme("sepia"))}},
		{name: "bad reminder time", patch: SettingsPatch{ReminderTime: ptr("25:00")}},
		{name: "reminder time without colon", patch: SettingsPatch{ReminderTime: ptr("0930")}},
		{name: "mood key out of range", patch: SettingsPatch{MoodConfig: &entities.MoodConfig{Emojis: map[int]string{6: "x"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdateSettings(ctx, tt.patch)
			assert.ErrorIs(t, err, entities.ErrValidation)
		})
	}

	s, err := svc.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, entities.ThemeAuto, s.Theme)
}
