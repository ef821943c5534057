package journal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/moodsnapshot/internal/database/tags"
	"github.com/mrlokans/moodsnapshot/internal/entities"
)

func TestNormalizeTags(t *testing.T) {
	assert.Equal(t, []string{"work", "work", "sleep"}, NormalizeTags([]string{"  work ", "", "work", "   ", "sleep"}))
	assert.Equal(t, []string{}, NormalizeTags(nil))
}

func TestService_SaveMood_RoundTrip(t *testing.T) {
	svc, _, clock := setupTestService(t)

	saved, err := svc.SaveMood(ctx, MoodDraft{
		Date:  "2024-03-10",
		Mood:  4,
		Tags:  []string{" work", "", "work", "gym "},
		Notes: "  long day ",
	})
	require.NoError(t, err)
	assert.Equal(t, "mood-0001", saved.ID)
	assert.True(t, saved.CreatedAt.Equal(clock.now))
	assert.True(t, saved.UpdatedAt.Equal(clock.now))

	got, err := svc.GetMoodByDate(ctx, "2024-03-10")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, 4, got.Mood)
	assert.Equal(t, []string{"work", "work", "gym"}, []string(got.Tags))
	assert.Equal(t, "long day", got.Notes)
	assert.True(t, got.CreatedAt.Equal(clock.now))
}

func TestService_SaveMood_Validation(t *testing.T) {
	svc, _, _ := setupTestService(t)

	tests := []struct {
		name  string
		draft MoodDraft
	}{
		{name: "mood too low", draft: MoodDraft{Date: "2024-03-10", Mood: 0}},
		{name: "mood too high", draft: MoodDraft{Date: "2024-03-10", Mood: 6}},
		{name: "missing date", draft: MoodDraft{Mood: 3}},
		{name: "not a calendar day", draft: MoodDraft{Date: "2024-02-30", Mood: 3}},
		{name: "wrong layout", draft: MoodDraft{Date: "10/03/2024", Mood: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SaveMood(ctx, tt.draft)
			require.Error(t, err)
			assert.ErrorIs(t, err, entities.ErrValidation)
			assert.Equal(t, entities.CodeValidation, entities.ErrorCode(err))
		})
	}

	all, err := svc.GetAllMoods(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestService_SaveMood_CountsEachTagOncePerEntry(t *testing.T) {
	svc, _, clock := setupTestService(t)

	_, err := svc.SaveMood(ctx, MoodDraft{Date: "2024-03-09", Mood: 3, Tags: []string{"work", "work"}})
	require.NoError(t, err)
	clock.Advance(time.Hour)
	_, err = svc.SaveMood(ctx, MoodDraft{Date: "2024-03-10", Mood: 3, Tags: []string{"work", "gym"}})
	require.NoError(t, err)

	usage, err := svc.GetTagUsage(ctx)
	require.NoError(t, err)
	require.Len(t, usage, 2)
	assert.Equal(t, "work", usage[0].Tag)
	assert.Equal(t, 2, usage[0].Count)
	assert.True(t, usage[0].LastUsed.Equal(clock.now))
	assert.Equal(t, "gym", usage[1].Tag)
	assert.Equal(t, 1, usage[1].Count)
}

func TestService_GetMoodByDate_LastWriteWins(t *testing.T) {
	svc, _, clock := setupTestService(t)

	_, err := svc.SaveMood(ctx, MoodDraft{Date: "2024-03-10", Mood: 2})
	require.NoError(t, err)
	clock.Advance(time.Minute)
	second, err := svc.SaveMood(ctx, MoodDraft{Date: "2024-03-10", Mood: 5})
	require.NoError(t, err)

	got, err := svc.GetMoodByDate(ctx, "2024-03-10")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, second.ID, got.ID)
	assert.Equal(t, 5, got.Mood)

	// Both physical entries remain.
	all, err := svc.GetAllMoods(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestService_GetMoodByDate_TieBrokenByID(t *testing.T) {
	ids := []string{"b-entry", "a-entry"}
	svc, _, _ := setupTestService(t, WithIDGenerator(func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}))

	_, err := svc.SaveMood(ctx, MoodDraft{Date: "2024-03-10", Mood: 2})
	require.NoError(t, err)
	_, err = svc.SaveMood(ctx, MoodDraft{Date: "2024-03-10", Mood: 4})
	require.NoError(t, err)

	got, err := svc.GetMoodByDate(ctx, "2024-03-10")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "b-entry", got.ID)
}

func TestService_GetMoodByDate_Absent(t *testing.T) {
	svc, _, _ := setupTestService(t)

	got, err := svc.GetMoodByDate(ctx, "2024-03-10")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestService_GetMoodsInRange_Boundaries(t *testing.T) {
	svc, _, _ := setupTestService(t)

	for _, date := range []string{"2024-02-29", "2024-03-01", "2024-03-05", "2024-03-07", "2024-03-08"} {
		_, err := svc.SaveMood(ctx, MoodDraft{Date: date, Mood: 3})
		require.NoError(t, err)
	}

	entries, err := svc.GetMoodsInRange(ctx, "2024-03-01", "2024-03-07")
	require.NoError(t, err)

	var dates []string
	for _, e := range entries {
		dates = append(dates, e.Date)
	}
	assert.ElementsMatch(t, []string{"2024-03-01", "2024-03-05", "2024-03-07"}, dates)

	entries, err = svc.GetMoodsInRange(ctx, "2024-03-07", "2024-03-01")
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = svc.GetMoodsInRange(ctx, "yesterday", "2024-03-01")
	assert.ErrorIs(t, err, entities.ErrValidation)
}

func TestService_UpdateMood(t *testing.T) {
	svc, _, clock := setupTestService(t)

	saved, err := svc.SaveMood(ctx, MoodDraft{Date: "2024-03-10", Mood: 2, Tags: []string{"work", "rain"}})
	require.NoError(t, err)
	created := clock.now

	clock.Advance(2 * time.Hour)
	updated, err := svc.UpdateMood(ctx, saved.ID, MoodPatch{
		Mood: ptr(4),
		Tags: &[]string{"work", " gym "},
	})
	require.NoError(t, err)

	assert.Equal(t, saved.ID, updated.ID)
	assert.Equal(t, "2024-03-10", updated.Date)
	assert.Equal(t, 4, updated.Mood)
	assert.Equal(t, []string{"work", "gym"}, []string(updated.Tags))
	assert.True(t, updated.CreatedAt.Equal(created))
	assert.True(t, updated.UpdatedAt.Equal(clock.now))

	stored, err := svc.GetMood(ctx, saved.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, 4, stored.Mood)
	assert.True(t, stored.CreatedAt.Equal(created))

	usage, err := svc.GetTagUsage(ctx)
	require.NoError(t, err)
	counts := map[string]int{}
	for _, u := range usage {
		counts[u.Tag] = u.Count
		assert.True(t, u.LastUsed.Equal(clock.now), "tag %s should be stamped by the update", u.Tag)
	}
	assert.Equal(t, map[string]int{"work": 1, "gym": 1}, counts)
}

func TestService_UpdateMood_WithoutTagsKeepsCounters(t *testing.T) {
	svc, _, clock := setupTestService(t)

	saved, err := svc.SaveMood(ctx, MoodDraft{Date: "2024-03-10", Mood: 2, Tags: []string{"work"}})
	require.NoError(t, err)
	stamped := clock.now

	clock.Advance(time.Hour)
	_, err = svc.UpdateMood(ctx, saved.ID, MoodPatch{Notes: ptr("better by evening")})
	require.NoError(t, err)

	usage, err := svc.GetTagUsage(ctx)
	require.NoError(t, err)
	require.Len(t, usage, 1)
	assert.Equal(t, 1, usage[0].Count)
	assert.True(t, usage[0].LastUsed.Equal(stamped))
}

func TestService_UpdateMood_NotFound(t *testing.T) {
	svc, _, _ := setupTestService(t)

	_, err := svc.UpdateMood(ctx, "missing", MoodPatch{Mood: ptr(3)})

	require.Error(t, err)
	assert.ErrorIs(t, err, entities.ErrNotFound)
	assert.Equal(t, entities.CodeNotFound, entities.ErrorCode(err))
}

func TestService_UpdateMood_Validation(t *testing.T) {
	svc, _, _ := setupTestService(t)

	saved, err := svc.SaveMood(ctx, MoodDraft{Date: "2024-03-10", Mood: 2})
	require.NoError(t, err)

	_, err = svc.UpdateMood(ctx, saved.ID, MoodPatch{Mood: ptr(9)})
	assert.ErrorIs(t, err, entities.ErrValidation)

	_, err = svc.UpdateMood(ctx, saved.ID, MoodPatch{Date: ptr("2024-13-01")})
	assert.ErrorIs(t, err, entities.ErrValidation)
}

func TestService_DeleteMood(t *testing.T) {
	svc, db, _ := setupTestService(t)

	first, err := svc.SaveMood(ctx, MoodDraft{Date: "2024-03-09", Mood: 3, Tags: []string{"work", "gym"}})
	require.NoError(t, err)
	_, err = svc.SaveMood(ctx, MoodDraft{Date: "2024-03-10", Mood: 3, Tags: []string{"work"}})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteMood(ctx, first.ID))

	got, err := svc.GetMood(ctx, first.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	tagRepo := tags.NewRepository(db)
	work, err := tagRepo.Get(ctx, "work")
	require.NoError(t, err)
	require.NotNil(t, work)
	assert.Equal(t, 1, work.Count)

	gym, err := tagRepo.Get(ctx, "gym")
	require.NoError(t, err)
	assert.Nil(t, gym, "counter should be removed when it reaches zero")

	// Deleting again is not an error.
	assert.NoError(t, svc.DeleteMood(ctx, first.ID))
	assert.NoError(t, svc.DeleteMood(ctx, "never-existed"))
}

func TestService_ClearMoods(t *testing.T) {
	svc, _, _ := setupTestService(t)

	for _, date := range []string{"2024-03-08", "2024-03-09"} {
		_, err := svc.SaveMood(ctx, MoodDraft{Date: date, Mood: 3, Tags: []string{"work"}})
		require.NoError(t, err)
	}
	_, err := svc.UpdateSettings(ctx, SettingsPatch{Theme: ptr(entities.ThemeDark)})
	require.NoError(t, err)

	deleted, err := svc.ClearMoods(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, deleted)

	all, err := svc.GetAllMoods(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	frequent, err := svc.GetFrequentTags(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, frequent)

	s, err := svc.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, entities.ThemeDark, s.Theme)
}

func TestService_ClosedStoreIsUninitialized(t *testing.T) {
	svc, db, _ := setupTestService(t)
	require.NoError(t, db.Close())

	_, err := svc.SaveMood(ctx, MoodDraft{Date: "2024-03-10", Mood: 3})
	assert.ErrorIs(t, err, entities.ErrUninitialized)
	assert.Equal(t, entities.CodeUninitialized, entities.ErrorCode(err))

	_, err = svc.GetAllMoods(ctx)
	assert.ErrorIs(t, err, entities.ErrUninitialized)

	_, err = svc.GetSettings(ctx)
	assert.ErrorIs(t, err, entities.ErrUninitialized)
}
