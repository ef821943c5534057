package http

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/moodsnapshot/internal/entities"
	"github.com/mrlokans/moodsnapshot/internal/insights"
	"github.com/mrlokans/moodsnapshot/internal/journal"
)

func TestInsightsController_GetInsights(t *testing.T) {
	router, svc, _ := setupTestRouter(t, nil)
	for _, d := range []journal.MoodDraft{
		{Date: "2024-01-15", Mood: 1},
		{Date: "2024-03-08", Mood: 3, Tags: []string{"work"}},
		{Date: "2024-03-09", Mood: 4, Tags: []string{"work"}},
		{Date: "2024-03-10", Mood: 5},
	} {
		_, err := svc.SaveMood(context.Background(), d)
		require.NoError(t, err)
	}

	t.Run("defaults to the last 30 days", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/api/insights", "")

		require.Equal(t, http.StatusOK, w.Code)
		report := decode[insights.Report](t, w)
		assert.Equal(t, insights.TimeframeMonth, report.Timeframe)
		assert.Equal(t, "2024-02-09", report.Start)
		assert.Equal(t, "2024-03-10", report.End)
		assert.Equal(t, 3, report.Summary.Count)
		assert.InDelta(t, 4.0, report.Summary.Average, 1e-9)
		assert.Equal(t, 3, report.Streak)
		require.NotEmpty(t, report.TopTags)
		assert.Equal(t, "work", report.TopTags[0].Tag)
	})

	t.Run("all time", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/api/insights?timeframe=all", "")

		require.Equal(t, http.StatusOK, w.Code)
		report := decode[insights.Report](t, w)
		assert.Equal(t, 4, report.Summary.Count)
		assert.Empty(t, report.Start)
	})

	t.Run("unknown timeframe", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/api/insights?timeframe=year", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, entities.CodeValidation, decode[ErrorResponse](t, w).Code)
	})
}
