package http

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/moodsnapshot/internal/journal"
)

func TestAdminController_Purge(t *testing.T) {
	t.Run("runs inline without a queue", func(t *testing.T) {
		router, svc, _ := setupTestRouter(t, nil)
		for _, date := range []string{"2024-02-28", "2024-02-29", "2024-03-01", "2024-03-10"} {
			_, err := svc.SaveMood(context.Background(), journal.MoodDraft{Date: date, Mood: 3, Tags: []string{"old"}})
			require.NoError(t, err)
		}

		w := doRequest(router, http.MethodPost, "/api/admin/purge", `{"days":9}`)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.JSONEq(t, `{"deleted":2,"cutoff":"2024-03-01"}`, w.Body.String())

		remaining, err := svc.GetAllMoods(context.Background())
		require.NoError(t, err)
		assert.Len(t, remaining, 2)
		usage, err := svc.GetTagUsage(context.Background())
		require.NoError(t, err)
		require.Len(t, usage, 1)
		assert.Equal(t, 2, usage[0].Count)
	})

	t.Run("empty body uses the configured retention", func(t *testing.T) {
		router, svc, _ := setupTestRouter(t, nil)
		_, err := svc.SaveMood(context.Background(), journal.MoodDraft{Date: "2023-01-01", Mood: 3})
		require.NoError(t, err)

		w := doRequest(router, http.MethodPost, "/api/admin/purge", "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"deleted":1,"cutoff":"2023-03-11"}`, w.Body.String())
	})

	t.Run("negative days", func(t *testing.T) {
		queue := &fakeQueue{}
		router, _, _ := setupTestRouter(t, queue)

		w := doRequest(router, http.MethodPost, "/api/admin/purge", `{"days":-1}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, queue.purgeDays)
	})

	t.Run("queues when a queue is configured", func(t *testing.T) {
		queue := &fakeQueue{}
		router, _, _ := setupTestRouter(t, queue)

		w := doRequest(router, http.MethodPost, "/api/admin/purge", `{"days":0}`)

		require.Equal(t, http.StatusAccepted, w.Code)
		resp := decode[SuccessResponse](t, w)
		assert.Equal(t, map[string]any{"task_id": "purge-1", "cutoff": "2024-03-10"}, resp.Data)
		assert.Equal(t, []int{0}, queue.purgeDays)
	})
}

func TestAdminController_GetTaskStatus(t *testing.T) {
	t.Run("disabled queue", func(t *testing.T) {
		router, _, _ := setupTestRouter(t, nil)

		w := doRequest(router, http.MethodGet, "/api/admin/tasks/abc", "")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	queue := &fakeQueue{statuses: map[string]backlite.TaskStatus{
		"abc": backlite.TaskStatusSuccess,
	}}
	router, _, _ := setupTestRouter(t, queue)

	t.Run("known task", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/api/admin/tasks/abc", "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":"abc","status":"success"}`, w.Body.String())
	})

	t.Run("unknown task", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/api/admin/tasks/zzz", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("queue error", func(t *testing.T) {
		queue.err = errors.New("db locked")
		defer func() { queue.err = nil }()

		w := doRequest(router, http.MethodGet, "/api/admin/tasks/abc", "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestTaskStatusToString(t *testing.T) {
	tests := []struct {
		status   backlite.TaskStatus
		expected string
	}{
		{backlite.TaskStatusPending, "pending"},
		{backlite.TaskStatusRunning, "running"},
		{backlite.TaskStatusSuccess, "success"},
		{backlite.TaskStatusFailure, "failure"},
		{backlite.TaskStatusNotFound, "not_found"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, taskStatusToString(tt.status))
		})
	}
}
