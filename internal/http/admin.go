package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/moodsnapshot/internal/entities"
)

// AdminController exposes retention and background task endpoints.
type AdminController struct {
	store       RetentionStore
	queue       TaskQueue
	defaultDays int
}

func NewAdminController(store RetentionStore, queue TaskQueue, defaultDays int) *AdminController {
	return &AdminController{store: store, queue: queue, defaultDays: defaultDays}
}

// PurgeRequest is the request body for POST /api/admin/purge.
type PurgeRequest struct {
	Days *int `json:"days"`
}

// Purge handles POST /api/admin/purge
// Removes entries dated before today minus days. An empty body uses the
// configured retention period.
func (ac *AdminController) Purge(c *gin.Context) {
	var req PurgeRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "invalid request body")
			return
		}
	}
	days := ac.defaultDays
	if req.Days != nil {
		days = *req.Days
	}
	if days < 0 {
		respondJournalError(c, entities.NewValidationError("days", "must not be negative"), "purge")
		return
	}
	cutoff := ac.store.PurgeCutoff(days)

	if ac.queue != nil {
		taskID, err := ac.queue.EnqueuePurge(c.Request.Context(), days)
		if err != nil {
			respondInternalError(c, err, "enqueue purge")
			return
		}
		respondAccepted(c, "purge queued", gin.H{"task_id": taskID, "cutoff": cutoff})
		return
	}

	deleted, err := ac.store.PurgeOlderThan(c.Request.Context(), days)
	if err != nil {
		respondJournalError(c, err, "purge")
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted, "cutoff": cutoff})
}

// GetTaskStatus handles GET /api/admin/tasks/:id
func (ac *AdminController) GetTaskStatus(c *gin.Context) {
	if ac.queue == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "task queue is disabled"})
		return
	}

	taskID := c.Param("id")
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status, err := ac.queue.Status(ctx, taskID)
	if err != nil {
		respondInternalError(c, err, "task status")
		return
	}
	if status == backlite.TaskStatusNotFound {
		respondNotFound(c, "task")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     taskID,
		"status": taskStatusToString(status),
	})
}

func taskStatusToString(status backlite.TaskStatus) string {
	switch status {
	case backlite.TaskStatusPending:
		return "pending"
	case backlite.TaskStatusRunning:
		return "running"
	case backlite.TaskStatusSuccess:
		return "success"
	case backlite.TaskStatusFailure:
		return "failure"
	case backlite.TaskStatusNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}
