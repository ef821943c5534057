package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/moodsnapshot/internal/entities"
)

type TagsController struct {
	store TagStore
	queue TaskQueue
}

func NewTagsController(store TagStore, queue TaskQueue) *TagsController {
	return &TagsController{store: store, queue: queue}
}

// GetFrequentTags handles GET /api/tags/frequent?limit=N
// A missing or non-positive limit uses the journal default.
func (tc *TagsController) GetFrequentTags(c *gin.Context) {
	limit, ok := parseOptionalInt(c, "limit", 0)
	if !ok {
		return
	}

	tags, err := tc.store.GetFrequentTags(c.Request.Context(), limit)
	if err != nil {
		respondJournalError(c, err, "frequent tags")
		return
	}
	if tags == nil {
		tags = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

// GetTagUsage handles GET /api/tags
func (tc *TagsController) GetTagUsage(c *gin.Context) {
	usage, err := tc.store.GetTagUsage(c.Request.Context())
	if err != nil {
		respondJournalError(c, err, "tag usage")
		return
	}
	if usage == nil {
		usage = []entities.TagUsage{}
	}
	c.JSON(http.StatusOK, gin.H{"tags": usage})
}

// RebuildTagUsage handles POST /api/admin/tags/rebuild
// Queued when a task queue is configured, otherwise rebuilt inline.
func (tc *TagsController) RebuildTagUsage(c *gin.Context) {
	if tc.queue != nil {
		taskID, err := tc.queue.EnqueueRebuildTagUsage(c.Request.Context())
		if err != nil {
			respondInternalError(c, err, "enqueue tag rebuild")
			return
		}
		respondAccepted(c, "tag usage rebuild queued", gin.H{"task_id": taskID})
		return
	}

	count, err := tc.store.RebuildTagUsage(c.Request.Context())
	if err != nil {
		respondJournalError(c, err, "rebuild tag usage")
		return
	}
	c.JSON(http.StatusOK, gin.H{"tags": count})
}
