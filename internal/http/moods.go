package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/moodsnapshot/internal/entities"
	"github.com/mrlokans/moodsnapshot/internal/journal"
)

// clearConfirmation must be passed as ?confirm= to wipe all entries.
const clearConfirmation = "DELETE"

type MoodsController struct {
	store MoodStore
}

func NewMoodsController(store MoodStore) *MoodsController {
	return &MoodsController{store: store}
}

type MoodListResponse struct {
	Moods []entities.MoodEntry `json:"moods"`
	Count int                  `json:"count"`
}

func newMoodList(entries []entities.MoodEntry) MoodListResponse {
	if entries == nil {
		entries = []entities.MoodEntry{}
	}
	return MoodListResponse{Moods: entries, Count: len(entries)}
}

// CreateMood handles POST /api/moods
func (mc *MoodsController) CreateMood(c *gin.Context) {
	var draft journal.MoodDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	entry, err := mc.store.SaveMood(c.Request.Context(), draft)
	if err != nil {
		respondJournalError(c, err, "save mood")
		return
	}
	respondCreated(c, entry)
}

// ListMoods handles GET /api/moods
// With start and end it returns the inclusive date range, otherwise every entry.
func (mc *MoodsController) ListMoods(c *gin.Context) {
	start, end := c.Query("start"), c.Query("end")
	if (start == "") != (end == "") {
		respondBadRequest(c, "start and end must be given together")
		return
	}

	var (
		entries []entities.MoodEntry
		err     error
	)
	if start == "" {
		entries, err = mc.store.GetAllMoods(c.Request.Context())
	} else {
		entries, err = mc.store.GetMoodsInRange(c.Request.Context(), start, end)
	}
	if err != nil {
		respondJournalError(c, err, "list moods")
		return
	}
	c.JSON(http.StatusOK, newMoodList(entries))
}

// GetToday handles GET /api/moods/today
func (mc *MoodsController) GetToday(c *gin.Context) {
	mc.respondByDate(c, mc.store.Today())
}

// GetByDate handles GET /api/moods/date/:date
func (mc *MoodsController) GetByDate(c *gin.Context) {
	mc.respondByDate(c, c.Param("date"))
}

func (mc *MoodsController) respondByDate(c *gin.Context, date string) {
	entry, err := mc.store.GetMoodByDate(c.Request.Context(), date)
	if err != nil {
		respondJournalError(c, err, "get mood by date")
		return
	}
	if entry == nil {
		respondNotFound(c, "mood")
		return
	}
	c.JSON(http.StatusOK, entry)
}

// GetMood handles GET /api/moods/:id
func (mc *MoodsController) GetMood(c *gin.Context) {
	entry, err := mc.store.GetMood(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondJournalError(c, err, "get mood")
		return
	}
	if entry == nil {
		respondNotFound(c, "mood")
		return
	}
	c.JSON(http.StatusOK, entry)
}

// UpdateMood handles PATCH /api/moods/:id
func (mc *MoodsController) UpdateMood(c *gin.Context) {
	var patch journal.MoodPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	entry, err := mc.store.UpdateMood(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondJournalError(c, err, "update mood")
		return
	}
	c.JSON(http.StatusOK, entry)
}

// DeleteMood handles DELETE /api/moods/:id
// Deleting an unknown id succeeds.
func (mc *MoodsController) DeleteMood(c *gin.Context) {
	if err := mc.store.DeleteMood(c.Request.Context(), c.Param("id")); err != nil {
		respondJournalError(c, err, "delete mood")
		return
	}
	respondSuccess(c, "mood deleted")
}

// ClearMoods handles DELETE /api/moods?confirm=DELETE
func (mc *MoodsController) ClearMoods(c *gin.Context) {
	if c.Query("confirm") != clearConfirmation {
		respondBadRequest(c, "pass confirm="+clearConfirmation+" to remove every mood entry")
		return
	}

	deleted, err := mc.store.ClearMoods(c.Request.Context())
	if err != nil {
		respondJournalError(c, err, "clear moods")
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
