package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/moodsnapshot/internal/journal"
)

type SettingsController struct {
	store SettingsStore
}

func NewSettingsController(store SettingsStore) *SettingsController {
	return &SettingsController{store: store}
}

// GetSettings handles GET /api/settings
// The first call materializes the defaults.
func (sc *SettingsController) GetSettings(c *gin.Context) {
	settings, err := sc.store.GetSettings(c.Request.Context())
	if err != nil {
		respondJournalError(c, err, "get settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateSettings handles PATCH /api/settings
func (sc *SettingsController) UpdateSettings(c *gin.Context) {
	var patch journal.SettingsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	settings, err := sc.store.UpdateSettings(c.Request.Context(), patch)
	if err != nil {
		respondJournalError(c, err, "update settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}
