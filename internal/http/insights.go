package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/moodsnapshot/internal/insights"
)

type InsightsController struct {
	provider InsightsProvider
}

func NewInsightsController(provider InsightsProvider) *InsightsController {
	return &InsightsController{provider: provider}
}

// GetInsights handles GET /api/insights?timeframe=7d|30d|all
func (ic *InsightsController) GetInsights(c *gin.Context) {
	tf, err := insights.ParseTimeframe(c.Query("timeframe"))
	if err != nil {
		respondJournalError(c, err, "parse timeframe")
		return
	}

	report, err := ic.provider.Insights(c.Request.Context(), tf)
	if err != nil {
		respondJournalError(c, err, "insights")
		return
	}
	c.JSON(http.StatusOK, report)
}
