package handlers

import (
	"net/http"

	"postlike/internal/services"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	analytics *services.AnalyticsService
}

func NewAnalyticsHandler(analytics *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// CountLikes - GET /api/analytics?date_from=YYYY-MM-DD&date_to=YYYY-MM-DD
func (h *AnalyticsHandler) CountLikes(c *gin.Context) {
	count, err := h.analytics.CountLikes(c.Request.Context(), c.Query("date_from"), c.Query("date_to"))
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"likes": count})
}
