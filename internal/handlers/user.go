package handlers

import (
	"net/http"

	"postlike/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	activity *services.ActivityService
}

func NewUserHandler(activity *services.ActivityService) *UserHandler {
	return &UserHandler{activity: activity}
}

// Activity - GET /api/user-activity
func (h *UserHandler) Activity(c *gin.Context) {
	id, ok := currentIdentity(c)
	if !ok {
		return
	}

	activity, err := h.activity.UserActivity(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, activity)
}
