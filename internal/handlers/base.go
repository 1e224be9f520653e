package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"postlike/internal/middleware"
	"postlike/internal/models"
	"postlike/internal/services"

	"github.com/gin-gonic/gin"
)

// RespondError maps an error kind onto a status and writes the
// {"Message": ...} envelope. Unknown errors become an opaque 500.
func RespondError(c *gin.Context, err error) {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		slog.Default().With("module", "handlers").ErrorContext(c.Request.Context(), "request failed",
			"path", c.FullPath(),
			"request_id", c.GetString(middleware.RequestIDKey),
			"error", err,
		)
		message = "internal server error"
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, gin.H{"Message": message})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, models.ErrUnauthorized):
		return http.StatusUnauthorized
	// Missing posts are a bad request for compatibility with existing clients.
	case errors.Is(err, models.ErrValidation),
		errors.Is(err, models.ErrNotFound),
		errors.Is(err, models.ErrInvalidCredentials):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// bindJSON decodes the request body, reporting malformed JSON as a
// validation error.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, fmt.Errorf("%w: %v", models.ErrValidation, err))
		return false
	}
	return true
}

// currentIdentity is only missing when a route was registered outside the
// authenticated group.
func currentIdentity(c *gin.Context) (services.Identity, bool) {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		RespondError(c, models.ErrUnauthorized)
	}
	return id, ok
}
