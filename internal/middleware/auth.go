package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"postlike/internal/services"

	"github.com/gin-gonic/gin"
)

const IdentityKey = "identity"

// AuthRequired verifies the bearer token and stores the caller's identity
// in the request context. It never touches the store.
func AuthRequired(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"Message": "Missing Authorization Header"})
			return
		}

		identity, err := tokens.Parse(strings.TrimSpace(raw))
		if err != nil {
			slog.Default().With("module", "middleware").DebugContext(c.Request.Context(), "token rejected", "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"Message": "Invalid or expired token"})
			return
		}

		c.Set(IdentityKey, identity)
		c.Next()
	}
}

// CurrentIdentity returns the identity set by AuthRequired.
func CurrentIdentity(c *gin.Context) (services.Identity, bool) {
	v, exists := c.Get(IdentityKey)
	if !exists {
		return services.Identity{}, false
	}
	identity, ok := v.(services.Identity)
	return identity, ok
}

// TrackActivity stamps the caller's last_request once the handler is done.
// Failures are logged and never change the response.
func TrackActivity(activity *services.ActivityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		identity, ok := CurrentIdentity(c)
		if !ok {
			return
		}
		if err := activity.Touch(c.Request.Context(), identity.UserID); err != nil {
			slog.Default().With("module", "middleware").ErrorContext(c.Request.Context(), "update last_request failed",
				"user_id", identity.UserID,
				"error", err,
			)
		}
	}
}
