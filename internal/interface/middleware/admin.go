package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	repo "github.com/rewearhq/rewear-backend/internal/domain/repository"
	"github.com/rewearhq/rewear-backend/pkg/response"
)

// RequireAdmin allows only administrator-role callers through. The role is
// re-read from the identity store, not trusted from token claims, so a
// demotion takes effect immediately.
func RequireAdmin(users repo.UserRepository, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString(CtxUserIDKey)
		if uid == "" {
			response.AbortError(c, http.StatusUnauthorized, "missing access token", nil)
			return
		}
		u, err := users.GetByID(c.Request.Context(), uid)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "unknown user", nil)
			return
		}
		if !u.IsAdministrator() {
			logger.WithField("user_id", uid).Warn("non-admin attempted admin operation")
			response.AbortError(c, http.StatusForbidden, "administrator role required", nil)
			return
		}
		c.Next()
	}
}
