package middleware

import (
	"net/http"

	"pixelforge/internal/models"
	"pixelforge/internal/session"

	"github.com/gin-gonic/gin"
)

// RequireAdmin gates a route group on the admin role. Denied users are
// bounced to the dashboard with a flash notice; the response never
// confirms anything about the resource they were after.
func RequireAdmin(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok || user.Role != models.RoleAdmin {
			if token, ok := SessionToken(c); ok {
				_ = store.Flash(c.Request.Context(), token, "You do not have permission to do that.")
			}
			c.Redirect(http.StatusSeeOther, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}
