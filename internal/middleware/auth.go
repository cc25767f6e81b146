package middleware

import (
	"net/http"
	"net/url"

	"pixelforge/internal/config"
	"pixelforge/internal/models"
	"pixelforge/internal/repository"
	"pixelforge/internal/session"

	"github.com/gin-gonic/gin"
)

const (
	// ContextUserKey holds the authenticated *models.User.
	ContextUserKey = "user"
	// ContextTokenKey holds the raw session token, for flash access.
	ContextTokenKey = "session_token"
)

// SessionAuth resolves the session cookie to a user and stores both on the
// context. Requests without a live session are redirected to the login
// page with the originally requested path captured as the "next" target.
func SessionAuth(store *session.Store, userRepo *repository.UserRepository, sc config.SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(sc.CookieName)
		if err != nil {
			redirectToLogin(c)
			return
		}

		userID, err := store.Resolve(c.Request.Context(), token)
		if err != nil {
			// Expired or forged token. Drop the cookie and start over.
			c.SetCookie(sc.CookieName, "", -1, "/", "", sc.SecureCookies, true)
			redirectToLogin(c)
			return
		}

		user, err := userRepo.GetByID(userID)
		if err != nil {
			_ = store.Destroy(c.Request.Context(), token)
			c.SetCookie(sc.CookieName, "", -1, "/", "", sc.SecureCookies, true)
			redirectToLogin(c)
			return
		}

		c.Set(ContextUserKey, user)
		c.Set(ContextTokenKey, token)
		c.Next()
	}
}

func redirectToLogin(c *gin.Context) {
	next := c.Request.URL.RequestURI()
	c.Redirect(http.StatusSeeOther, "/login?next="+url.QueryEscape(next))
	c.Abort()
}

// CurrentUser returns the authenticated user set by SessionAuth.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	val, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := val.(*models.User)
	return user, ok
}

// SessionToken returns the raw session token set by SessionAuth.
func SessionToken(c *gin.Context) (string, bool) {
	val, exists := c.Get(ContextTokenKey)
	if !exists {
		return "", false
	}
	token, ok := val.(string)
	return token, ok
}
