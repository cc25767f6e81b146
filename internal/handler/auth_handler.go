package handler

import (
	"net/http"

	"pixelforge/internal/config"
	"pixelforge/internal/dto"
	"pixelforge/internal/middleware"
	"pixelforge/internal/service"
	"pixelforge/internal/session"
	"pixelforge/internal/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves login, logout and account settings.
type AuthHandler struct {
	authService *service.AuthService
	sessions    *session.Store
	cfg         *config.Config
}

// NewAuthHandler creates the auth handler.
func NewAuthHandler(authService *service.AuthService, sessions *session.Store, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
		cfg:         cfg,
	}
}

// ShowLogin renders the sign-in view-model.
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{
		"title": "Sign In",
		"next":  c.Query("next"),
	})
}

// Login verifies credentials and opens a session. Both failure paths
// answer with the same message so usernames cannot be probed.
func (h *AuthHandler) Login(c *gin.Context) {
	var form dto.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		utils.BadRequest(c, "username and password are required")
		return
	}

	user, err := h.authService.Login(form.Username, form.Password)
	if err != nil {
		utils.Unauthorized(c, service.ErrInvalidCredentials.Error())
		return
	}

	token, err := h.sessions.Create(c.Request.Context(), user.ID)
	if err != nil {
		utils.InternalError(c, "could not open a session")
		return
	}

	maxAge := int(h.cfg.Session.GetTTL().Seconds())
	c.SetCookie(h.cfg.Session.CookieName, token, maxAge, "/", "", h.cfg.Session.SecureCookies, true)

	// Return to the page that sent the user here, but only ever to an
	// internal path.
	next := form.Next
	if next == "" {
		next = c.Query("next")
	}
	if !session.SafeNext(next) {
		next = "/"
	}
	c.Redirect(http.StatusSeeOther, next)
}

// Logout tears the session down.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, ok := middleware.SessionToken(c); ok {
		_ = h.sessions.Destroy(c.Request.Context(), token)
	}
	c.SetCookie(h.cfg.Session.CookieName, "", -1, "/", "", h.cfg.Session.SecureCookies, true)
	c.Redirect(http.StatusSeeOther, "/login")
}

// ShowAccountSettings renders the account settings view-model.
func (h *AuthHandler) ShowAccountSettings(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	utils.SuccessResponse(c, gin.H{
		"title":   "Account Settings",
		"user":    dto.UserInfo{ID: user.ID, Username: user.Username, Email: user.Email, Role: string(user.Role)},
		"notices": popFlashes(c, h.sessions),
	})
}

// UpdatePassword changes the current user's password.
func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var form dto.UpdatePasswordForm
	if err := c.ShouldBind(&form); err != nil {
		utils.BadRequest(c, "new password must be at least 8 characters with a digit, an uppercase letter, a lowercase letter and a special character, entered twice")
		return
	}

	if err := h.authService.ChangePassword(user.ID, form.OldPassword, form.NewPassword); err != nil {
		fail(c, h.sessions, err)
		return
	}

	flash(c, h.sessions, "Your password has been updated.")
	c.Redirect(http.StatusSeeOther, "/account_settings")
}
