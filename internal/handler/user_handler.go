package handler

import (
	"net/http"
	"strconv"

	"pixelforge/internal/dto"
	"pixelforge/internal/middleware"
	"pixelforge/internal/models"
	"pixelforge/internal/service"
	"pixelforge/internal/session"
	"pixelforge/internal/utils"

	"github.com/gin-gonic/gin"
)

// UserHandler serves the admin user-management routes.
type UserHandler struct {
	userService *service.UserService
	sessions    *session.Store
}

// NewUserHandler creates the user handler.
func NewUserHandler(userService *service.UserService, sessions *session.Store) *UserHandler {
	return &UserHandler{
		userService: userService,
		sessions:    sessions,
	}
}

// ShowRegister renders the new-user form view-model.
func (h *UserHandler) ShowRegister(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{
		"title": "Register New User",
		"roles": models.Roles(),
	})
}

// Register creates a new user account.
func (h *UserHandler) Register(c *gin.Context) {
	actor, _ := middleware.CurrentUser(c)

	var form dto.RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	user, err := h.userService.Register(actor, &form)
	if err != nil {
		fail(c, h.sessions, err)
		return
	}

	flash(c, h.sessions, "User "+user.Username+" has been registered as "+string(user.Role)+".")
	c.Redirect(http.StatusSeeOther, "/users")
}

// ListUsers renders the user-management view-model.
func (h *UserHandler) ListUsers(c *gin.Context) {
	actor, _ := middleware.CurrentUser(c)

	users, err := h.userService.List(actor)
	if err != nil {
		fail(c, h.sessions, err)
		return
	}

	infos := make([]dto.UserInfo, len(users))
	for i, u := range users {
		infos[i] = dto.UserInfo{ID: u.ID, Username: u.Username, Email: u.Email, Role: string(u.Role)}
	}
	utils.SuccessResponse(c, gin.H{
		"title":   "Manage Users",
		"users":   infos,
		"notices": popFlashes(c, h.sessions),
	})
}

// ShowEditRole renders the role-change form view-model.
func (h *UserHandler) ShowEditRole(c *gin.Context) {
	actor, _ := middleware.CurrentUser(c)

	target, err := h.userService.Get(actor, paramID(c, "id"))
	if err != nil {
		fail(c, h.sessions, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"title": "Edit Role for " + target.Username,
		"user":  dto.UserInfo{ID: target.ID, Username: target.Username, Email: target.Email, Role: string(target.Role)},
		"roles": models.Roles(),
	})
}

// EditRole assigns a new role to a user.
func (h *UserHandler) EditRole(c *gin.Context) {
	actor, _ := middleware.CurrentUser(c)

	var form dto.EditRoleForm
	if err := c.ShouldBind(&form); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if err := h.userService.ChangeRole(actor, paramID(c, "id"), models.Role(form.Role)); err != nil {
		fail(c, h.sessions, err)
		return
	}

	flash(c, h.sessions, "Role updated.")
	c.Redirect(http.StatusSeeOther, "/users")
}

// DeleteUser removes a user and everything hanging off them.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	actor, _ := middleware.CurrentUser(c)

	if err := h.userService.Delete(actor, paramID(c, "id")); err != nil {
		fail(c, h.sessions, err)
		return
	}

	flash(c, h.sessions, "User and associated data deleted.")
	c.Redirect(http.StatusSeeOther, "/users")
}

const auditPageSize = 100

// ShowAuditLog renders the recorded admin-sensitive mutations, newest
// first.
func (h *UserHandler) ShowAuditLog(c *gin.Context) {
	actor, _ := middleware.CurrentUser(c)

	entries, err := h.userService.AuditTrail(actor, auditPageSize)
	if err != nil {
		fail(c, h.sessions, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"title":   "Audit Log",
		"entries": entries,
	})
}

func paramID(c *gin.Context, name string) uint {
	id, _ := strconv.ParseUint(c.Param(name), 10, 32)
	return uint(id)
}
