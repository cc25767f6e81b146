package handler

import (
	"errors"
	"net/http"

	"pixelforge/internal/apperr"
	"pixelforge/internal/middleware"
	"pixelforge/internal/session"
	"pixelforge/internal/utils"

	"github.com/gin-gonic/gin"
)

// fail translates the error taxonomy into HTTP responses: validation and
// conflict errors answer the form directly, guard and authorization
// failures bounce the user to a safe page with a flash notice, the rest
// map to their status codes.
func fail(c *gin.Context, store *session.Store, err error) {
	var (
		verr *apperr.ValidationError
		cerr *apperr.ConflictError
		gerr *apperr.GuardError
		aerr *apperr.AuthorizationError
		nerr *apperr.NotFoundError
		perr *apperr.PayloadTooLargeError
	)

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    http.StatusBadRequest,
			"message": "validation failed",
			"errors":  verr.Fields,
		})
	case errors.As(err, &cerr):
		utils.Conflict(c, cerr.Error())
	case errors.As(err, &gerr):
		flash(c, store, gerr.Msg)
		c.Redirect(http.StatusSeeOther, "/users")
	case errors.As(err, &aerr):
		flash(c, store, "You do not have permission to do that.")
		c.Redirect(http.StatusSeeOther, "/")
	case errors.As(err, &nerr):
		utils.NotFound(c, nerr.Error())
	case errors.As(err, &perr):
		utils.PayloadTooLarge(c, perr.Error())
	default:
		utils.InternalError(c, "something went wrong")
	}
}

// flash queues a one-shot notice on the current session, if any.
func flash(c *gin.Context, store *session.Store, message string) {
	token, ok := middleware.SessionToken(c)
	if !ok {
		return
	}
	_ = store.Flash(c.Request.Context(), token, message)
}

// popFlashes drains the current session's notices for inclusion in a
// view-model.
func popFlashes(c *gin.Context, store *session.Store) []string {
	token, ok := middleware.SessionToken(c)
	if !ok {
		return nil
	}
	messages, err := store.PopFlashes(c.Request.Context(), token)
	if err != nil {
		return nil
	}
	return messages
}
