package handler

import (
	"net/http"
	"strings"

	"pixelforge/internal/apperr"
	"pixelforge/internal/authz"
	"pixelforge/internal/middleware"
	"pixelforge/internal/service"
	"pixelforge/internal/session"
	"pixelforge/internal/utils"

	"github.com/gin-gonic/gin"
)

// DocumentHandler serves document upload and retrieval.
type DocumentHandler struct {
	documentService *service.DocumentService
	projectService  *service.ProjectService
	sessions        *session.Store
}

// NewDocumentHandler creates the document handler.
func NewDocumentHandler(
	documentService *service.DocumentService,
	projectService *service.ProjectService,
	sessions *session.Store,
) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		projectService:  projectService,
		sessions:        sessions,
	}
}

// ShowUpload renders the upload form view-model for admins and the owning
// lead.
func (h *DocumentHandler) ShowUpload(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	project, err := h.projectService.Get(user, paramID(c, "id"))
	if err != nil {
		fail(c, h.sessions, err)
		return
	}
	if !authz.Can(user, authz.UploadDocument, project) {
		fail(c, h.sessions, apperr.Forbidden("upload documents to this project"))
		return
	}

	utils.SuccessResponse(c, gin.H{
		"title":   "Upload Document for " + project.Name,
		"project": project.ID,
	})
}

// Upload stores a document for a project.
func (h *DocumentHandler) Upload(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	projectID := paramID(c, "id")

	header, err := c.FormFile("document")
	if err != nil {
		fail(c, h.sessions, apperr.Validation("document", "a file is required"))
		return
	}

	doc, err := h.documentService.Upload(user, projectID, header)
	if err != nil {
		fail(c, h.sessions, err)
		return
	}

	flash(c, h.sessions, "Document \""+doc.Filename+"\" uploaded.")
	c.Redirect(http.StatusSeeOther, "/project/"+c.Param("id"))
}

// Download streams a stored document to users admitted by the parent
// project's viewing rule. The route is keyed by the generated storage key.
func (h *DocumentHandler) Download(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	key := strings.TrimPrefix(c.Param("key"), "/")
	path, displayName, err := h.documentService.Resolve(user, key)
	if err != nil {
		fail(c, h.sessions, err)
		return
	}

	c.FileAttachment(path, displayName)
}
