package handler

import (
	"net/http"

	"pixelforge/internal/apperr"
	"pixelforge/internal/dto"
	"pixelforge/internal/middleware"
	"pixelforge/internal/models"
	"pixelforge/internal/service"
	"pixelforge/internal/session"
	"pixelforge/internal/utils"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

// ProjectHandler serves the dashboard and the project routes.
type ProjectHandler struct {
	projectService *service.ProjectService
	sessions       *session.Store
}

// NewProjectHandler creates the project handler.
func NewProjectHandler(projectService *service.ProjectService, sessions *session.Store) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		sessions:       sessions,
	}
}

// Index renders the dashboard: the projects visible to the current user
// under the ownership rule.
func (h *ProjectHandler) Index(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	projects, err := h.projectService.Dashboard(user)
	if err != nil {
		fail(c, h.sessions, err)
		return
	}

	summaries := make([]dto.ProjectSummary, len(projects))
	for i, p := range projects {
		summaries[i] = summarize(p)
	}
	utils.SuccessResponse(c, gin.H{
		"title":    "Dashboard",
		"projects": summaries,
		"notices":  popFlashes(c, h.sessions),
	})
}

// ShowAddProject renders the project-creation form view-model. The flow
// is refused outright when no project lead exists yet.
func (h *ProjectHandler) ShowAddProject(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	leads, err := h.projectService.AvailableLeads(user)
	if err != nil {
		fail(c, h.sessions, err)
		return
	}
	if len(leads) == 0 {
		fail(c, h.sessions, apperr.Guard("no project leads are registered; register a project lead first"))
		return
	}

	infos := make([]dto.UserInfo, len(leads))
	for i, u := range leads {
		infos[i] = dto.UserInfo{ID: u.ID, Username: u.Username, Email: u.Email, Role: string(u.Role)}
	}
	utils.SuccessResponse(c, gin.H{
		"title": "Add Project",
		"leads": infos,
	})
}

// AddProject creates a project.
func (h *ProjectHandler) AddProject(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var form dto.AddProjectForm
	if err := c.ShouldBind(&form); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	project, err := h.projectService.Create(user, &form)
	if err != nil {
		fail(c, h.sessions, err)
		return
	}

	flash(c, h.sessions, "Project \""+project.Name+"\" added.")
	c.Redirect(http.StatusSeeOther, "/")
}

// Details renders a single project for users the ownership rule admits.
func (h *ProjectHandler) Details(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	project, err := h.projectService.Get(user, paramID(c, "id"))
	if err != nil {
		fail(c, h.sessions, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"title":   project.Name,
		"project": detail(project),
		"notices": popFlashes(c, h.sessions),
	})
}

// MarkCompleted flags a project as done.
func (h *ProjectHandler) MarkCompleted(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	project, err := h.projectService.MarkCompleted(user, paramID(c, "id"))
	if err != nil {
		fail(c, h.sessions, err)
		return
	}

	flash(c, h.sessions, "Project \""+project.Name+"\" marked as completed.")
	c.Redirect(http.StatusSeeOther, "/")
}

// ShowAssignTeam renders the assign-team form view-model: developers not
// yet on the team.
func (h *ProjectHandler) ShowAssignTeam(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	projectID := paramID(c, "id")

	available, err := h.projectService.AssignableDevelopers(user, projectID)
	if err != nil {
		fail(c, h.sessions, err)
		return
	}

	infos := make([]dto.UserInfo, len(available))
	for i, u := range available {
		infos[i] = dto.UserInfo{ID: u.ID, Username: u.Username, Email: u.Email, Role: string(u.Role)}
	}
	utils.SuccessResponse(c, gin.H{
		"title":      "Assign Team",
		"developers": infos,
	})
}

// AssignTeam adds a developer to the project's team.
func (h *ProjectHandler) AssignTeam(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	projectID := paramID(c, "id")

	var form dto.AssignTeamForm
	if err := c.ShouldBind(&form); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if err := h.projectService.AssignDeveloper(user, projectID, form.DeveloperID); err != nil {
		fail(c, h.sessions, err)
		return
	}

	flash(c, h.sessions, "Developer assigned.")
	c.Redirect(http.StatusSeeOther, "/project/"+c.Param("id"))
}

// DeleteProject removes a project and its documents.
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	if err := h.projectService.Delete(user, paramID(c, "id")); err != nil {
		fail(c, h.sessions, err)
		return
	}

	flash(c, h.sessions, "Project deleted.")
	c.Redirect(http.StatusSeeOther, "/")
}

func summarize(p models.Project) dto.ProjectSummary {
	s := dto.ProjectSummary{
		ID:          p.ID,
		Name:        p.Name,
		Deadline:    p.Deadline.Format(dateLayout),
		IsCompleted: p.IsCompleted,
	}
	if p.Lead != nil {
		s.LeadName = p.Lead.Username
	}
	return s
}

func detail(p *models.Project) dto.ProjectDetails {
	d := dto.ProjectDetails{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Deadline:    p.Deadline.Format(dateLayout),
		IsCompleted: p.IsCompleted,
		Developers:  make([]dto.UserInfo, len(p.Developers)),
		Documents:   make([]dto.DocumentSummary, len(p.Documents)),
	}
	if p.Lead != nil {
		d.Lead = &dto.UserInfo{ID: p.Lead.ID, Username: p.Lead.Username, Email: p.Lead.Email, Role: string(p.Lead.Role)}
	}
	for i, dev := range p.Developers {
		d.Developers[i] = dto.UserInfo{ID: dev.ID, Username: dev.Username, Email: dev.Email, Role: string(dev.Role)}
	}
	for i, doc := range p.Documents {
		d.Documents[i] = dto.DocumentSummary{
			ID:         doc.ID,
			Filename:   doc.Filename,
			URL:        "/uploads/" + doc.StorageKey,
			UploadedAt: doc.UploadedAt.Format("2006-01-02 15:04:05"),
			UploaderID: doc.UploaderID,
		}
	}
	return d
}
