package service

import (
	"fmt"
	"time"

	"pixelforge/internal/apperr"
	"pixelforge/internal/authz"
	"pixelforge/internal/dto"
	"pixelforge/internal/models"
	"pixelforge/internal/repository"
	"pixelforge/internal/storage"

	"github.com/sirupsen/logrus"
)

const deadlineLayout = "2006-01-02"

// ProjectService implements project CRUD and team assignment under the
// authorization policy.
type ProjectService struct {
	projectRepo *repository.ProjectRepository
	userRepo    *repository.UserRepository
	files       *storage.Store
	logger      *logrus.Logger
}

// NewProjectService creates the project service.
func NewProjectService(
	projectRepo *repository.ProjectRepository,
	userRepo *repository.UserRepository,
	files *storage.Store,
	logger *logrus.Logger,
) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		userRepo:    userRepo,
		files:       files,
		logger:      logger,
	}
}

// Dashboard returns the projects visible to actor: admins see everything,
// leads the projects they lead, developers the projects they are assigned
// to.
func (s *ProjectService) Dashboard(actor *models.User) ([]models.Project, error) {
	switch actor.Role {
	case models.RoleAdmin:
		return s.projectRepo.ListAll()
	case models.RoleProjectLead:
		return s.projectRepo.ListByLead(actor.ID)
	case models.RoleDeveloper:
		return s.projectRepo.ListAssignedTo(actor.ID)
	}
	return nil, apperr.Forbidden("view projects")
}

// Create adds a project. Precondition: at least one user currently holds
// role project_lead, otherwise the flow is refused with a GuardError
// before anything else. The chosen lead is re-validated to hold
// project_lead at creation time, never trusted from the form.
func (s *ProjectService) Create(actor *models.User, form *dto.AddProjectForm) (*models.Project, error) {
	if !authz.Can(actor, authz.AddProject, nil) {
		return nil, apperr.Forbidden("add projects")
	}

	leads, err := s.userRepo.CountByRole(models.RoleProjectLead)
	if err != nil {
		return nil, fmt.Errorf("count leads: %w", err)
	}
	if leads == 0 {
		return nil, apperr.Guard("no project leads are registered; register a project lead first")
	}

	lead, err := s.userRepo.GetByID(form.LeadID)
	if err != nil || lead.Role != models.RoleProjectLead {
		return nil, apperr.Validation("lead_id", "selected user does not hold the project lead role")
	}

	deadline, err := time.Parse(deadlineLayout, form.Deadline)
	if err != nil {
		return nil, apperr.Validation("deadline", "must be a date in YYYY-MM-DD form")
	}

	project := &models.Project{
		Name:        form.Name,
		Description: form.Description,
		Deadline:    deadline,
		LeadID:      &lead.ID,
	}
	audit := auditEntry(actor, "add_project", fmt.Sprintf("created project %q led by %q", form.Name, lead.Username))
	if err := s.projectRepo.Create(project, audit); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return project, nil
}

// Get returns a project if actor may view it. The ownership rule is
// evaluated against the row's current lead and team, loaded here.
func (s *ProjectService) Get(actor *models.User, id uint) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(id)
	if err != nil {
		return nil, apperr.NotFound("project")
	}
	if !authz.Can(actor, authz.ViewProject, project) {
		return nil, apperr.Forbidden("view this project")
	}
	return project, nil
}

// MarkCompleted flags a project as done. Admin only.
func (s *ProjectService) MarkCompleted(actor *models.User, id uint) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(id)
	if err != nil {
		return nil, apperr.NotFound("project")
	}
	if !authz.Can(actor, authz.MarkCompleted, project) {
		return nil, apperr.Forbidden("mark projects completed")
	}

	audit := auditEntry(actor, "mark_completed", fmt.Sprintf("marked project %q completed", project.Name))
	if err := s.projectRepo.MarkCompleted(project.ID, audit); err != nil {
		return nil, fmt.Errorf("mark completed: %w", err)
	}
	project.IsCompleted = true
	return project, nil
}

// AssignDeveloper puts a developer on the project's team. The target must
// hold role developer at assignment time and not already be assigned.
func (s *ProjectService) AssignDeveloper(actor *models.User, projectID, developerID uint) error {
	project, err := s.projectRepo.GetByID(projectID)
	if err != nil {
		return apperr.NotFound("project")
	}
	if !authz.Can(actor, authz.AssignTeam, project) {
		return apperr.Forbidden("assign team members to this project")
	}

	dev, err := s.userRepo.GetByID(developerID)
	if err != nil {
		return apperr.Validation("developer_id", "unknown developer")
	}
	if dev.Role != models.RoleDeveloper {
		return apperr.Validation("developer_id", "selected user does not hold the developer role")
	}

	assigned, err := s.projectRepo.IsAssigned(project.ID, dev.ID)
	if err != nil {
		return fmt.Errorf("check assignment: %w", err)
	}
	if assigned {
		return apperr.Validation("developer_id", "developer is already assigned to this project")
	}

	audit := auditEntry(actor, "assign_team", fmt.Sprintf("assigned %q to project %q", dev.Username, project.Name))
	if err := s.projectRepo.AssignDeveloper(project, dev, audit); err != nil {
		return fmt.Errorf("assign developer: %w", err)
	}
	return nil
}

// AssignableDevelopers lists users with role developer who are not yet on
// the project's team, for the assign-team form.
func (s *ProjectService) AssignableDevelopers(actor *models.User, projectID uint) ([]models.User, error) {
	project, err := s.projectRepo.GetByID(projectID)
	if err != nil {
		return nil, apperr.NotFound("project")
	}
	if !authz.Can(actor, authz.AssignTeam, project) {
		return nil, apperr.Forbidden("assign team members to this project")
	}

	devs, err := s.userRepo.ListByRole(models.RoleDeveloper)
	if err != nil {
		return nil, err
	}

	available := devs[:0]
	for _, dev := range devs {
		if !project.HasDeveloper(dev.ID) {
			available = append(available, dev)
		}
	}
	return available, nil
}

// AvailableLeads lists users holding role project_lead, for the
// add-project form.
func (s *ProjectService) AvailableLeads(actor *models.User) ([]models.User, error) {
	if !authz.Can(actor, authz.AddProject, nil) {
		return nil, apperr.Forbidden("add projects")
	}
	return s.userRepo.ListByRole(models.RoleProjectLead)
}

// Delete removes a project and cascades to its documents (rows and files)
// and assignment rows. Admin only. File delete failures are logged and
// swallowed.
func (s *ProjectService) Delete(actor *models.User, id uint) error {
	project, err := s.projectRepo.GetByID(id)
	if err != nil {
		return apperr.NotFound("project")
	}
	if !authz.Can(actor, authz.DeleteProject, project) {
		return apperr.Forbidden("delete projects")
	}

	audit := auditEntry(actor, "delete_project", fmt.Sprintf("deleted project %q", project.Name))
	keys, err := s.projectRepo.DeleteCascade(project.ID, audit)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}

	for _, key := range keys {
		if err := s.files.Remove(key); err != nil {
			s.logger.WithFields(logrus.Fields{
				"storage_key": key,
				"project":     project.Name,
			}).WithError(err).Warn("failed to delete document file during project deletion")
		}
	}
	return nil
}
