package repository

import (
	"pixelforge/internal/models"

	"gorm.io/gorm"
)

// ProjectRepository is the project store's data access layer.
type ProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a project repository.
func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create inserts a new project. The audit entry, if given, is written in
// the same transaction.
func (r *ProjectRepository) Create(project *models.Project, audit *models.AuditLog) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}
		if audit != nil {
			return tx.Create(audit).Error
		}
		return nil
	})
}

// GetByID returns a project with its lead and current team loaded.
// Authorization decisions depend on the loaded team being current, so
// callers must not hold onto the result across mutations.
func (r *ProjectRepository) GetByID(id uint) (*models.Project, error) {
	var project models.Project
	err := r.db.Preload("Lead").Preload("Developers").Preload("Documents").First(&project, id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// ListAll returns every project, newest first.
func (r *ProjectRepository) ListAll() ([]models.Project, error) {
	var projects []models.Project
	err := r.db.Preload("Lead").Order("created_at DESC").Find(&projects).Error
	return projects, err
}

// ListByLead returns the projects led by userID.
func (r *ProjectRepository) ListByLead(userID uint) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.Preload("Lead").Where("lead_id = ?", userID).Order("created_at DESC").Find(&projects).Error
	return projects, err
}

// ListAssignedTo returns the projects userID is assigned to as developer.
func (r *ProjectRepository) ListAssignedTo(userID uint) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.Preload("Lead").
		Joins("JOIN project_assignments ON project_assignments.project_id = projects.id").
		Where("project_assignments.user_id = ?", userID).
		Order("projects.created_at DESC").
		Find(&projects).Error
	return projects, err
}

// MarkCompleted flags a project as completed, writing the audit entry, if
// given, atomically with the update.
func (r *ProjectRepository) MarkCompleted(id uint, audit *models.AuditLog) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Project{}).Where("id = ?", id).Update("is_completed", true).Error; err != nil {
			return err
		}
		if audit != nil {
			return tx.Create(audit).Error
		}
		return nil
	})
}

// SetLead updates the project's lead reference.
func (r *ProjectRepository) SetLead(id uint, leadID *uint) error {
	return r.db.Model(&models.Project{}).Where("id = ?", id).Update("lead_id", leadID).Error
}

// AssignDeveloper adds a developer to the project's team, writing the
// audit entry, if given, atomically with the assignment row.
func (r *ProjectRepository) AssignDeveloper(project *models.Project, dev *models.User, audit *models.AuditLog) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(project).Association("Developers").Append(dev); err != nil {
			return err
		}
		if audit != nil {
			return tx.Create(audit).Error
		}
		return nil
	})
}

// IsAssigned reports whether userID is on projectID's team.
func (r *ProjectRepository) IsAssigned(projectID, userID uint) (bool, error) {
	var count int64
	err := r.db.Table("project_assignments").
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error
	return count > 0, err
}

// DeleteCascade removes a project together with its assignment rows and
// document rows in one transaction, returning the storage keys of the
// deleted documents for file cleanup.
func (r *ProjectRepository) DeleteCascade(projectID uint, audit *models.AuditLog) ([]string, error) {
	var keys []string

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM project_assignments WHERE project_id = ?", projectID).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Document{}).Where("project_id = ?", projectID).Pluck("storage_key", &keys).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", projectID).Delete(&models.Document{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Project{}, projectID).Error; err != nil {
			return err
		}
		if audit != nil {
			if err := tx.Create(audit).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}
