package service

import (
	"fmt"

	"pixelforge/internal/apperr"
	"pixelforge/internal/authz"
	"pixelforge/internal/dto"
	"pixelforge/internal/models"
	"pixelforge/internal/repository"
	"pixelforge/internal/storage"
	"pixelforge/internal/utils"

	"github.com/sirupsen/logrus"
)

// UserService implements the admin-facing identity operations: register,
// role changes and cascading deletion.
type UserService struct {
	userRepo  *repository.UserRepository
	auditRepo *repository.AuditRepository
	files     *storage.Store
	logger    *logrus.Logger
}

// NewUserService creates the user service.
func NewUserService(
	userRepo *repository.UserRepository,
	auditRepo *repository.AuditRepository,
	files *storage.Store,
	logger *logrus.Logger,
) *UserService {
	return &UserService{
		userRepo:  userRepo,
		auditRepo: auditRepo,
		files:     files,
		logger:    logger,
	}
}

// Register creates a user account. Username and email uniqueness is
// enforced here with a ConflictError; the role defaults to developer when
// the form leaves it blank.
func (s *UserService) Register(actor *models.User, form *dto.RegisterForm) (*models.User, error) {
	if !authz.Can(actor, authz.RegisterUser, nil) {
		return nil, apperr.Forbidden("register users")
	}

	role := models.Role(form.Role)
	if form.Role == "" {
		role = models.RoleDeveloper
	}
	if !role.Valid() {
		return nil, apperr.Validation("role", "unknown role")
	}

	taken, err := s.userRepo.ExistsByUsername(form.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if taken {
		return nil, apperr.Conflict("username", form.Username)
	}

	taken, err = s.userRepo.ExistsByEmail(form.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return nil, apperr.Conflict("email", form.Email)
	}

	hash, err := utils.HashPassword(form.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username:     form.Username,
		Email:        form.Email,
		PasswordHash: hash,
		Role:         role,
	}
	audit := auditEntry(actor, "register_user", fmt.Sprintf("registered %q as %s", user.Username, role))
	if err := s.userRepo.Create(user, audit); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// List returns all users for the admin management page.
func (s *UserService) List(actor *models.User) ([]models.User, error) {
	if !authz.Can(actor, authz.ManageUsers, nil) {
		return nil, apperr.Forbidden("manage users")
	}
	return s.userRepo.List()
}

// Get returns a single user for the admin management page.
func (s *UserService) Get(actor *models.User, id uint) (*models.User, error) {
	if !authz.Can(actor, authz.ManageUsers, nil) {
		return nil, apperr.Forbidden("manage users")
	}
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, apperr.NotFound("user")
	}
	return user, nil
}

// ChangeRole assigns an arbitrary new role. Any number of users may hold
// any role; there is no restriction on multiple admins or leads.
func (s *UserService) ChangeRole(actor *models.User, targetID uint, role models.Role) error {
	if !authz.Can(actor, authz.ManageUsers, nil) {
		return apperr.Forbidden("manage users")
	}
	if !role.Valid() {
		return apperr.Validation("role", "unknown role")
	}

	target, err := s.userRepo.GetByID(targetID)
	if err != nil {
		return apperr.NotFound("user")
	}

	audit := auditEntry(actor, "change_role", fmt.Sprintf("set role of %q to %s", target.Username, role))
	if err := s.userRepo.UpdateRole(target.ID, role, audit); err != nil {
		return fmt.Errorf("update role: %w", err)
	}
	return nil
}

// Delete removes a user and cascades: led projects keep existing with a
// nulled lead, team assignments are removed, uploaded documents are
// deleted together with their files. A failed file delete is logged and
// swallowed so the deletion never leaves a partial state behind.
func (s *UserService) Delete(actor *models.User, targetID uint) error {
	target, err := s.userRepo.GetByID(targetID)
	if err != nil {
		return apperr.NotFound("user")
	}

	if !authz.CanDeleteUser(actor, target) {
		return apperr.Forbidden("delete this user")
	}

	audit := auditEntry(actor, "delete_user", fmt.Sprintf("deleted %q", target.Username))
	keys, err := s.userRepo.DeleteCascade(target.ID, audit)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	for _, key := range keys {
		if err := s.files.Remove(key); err != nil {
			s.logger.WithFields(logrus.Fields{
				"storage_key": key,
				"user":        target.Username,
			}).WithError(err).Warn("failed to delete document file during user deletion")
		}
	}
	return nil
}

// AuditTrail returns the recorded admin-sensitive mutations, newest
// first. Admin only.
func (s *UserService) AuditTrail(actor *models.User, limit int) ([]models.AuditLog, error) {
	if !authz.Can(actor, authz.ViewAuditLog, nil) {
		return nil, apperr.Forbidden("view the audit log")
	}
	return s.auditRepo.List(limit)
}

// auditEntry builds the audit row that rides in the same transaction as
// the mutation it records.
func auditEntry(actor *models.User, action, details string) *models.AuditLog {
	return &models.AuditLog{
		Username: actor.Username,
		Action:   action,
		Details:  details,
	}
}
