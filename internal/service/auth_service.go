package service

import (
	"errors"
	"fmt"
	"strings"

	"pixelforge/internal/apperr"
	"pixelforge/internal/config"
	"pixelforge/internal/models"
	"pixelforge/internal/repository"
	"pixelforge/internal/utils"
)

// ErrInvalidCredentials is the single, deliberately vague login failure.
// Callers must not distinguish a wrong username from a wrong password.
var ErrInvalidCredentials = errors.New("invalid username or password")

// AuthService verifies credentials and manages passwords.
type AuthService struct {
	userRepo *repository.UserRepository
	cfg      *config.Config
}

// NewAuthService creates the auth service.
func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

// Login verifies a username/password pair. Both the missing-user and the
// wrong-password paths return the same error.
func (s *AuthService) Login(username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := utils.CheckPassword(password, user.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// ChangePassword replaces a user's password after verifying the current
// one. The stored hash is untouched unless every check passes.
func (s *AuthService) ChangePassword(userID uint, oldPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return apperr.NotFound("user")
	}

	if err := utils.CheckPassword(oldPassword, user.PasswordHash); err != nil {
		return apperr.Validation("old_password", "incorrect current password")
	}

	if problems := utils.CheckPasswordStrength(newPassword); len(problems) > 0 {
		return apperr.Validation("new_password", strings.Join(problems, "; "))
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return s.userRepo.UpdatePasswordHash(userID, hash)
}

// SeedAdmin creates the configured admin account when no admin exists yet.
func (s *AuthService) SeedAdmin() error {
	count, err := s.userRepo.CountByRole(models.RoleAdmin)
	if err != nil {
		return fmt.Errorf("count admins: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := utils.HashPassword(s.cfg.Admin.Password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := &models.User{
		Username:     s.cfg.Admin.Username,
		Email:        s.cfg.Admin.Email,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}
	if err := s.userRepo.Create(admin, nil); err != nil {
		return fmt.Errorf("create seed admin: %w", err)
	}
	return nil
}
