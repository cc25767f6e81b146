package repository

import (
	"pixelforge/internal/models"

	"gorm.io/gorm"
)

// UserRepository is the identity store's data access layer.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a user repository.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user. The audit entry, if given, is written in the
// same transaction so the account cannot exist without its record.
func (r *UserRepository) Create(user *models.User, audit *models.AuditLog) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		if audit != nil {
			return tx.Create(audit).Error
		}
		return nil
	})
}

// GetByID returns a user by primary key.
func (r *UserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUsername returns a user by username.
func (r *UserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ExistsByUsername reports whether a username is taken.
func (r *UserRepository) ExistsByUsername(username string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

// ExistsByEmail reports whether an email is taken.
func (r *UserRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// List returns all users ordered by username.
func (r *UserRepository) List() ([]models.User, error) {
	var users []models.User
	err := r.db.Order("username").Find(&users).Error
	return users, err
}

// ListByRole returns all users currently holding role.
func (r *UserRepository) ListByRole(role models.Role) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("role = ?", role).Order("username").Find(&users).Error
	return users, err
}

// CountByRole counts users currently holding role.
func (r *UserRepository) CountByRole(role models.Role) (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("role = ?", role).Count(&count).Error
	return count, err
}

// Count returns the total number of users.
func (r *UserRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}

// UpdatePasswordHash replaces a user's stored hash.
func (r *UserRepository) UpdatePasswordHash(userID uint, hash string) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).Update("password_hash", hash).Error
}

// UpdateRole replaces a user's role, writing the audit entry, if given,
// atomically with the change.
func (r *UserRepository) UpdateRole(userID uint, role models.Role, audit *models.AuditLog) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", userID).Update("role", role).Error; err != nil {
			return err
		}
		if audit != nil {
			return tx.Create(audit).Error
		}
		return nil
	})
}

// DeleteCascade removes a user and everything hanging off them in one
// transaction: projects they lead keep existing with a nulled lead, their
// developer assignments are removed, and their uploaded document rows are
// deleted. It returns the storage keys of the deleted documents so the
// caller can remove the files; file IO is deliberately outside the
// transaction. The audit entry, if given, is written atomically with the
// deletion.
func (r *UserRepository) DeleteCascade(userID uint, audit *models.AuditLog) ([]string, error) {
	var keys []string

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Project{}).Where("lead_id = ?", userID).Update("lead_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM project_assignments WHERE user_id = ?", userID).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Document{}).Where("uploader_id = ?", userID).Pluck("storage_key", &keys).Error; err != nil {
			return err
		}
		if err := tx.Where("uploader_id = ?", userID).Delete(&models.Document{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.User{}, userID).Error; err != nil {
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
