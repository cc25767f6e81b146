package repository

import (
	"pixelforge/internal/models"

	"gorm.io/gorm"
)

// AuditRepository records admin-sensitive mutations.
type AuditRepository struct {
	db *gorm.DB
}

// NewAuditRepository creates an audit repository.
func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// List returns audit entries, newest first. Entries are only ever written
// inside the transaction of the mutation they record; see the repository
// methods that take a *models.AuditLog.
func (r *AuditRepository) List(limit int) ([]models.AuditLog, error) {
	var entries []models.AuditLog
	q := r.db.Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&entries).Error
	return entries, err
}
