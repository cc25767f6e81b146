package repository

import (
	"pixelforge/internal/models"

	"gorm.io/gorm"
)

// DocumentRepository is the document store's data access layer.
type DocumentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a document repository.
func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// Create inserts a new document row.
func (r *DocumentRepository) Create(doc *models.Document) error {
	return r.db.Create(doc).Error
}

// GetByStorageKey resolves a document by its unique storage key, loading
// the parent project with its current team so the viewing rule can be
// evaluated against it.
func (r *DocumentRepository) GetByStorageKey(key string) (*models.Document, error) {
	var doc models.Document
	err := r.db.Preload("Project").Preload("Project.Developers").Preload("Uploader").
		Where("storage_key = ?", key).First(&doc).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// ListByProject returns a project's documents, newest first.
func (r *DocumentRepository) ListByProject(projectID uint) ([]models.Document, error) {
	var docs []models.Document
	err := r.db.Where("project_id = ?", projectID).Order("uploaded_at DESC").Find(&docs).Error
	return docs, err
}

// CountByUploader counts the documents uploaded by userID.
func (r *DocumentRepository) CountByUploader(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Document{}).Where("uploader_id = ?", userID).Count(&count).Error
	return count, err
}

// Delete removes a document row.
func (r *DocumentRepository) Delete(id uint) error {
	return r.db.Delete(&models.Document{}, id).Error
}
