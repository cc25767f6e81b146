package service

import (
	"fmt"
	"mime/multipart"
	"time"

	"pixelforge/internal/apperr"
	"pixelforge/internal/authz"
	"pixelforge/internal/config"
	"pixelforge/internal/models"
	"pixelforge/internal/repository"
	"pixelforge/internal/storage"
	"pixelforge/internal/utils"

	"github.com/sirupsen/logrus"
)

// DocumentService handles document upload and retrieval under the
// ownership rule of the parent project.
type DocumentService struct {
	docRepo     *repository.DocumentRepository
	projectRepo *repository.ProjectRepository
	files       *storage.Store
	cfg         *config.Config
	logger      *logrus.Logger
}

// NewDocumentService creates the document service.
func NewDocumentService(
	docRepo *repository.DocumentRepository,
	projectRepo *repository.ProjectRepository,
	files *storage.Store,
	cfg *config.Config,
	logger *logrus.Logger,
) *DocumentService {
	return &DocumentService{
		docRepo:     docRepo,
		projectRepo: projectRepo,
		files:       files,
		cfg:         cfg,
		logger:      logger,
	}
}

// Upload stores a document for a project. The uploaded name is sanitized
// down to display metadata; the file itself is written under a
// project-scoped generated key, so equal filenames can never collide on
// disk. The file is saved before the metadata row; if the row insert
// fails the file is cleaned up again.
func (s *DocumentService) Upload(actor *models.User, projectID uint, header *multipart.FileHeader) (*models.Document, error) {
	project, err := s.projectRepo.GetByID(projectID)
	if err != nil {
		return nil, apperr.NotFound("project")
	}
	if !authz.Can(actor, authz.UploadDocument, project) {
		return nil, apperr.Forbidden("upload documents to this project")
	}

	if header == nil || header.Size == 0 {
		return nil, apperr.Validation("document", "a non-empty file is required")
	}
	if max := s.cfg.Upload.MaxBytes(); header.Size > max {
		return nil, apperr.PayloadTooLarge(max)
	}

	displayName, err := utils.SanitizeFilename(header.Filename)
	if err != nil {
		return nil, apperr.Validation("document", "unusable filename")
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	key := storage.NewKey(project.ID, displayName)
	if _, err := s.files.Save(key, src); err != nil {
		return nil, fmt.Errorf("store document: %w", err)
	}

	doc := &models.Document{
		Filename:   displayName,
		StorageKey: key,
		UploadedAt: time.Now(),
		ProjectID:  project.ID,
		UploaderID: actor.ID,
	}
	if err := s.docRepo.Create(doc); err != nil {
		if rmErr := s.files.Remove(key); rmErr != nil {
			s.logger.WithField("storage_key", key).WithError(rmErr).
				Warn("failed to clean up file after metadata insert failure")
		}
		return nil, fmt.Errorf("record document: %w", err)
	}

	return doc, nil
}

// Resolve returns the on-disk path and display name of a document after
// re-running the project viewing rule against its parent project.
func (s *DocumentService) Resolve(actor *models.User, key string) (path, displayName string, err error) {
	doc, err := s.docRepo.GetByStorageKey(key)
	if err != nil {
		return "", "", apperr.NotFound("document")
	}
	if !authz.CanViewDocument(actor, doc) {
		return "", "", apperr.Forbidden("view this document")
	}

	path, err = s.files.Path(doc.StorageKey)
	if err != nil {
		return "", "", apperr.NotFound("document")
	}
	return path, doc.Filename, nil
}
