package models

import (
	"time"
)

// Document is an uploaded file attached to a project. Filename is display
// metadata only; the file on disk lives under a project-scoped, uniquely
// generated StorageKey so that two uploads can never collide.
type Document struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	Filename   string    `gorm:"size:256;not null" json:"filename"`
	StorageKey string    `gorm:"uniqueIndex;size:128;not null" json:"-"`
	UploadedAt time.Time `gorm:"not null" json:"uploaded_at"`
	ProjectID  uint      `gorm:"not null;index" json:"project_id"`
	UploaderID uint      `gorm:"not null;index" json:"uploader_id"`

	Project  *Project `gorm:"foreignKey:ProjectID" json:"-"`
	Uploader *User    `gorm:"foreignKey:UploaderID" json:"-"`
}

func (Document) TableName() string {
	return "documents"
}
