package models

import (
	"time"
)

// Project is a game project. A project may exist with no lead, e.g. after
// its lead was deleted. Developers holds the assigned team; membership is
// validated against role developer at assignment time only, a later role
// change does not retroactively remove the assignment.
type Project struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"size:128;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Deadline    time.Time `gorm:"not null" json:"deadline"`
	IsCompleted bool      `gorm:"not null;default:false" json:"is_completed"`
	LeadID      *uint     `gorm:"index" json:"lead_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Lead       *User      `gorm:"foreignKey:LeadID" json:"lead,omitempty"`
	Developers []User     `gorm:"many2many:project_assignments" json:"developers,omitempty"`
	Documents  []Document `gorm:"foreignKey:ProjectID" json:"documents,omitempty"`
}

func (Project) TableName() string {
	return "projects"
}

// LedBy reports whether userID currently holds the project's lead slot.
func (p *Project) LedBy(userID uint) bool {
	return p.LeadID != nil && *p.LeadID == userID
}

// HasDeveloper reports whether userID is on the loaded assigned team.
// Callers must have preloaded Developers from the current row.
func (p *Project) HasDeveloper(userID uint) bool {
	for _, dev := range p.Developers {
		if dev.ID == userID {
			return true
		}
	}
	return false
}
