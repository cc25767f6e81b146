package models

import (
	"time"
)

// Role is the coarse capability level of a user. Project-scoped actions
// additionally require an ownership or membership relation, checked by the
// authz package.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleProjectLead Role = "project_lead"
	RoleDeveloper   Role = "developer"
)

// Roles lists every assignable role, in display order.
func Roles() []Role {
	return []Role{RoleAdmin, RoleProjectLead, RoleDeveloper}
}

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleProjectLead, RoleDeveloper:
		return true
	}
	return false
}

// User is a studio member. The password is stored only as a bcrypt hash.
type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:64;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;size:120;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         Role      `gorm:"size:20;not null;default:developer" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	LedProjects      []Project  `gorm:"foreignKey:LeadID" json:"-"`
	AssignedProjects []Project  `gorm:"many2many:project_assignments" json:"-"`
	Documents        []Document `gorm:"foreignKey:UploaderID" json:"-"`
}

func (User) TableName() string {
	return "users"
}
