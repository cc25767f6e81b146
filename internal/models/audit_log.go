package models

import (
	"time"
)

// AuditLog records an admin-sensitive mutation. Entries are written inside
// the same transaction as the action they describe.
type AuditLog struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Username  string    `gorm:"size:64;not null" json:"username"`
	Action    string    `gorm:"size:64;not null" json:"action"`
	Details   string    `gorm:"type:text" json:"details"`
	CreatedAt time.Time `json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
