package models

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the global database handle.
var DB *gorm.DB

// InitDB opens the sqlite database and runs migrations.
func InitDB(path string) error {
	var err error

	DB, err = gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return err
	}

	return AutoMigrate(DB)
}

// AutoMigrate creates or updates the schema. The many-to-many join table
// project_assignments(project_id, user_id) is created by gorm from the
// Project.Developers association with a composite primary key.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Project{},
		&Document{},
		&AuditLog{},
	)
}

// GetDB returns the global database handle.
func GetDB() *gorm.DB {
	return DB
}
