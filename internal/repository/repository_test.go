package repository

import (
	"path/filepath"
	"testing"
	"time"

	"pixelforge/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func mustCreateUser(t *testing.T, db *gorm.DB, username string, role models.Role) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		Email:        username + "@pixelforge.local",
		PasswordHash: "x",
		Role:         role,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func mustCreateProject(t *testing.T, db *gorm.DB, name string, leadID *uint) *models.Project {
	t.Helper()
	project := &models.Project{
		Name:     name,
		Deadline: time.Now().AddDate(0, 1, 0),
		LeadID:   leadID,
	}
	if err := db.Create(project).Error; err != nil {
		t.Fatalf("create project %s: %v", name, err)
	}
	return project
}

func TestUniqueUsernameAndEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	mustCreateUser(t, db, "alice", models.RoleDeveloper)

	err := repo.Create(&models.User{Username: "alice", Email: "other@pixelforge.local", PasswordHash: "x"}, nil)
	if err == nil {
		t.Error("duplicate username must be rejected by the unique index")
	}

	err = repo.Create(&models.User{Username: "alice2", Email: "alice@pixelforge.local", PasswordHash: "x"}, nil)
	if err == nil {
		t.Error("duplicate email must be rejected by the unique index")
	}
}

func TestUserDeleteCascadeAcrossProjects(t *testing.T) {
	db := newTestDB(t)
	userRepo := NewUserRepository(db)
	projectRepo := NewProjectRepository(db)
	docRepo := NewDocumentRepository(db)

	victim := mustCreateUser(t, db, "victim", models.RoleProjectLead)
	dev := mustCreateUser(t, db, "dev", models.RoleDeveloper)

	// victim leads two projects and is assigned (as developer) to a third
	led1 := mustCreateProject(t, db, "led1", &victim.ID)
	led2 := mustCreateProject(t, db, "led2", &victim.ID)
	other := mustCreateProject(t, db, "other", &dev.ID)
	if err := projectRepo.AssignDeveloper(other, victim, nil); err != nil {
		t.Fatalf("assign: %v", err)
	}

	// victim uploaded documents to several projects
	for i, p := range []*models.Project{led1, led2, other} {
		doc := &models.Document{
			Filename:   "doc.txt",
			StorageKey: []string{"1/a.txt", "2/b.txt", "3/c.txt"}[i],
			UploadedAt: time.Now(),
			ProjectID:  p.ID,
			UploaderID: victim.ID,
		}
		if err := docRepo.Create(doc); err != nil {
			t.Fatalf("create doc: %v", err)
		}
	}

	keys, err := userRepo.DeleteCascade(victim.ID, &models.AuditLog{Username: "admin", Action: "delete_user"})
	if err != nil {
		t.Fatalf("DeleteCascade: %v", err)
	}
	if len(keys) != 3 {
		t.Errorf("expected 3 storage keys for file cleanup, got %v", keys)
	}

	// no project keeps the deleted user as lead
	var leadCount int64
	db.Model(&models.Project{}).Where("lead_id = ?", victim.ID).Count(&leadCount)
	if leadCount != 0 {
		t.Errorf("%d projects still reference the deleted lead", leadCount)
	}

	// led projects still exist, now leadless
	reloaded, err := projectRepo.GetByID(led1.ID)
	if err != nil {
		t.Fatalf("led project must survive its lead's deletion: %v", err)
	}
	if reloaded.LeadID != nil {
		t.Error("surviving project must have a nulled lead")
	}

	// no assignment rows remain
	assigned, err := projectRepo.IsAssigned(other.ID, victim.ID)
	if err != nil {
		t.Fatalf("IsAssigned: %v", err)
	}
	if assigned {
		t.Error("deleted user must be removed from assigned teams")
	}

	// no document rows reference the deleted uploader
	count, err := docRepo.CountByUploader(victim.ID)
	if err != nil {
		t.Fatalf("CountByUploader: %v", err)
	}
	if count != 0 {
		t.Errorf("%d document rows still reference the deleted uploader", count)
	}

	// audit entry landed in the same transaction
	var auditCount int64
	db.Model(&models.AuditLog{}).Where("action = ?", "delete_user").Count(&auditCount)
	if auditCount != 1 {
		t.Errorf("expected 1 audit entry, got %d", auditCount)
	}
}

func TestProjectDeleteCascade(t *testing.T) {
	db := newTestDB(t)
	projectRepo := NewProjectRepository(db)
	docRepo := NewDocumentRepository(db)

	lead := mustCreateUser(t, db, "lead", models.RoleProjectLead)
	dev := mustCreateUser(t, db, "dev", models.RoleDeveloper)
	project := mustCreateProject(t, db, "doomed", &lead.ID)

	if err := projectRepo.AssignDeveloper(project, dev, nil); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if err := docRepo.Create(&models.Document{
		Filename: "brief.txt", StorageKey: "k/brief.txt", UploadedAt: time.Now(),
		ProjectID: project.ID, UploaderID: lead.ID,
	}); err != nil {
		t.Fatalf("create doc: %v", err)
	}

	keys, err := projectRepo.DeleteCascade(project.ID, nil)
	if err != nil {
		t.Fatalf("DeleteCascade: %v", err)
	}
	if len(keys) != 1 || keys[0] != "k/brief.txt" {
		t.Errorf("keys = %v, want the project's document key", keys)
	}

	if _, err := projectRepo.GetByID(project.ID); err == nil {
		t.Error("project must be gone")
	}
	docs, err := docRepo.ListByProject(project.ID)
	if err != nil {
		t.Fatalf("ListByProject: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("%d document rows survived project deletion", len(docs))
	}

	// the assigned developer survives untouched
	var devCount int64
	db.Model(&models.User{}).Where("id = ?", dev.ID).Count(&devCount)
	if devCount != 1 {
		t.Error("deleting a project must not delete its team members")
	}
}

func TestListAssignedTo(t *testing.T) {
	db := newTestDB(t)
	projectRepo := NewProjectRepository(db)

	lead := mustCreateUser(t, db, "lead", models.RoleProjectLead)
	dev := mustCreateUser(t, db, "dev", models.RoleDeveloper)

	assigned := mustCreateProject(t, db, "mine", &lead.ID)
	mustCreateProject(t, db, "not-mine", &lead.ID)
	if err := projectRepo.AssignDeveloper(assigned, dev, nil); err != nil {
		t.Fatalf("assign: %v", err)
	}

	projects, err := projectRepo.ListAssignedTo(dev.ID)
	if err != nil {
		t.Fatalf("ListAssignedTo: %v", err)
	}
	if len(projects) != 1 || projects[0].Name != "mine" {
		t.Errorf("ListAssignedTo = %v, want just the assigned project", projects)
	}
}
