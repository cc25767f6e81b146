package authz

import (
	"testing"

	"pixelforge/internal/models"
)

func leadPtr(id uint) *uint { return &id }

func fixtures() (admin, lead, otherLead, dev, otherDev *models.User, project *models.Project) {
	admin = &models.User{ID: 1, Username: "admin", Role: models.RoleAdmin}
	lead = &models.User{ID: 2, Username: "lead", Role: models.RoleProjectLead}
	otherLead = &models.User{ID: 3, Username: "lead2", Role: models.RoleProjectLead}
	dev = &models.User{ID: 4, Username: "dev", Role: models.RoleDeveloper}
	otherDev = &models.User{ID: 5, Username: "dev2", Role: models.RoleDeveloper}

	project = &models.Project{
		ID:         10,
		Name:       "nexus",
		LeadID:     leadPtr(lead.ID),
		Developers: []models.User{*dev},
	}
	return
}

func TestCanViewProject(t *testing.T) {
	admin, lead, otherLead, dev, otherDev, project := fixtures()

	tests := []struct {
		name  string
		actor *models.User
		want  bool
	}{
		{"admin always", admin, true},
		{"owning lead", lead, true},
		{"other lead", otherLead, false},
		{"assigned developer", dev, true},
		{"unassigned developer", otherDev, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Can(tt.actor, ViewProject, project); got != tt.want {
				t.Errorf("Can(%s, ViewProject) = %v, want %v", tt.actor.Username, got, tt.want)
			}
		})
	}
}

func TestCanViewLeadlessProject(t *testing.T) {
	admin, lead, _, dev, _, _ := fixtures()
	orphan := &models.Project{ID: 11, Name: "orphan"}

	if !Can(admin, ViewProject, orphan) {
		t.Error("admin must view a project with no lead")
	}
	if Can(lead, ViewProject, orphan) {
		t.Error("lead must not view a project they do not lead")
	}
	if Can(dev, ViewProject, orphan) {
		t.Error("developer must not view a project they are not assigned to")
	}
}

func TestAdminOnlyActions(t *testing.T) {
	admin, lead, _, dev, _, project := fixtures()

	for _, action := range []Action{AddProject, MarkCompleted, DeleteProject, ManageUsers, RegisterUser, ViewAuditLog} {
		if !Can(admin, action, project) {
			t.Errorf("admin must be allowed %s", action)
		}
		if Can(lead, action, project) {
			t.Errorf("lead must not be allowed %s, even on their own project", action)
		}
		if Can(dev, action, project) {
			t.Errorf("developer must not be allowed %s", action)
		}
	}
}

func TestManageProjectActions(t *testing.T) {
	admin, lead, otherLead, dev, _, project := fixtures()

	for _, action := range []Action{AssignTeam, UploadDocument} {
		if !Can(admin, action, project) {
			t.Errorf("admin must be allowed %s", action)
		}
		if !Can(lead, action, project) {
			t.Errorf("owning lead must be allowed %s", action)
		}
		if Can(otherLead, action, project) {
			t.Errorf("non-owning lead must not be allowed %s", action)
		}
		if Can(dev, action, project) {
			t.Errorf("assigned developer must not be allowed %s", action)
		}
	}
}

func TestCanViewDocument(t *testing.T) {
	admin, lead, otherLead, dev, otherDev, project := fixtures()
	doc := &models.Document{ID: 100, Filename: "design.pdf", ProjectID: project.ID, Project: project}

	tests := []struct {
		name  string
		actor *models.User
		want  bool
	}{
		{"admin", admin, true},
		{"owning lead", lead, true},
		{"other lead", otherLead, false},
		{"assigned developer", dev, true},
		{"unassigned developer", otherDev, false},
	}
	for _, tt := range tests {
		if got := CanViewDocument(tt.actor, doc); got != tt.want {
			t.Errorf("CanViewDocument(%s) = %v, want %v", tt.name, got, tt.want)
		}
	}

	if CanViewDocument(admin, &models.Document{ID: 101}) {
		t.Error("document with no resolved parent project must be denied")
	}
}

func TestCanDeleteUser(t *testing.T) {
	admin, lead, _, dev, _, _ := fixtures()

	if !CanDeleteUser(admin, dev) {
		t.Error("admin must be allowed to delete another user")
	}
	if CanDeleteUser(admin, admin) {
		t.Error("self-deletion must be refused even for admins")
	}
	if CanDeleteUser(lead, dev) {
		t.Error("lead must not delete users")
	}
	if CanDeleteUser(dev, lead) {
		t.Error("developer must not delete users")
	}
}

func TestNilActorDenied(t *testing.T) {
	_, _, _, _, _, project := fixtures()
	if Can(nil, ViewProject, project) {
		t.Error("nil actor must always be denied")
	}
	if CanDeleteUser(nil, &models.User{ID: 1}) {
		t.Error("nil actor must not delete users")
	}
}

func TestUnknownRoleDenied(t *testing.T) {
	_, _, _, _, _, project := fixtures()
	ghost := &models.User{ID: 99, Username: "ghost", Role: models.Role("intern")}

	if Can(ghost, ViewProject, project) {
		t.Error("unknown role must be denied, not granted by fallthrough")
	}
	if Can(ghost, AssignTeam, project) {
		t.Error("unknown role must be denied project management")
	}
}
