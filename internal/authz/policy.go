// Package authz holds the authorization policy as pure decision functions.
// Every route delegates here instead of re-implementing checks inline.
//
// The model is two-tier: a coarse role class, then an ownership or
// membership relation to the resource. Project-scoped decisions must be
// evaluated against the project's current lead and assignee set; callers
// load the row (with its team preloaded) at check time, never from a cache.
package authz

import (
	"pixelforge/internal/models"
)

// Action enumerates everything the policy can decide on.
type Action string

const (
	ViewProject    Action = "view_project"
	AddProject     Action = "add_project"
	MarkCompleted  Action = "mark_completed"
	DeleteProject  Action = "delete_project"
	AssignTeam     Action = "assign_team"
	UploadDocument Action = "upload_document"
	ManageUsers    Action = "manage_users"
	RegisterUser   Action = "register_user"
	ViewAuditLog   Action = "view_audit_log"
)

// Can decides whether actor may perform action on project. Actions that are
// not project-scoped (AddProject, ManageUsers, RegisterUser) ignore the
// project argument and accept nil.
func Can(actor *models.User, action Action, project *models.Project) bool {
	if actor == nil {
		return false
	}

	switch action {
	case ViewProject:
		return canViewProject(actor, project)
	case AssignTeam, UploadDocument:
		return canManageProject(actor, project)
	case AddProject, MarkCompleted, DeleteProject, ManageUsers, RegisterUser, ViewAuditLog:
		return actor.Role == models.RoleAdmin
	}
	return false
}

// CanViewDocument applies the project viewing rule to the document's parent
// project. Documents are never globally browsable.
func CanViewDocument(actor *models.User, doc *models.Document) bool {
	if actor == nil || doc == nil || doc.Project == nil {
		return false
	}
	return canViewProject(actor, doc.Project)
}

// CanDeleteUser permits admins to delete any account except their own.
func CanDeleteUser(actor, target *models.User) bool {
	if actor == nil || target == nil {
		return false
	}
	if actor.Role != models.RoleAdmin {
		return false
	}
	return actor.ID != target.ID
}

func canViewProject(actor *models.User, p *models.Project) bool {
	if p == nil {
		return false
	}
	switch actor.Role {
	case models.RoleAdmin:
		return true
	case models.RoleProjectLead:
		return p.LedBy(actor.ID)
	case models.RoleDeveloper:
		return p.HasDeveloper(actor.ID)
	}
	return false
}

func canManageProject(actor *models.User, p *models.Project) bool {
	if p == nil {
		return false
	}
	switch actor.Role {
	case models.RoleAdmin:
		return true
	case models.RoleProjectLead:
		return p.LedBy(actor.ID)
	case models.RoleDeveloper:
		return false
	}
	return false
}
