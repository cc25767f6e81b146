package dto

// AddProjectForm is the admin-only project creation form.
type AddProjectForm struct {
	Name        string `form:"name" json:"name" binding:"required,min=2,max=128"`
	Description string `form:"description" json:"description"`
	Deadline    string `form:"deadline" json:"deadline" binding:"required,datetime=2006-01-02"`
	LeadID      uint   `form:"lead_id" json:"lead_id" binding:"required"`
}

// AssignTeamForm adds one developer to a project's team.
type AssignTeamForm struct {
	DeveloperID uint `form:"developer_id" json:"developer_id" binding:"required"`
}

// ProjectSummary is the dashboard list view-model.
type ProjectSummary struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Deadline    string `json:"deadline"`
	IsCompleted bool   `json:"is_completed"`
	LeadName    string `json:"lead_name,omitempty"`
}

// ProjectDetails is the single-project view-model.
type ProjectDetails struct {
	ID          uint              `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Deadline    string            `json:"deadline"`
	IsCompleted bool              `json:"is_completed"`
	Lead        *UserInfo         `json:"lead,omitempty"`
	Developers  []UserInfo        `json:"developers"`
	Documents   []DocumentSummary `json:"documents"`
}
