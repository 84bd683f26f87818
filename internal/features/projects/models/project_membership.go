package projects_models

import (
	"time"

	"github.com/google/uuid"
)

// ProjectMembership carries six independent capability flags per member.
// The project creator is not subject to them: creator status is resolved
// from projects.creator_id and always grants full access.
type ProjectMembership struct {
	ID        uuid.UUID `json:"id"        gorm:"column:id"`
	UserID    uuid.UUID `json:"userId"    gorm:"column:user_id"`
	ProjectID uuid.UUID `json:"projectId" gorm:"column:project_id"`
	RoleLabel string    `json:"roleLabel" gorm:"column:role_label"`

	CanManageTasks       bool `json:"canManageTasks"       gorm:"column:can_manage_tasks"`
	CanManageFiles       bool `json:"canManageFiles"       gorm:"column:can_manage_files"`
	CanChat              bool `json:"canChat"              gorm:"column:can_chat"`
	CanChangeProjectName bool `json:"canChangeProjectName" gorm:"column:can_change_project_name"`
	CanAddMembers        bool `json:"canAddMembers"        gorm:"column:can_add_members"`

	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`
}

func (ProjectMembership) TableName() string {
	return "project_memberships"
}
