package projects_models

import (
	"time"

	"github.com/google/uuid"
)

type ProjectInvitation struct {
	ID        uuid.UUID  `json:"id"        gorm:"column:id"`
	ProjectID uuid.UUID  `json:"projectId" gorm:"column:project_id"`
	Email     string     `json:"email"     gorm:"column:email"`
	Token     string     `json:"-"         gorm:"column:token"`
	RoleLabel string     `json:"roleLabel" gorm:"column:role_label"`

	CanManageTasks       bool `json:"canManageTasks"       gorm:"column:can_manage_tasks"`
	CanManageFiles       bool `json:"canManageFiles"       gorm:"column:can_manage_files"`
	CanChat              bool `json:"canChat"              gorm:"column:can_chat"`
	CanChangeProjectName bool `json:"canChangeProjectName" gorm:"column:can_change_project_name"`
	CanAddMembers        bool `json:"canAddMembers"        gorm:"column:can_add_members"`

	CreatedAt  time.Time  `json:"createdAt"  gorm:"column:created_at"`
	AcceptedAt *time.Time `json:"acceptedAt" gorm:"column:accepted_at"`
}

func (ProjectInvitation) TableName() string {
	return "project_invitations"
}
