package projects_dto

import (
	"time"

	projects_models "huddle/internal/features/projects/models"

	"github.com/google/uuid"
)

type CreateProjectRequestDTO struct {
	Title       string `json:"title"       binding:"required"`
	Description string `json:"description"`
}

type UpdateProjectRequestDTO struct {
	Title       string                        `json:"title"       binding:"required"`
	Description string                        `json:"description"`
	Status      projects_models.ProjectStatus `json:"status"      binding:"required"`
}

type ProjectResponseDTO struct {
	ID          uuid.UUID                     `json:"id"`
	Title       string                        `json:"title"`
	Description string                        `json:"description"`
	Status      projects_models.ProjectStatus `json:"status"`
	CreatorID   uuid.UUID                     `json:"creatorId"`
	CreatedAt   time.Time                     `json:"createdAt"`
	DeletedAt   *time.Time                    `json:"deletedAt,omitempty"`
}

type ListProjectsResponseDTO struct {
	Projects []ProjectResponseDTO `json:"projects"`
}

type CapabilityFlagsDTO struct {
	CanManageTasks       bool `json:"canManageTasks"`
	CanManageFiles       bool `json:"canManageFiles"`
	CanChat              bool `json:"canChat"`
	CanChangeProjectName bool `json:"canChangeProjectName"`
	CanAddMembers        bool `json:"canAddMembers"`
}

type AddMemberRequestDTO struct {
	Email     string             `json:"email"     binding:"required,email"`
	RoleLabel string             `json:"roleLabel"`
	Flags     CapabilityFlagsDTO `json:"flags"`
}

type AddMemberStatus string

const (
	AddStatusAdded   AddMemberStatus = "added"
	AddStatusInvited AddMemberStatus = "invited"
)

type AddMemberResponseDTO struct {
	Status AddMemberStatus `json:"status"`
}

type UpdateMemberPermissionsRequestDTO struct {
	RoleLabel string             `json:"roleLabel"`
	Flags     CapabilityFlagsDTO `json:"flags"`
}

type ProjectMemberResponseDTO struct {
	ID          uuid.UUID          `json:"id"`
	UserID      uuid.UUID          `json:"userId"`
	Email       string             `json:"email"`
	DisplayName string             `json:"displayName"`
	RoleLabel   string             `json:"roleLabel"`
	IsCreator   bool               `json:"isCreator"`
	Flags       CapabilityFlagsDTO `json:"flags"`
	CreatedAt   time.Time          `json:"createdAt"`
}

type GetMembersResponseDTO struct {
	Members []ProjectMemberResponseDTO `json:"members"`
}

type AcceptInvitationRequestDTO struct {
	Token string `json:"token" binding:"required"`
}
