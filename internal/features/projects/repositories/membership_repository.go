package projects_repositories

import (
	"errors"
	"time"

	projects_models "huddle/internal/features/projects/models"
	"huddle/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MembershipRepository struct{}

type ProjectMemberRow struct {
	ID                   uuid.UUID `gorm:"column:id"`
	UserID               uuid.UUID `gorm:"column:user_id"`
	Email                string    `gorm:"column:email"`
	DisplayName          string    `gorm:"column:display_name"`
	RoleLabel            string    `gorm:"column:role_label"`
	CanManageTasks       bool      `gorm:"column:can_manage_tasks"`
	CanManageFiles       bool      `gorm:"column:can_manage_files"`
	CanChat              bool      `gorm:"column:can_chat"`
	CanChangeProjectName bool      `gorm:"column:can_change_project_name"`
	CanAddMembers        bool      `gorm:"column:can_add_members"`
	CreatedAt            time.Time `gorm:"column:created_at"`
}

func (r *MembershipRepository) CreateMembership(membership *projects_models.ProjectMembership) error {
	if membership.ID == uuid.Nil {
		membership.ID = uuid.New()
	}

	if membership.CreatedAt.IsZero() {
		membership.CreatedAt = time.Now().UTC()
	}

	return storage.GetDb().Create(membership).Error
}

func (r *MembershipRepository) GetMembershipByUserAndProject(
	userID, projectID uuid.UUID,
) (*projects_models.ProjectMembership, error) {
	var membership projects_models.ProjectMembership

	if err := storage.GetDb().
		Where("user_id = ? AND project_id = ?", userID, projectID).
		First(&membership).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &membership, nil
}

func (r *MembershipRepository) GetProjectMembers(projectID uuid.UUID) ([]*ProjectMemberRow, error) {
	members := make([]*ProjectMemberRow, 0)

	err := storage.GetDb().
		Table("project_memberships pm").
		Select(`pm.id, pm.user_id, u.email, u.display_name, pm.role_label,
			pm.can_manage_tasks, pm.can_manage_files, pm.can_chat,
			pm.can_change_project_name, pm.can_add_members, pm.created_at`).
		Joins("JOIN users u ON pm.user_id = u.id").
		Where("pm.project_id = ?", projectID).
		Order("pm.created_at ASC").
		Scan(&members).Error

	return members, err
}

func (r *MembershipRepository) GetMemberUserIDs(projectID uuid.UUID) ([]uuid.UUID, error) {
	var userIDs []uuid.UUID

	err := storage.GetDb().
		Model(&projects_models.ProjectMembership{}).
		Where("project_id = ?", projectID).
		Pluck("user_id", &userIDs).Error

	return userIDs, err
}

func (r *MembershipRepository) UpdateMemberPermissions(
	userID, projectID uuid.UUID,
	roleLabel string,
	canManageTasks, canManageFiles, canChat, canChangeProjectName, canAddMembers bool,
) error {
	return storage.GetDb().
		Model(&projects_models.ProjectMembership{}).
		Where("user_id = ? AND project_id = ?", userID, projectID).
		Updates(map[string]any{
			"role_label":              roleLabel,
			"can_manage_tasks":        canManageTasks,
			"can_manage_files":        canManageFiles,
			"can_chat":                canChat,
			"can_change_project_name": canChangeProjectName,
			"can_add_members":         canAddMembers,
		}).Error
}

func (r *MembershipRepository) RemoveMember(userID, projectID uuid.UUID) error {
	return storage.GetDb().
		Where("user_id = ? AND project_id = ?", userID, projectID).
		Delete(&projects_models.ProjectMembership{}).Error
}
