package projects_repositories

import (
	"time"

	projects_models "huddle/internal/features/projects/models"
	"huddle/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectRepository struct{}

func (r *ProjectRepository) CreateProject(project *projects_models.Project) error {
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}

	if project.CreatedAt.IsZero() {
		project.CreatedAt = time.Now().UTC()
	}

	return storage.GetDb().Create(project).Error
}

func (r *ProjectRepository) GetProjectByID(projectID uuid.UUID) (*projects_models.Project, error) {
	var project projects_models.Project

	if err := storage.GetDb().Where("id = ?", projectID).First(&project).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}

		return nil, err
	}

	return &project, nil
}

func (r *ProjectRepository) UpdateProject(project *projects_models.Project) error {
	return storage.GetDb().Model(&projects_models.Project{}).
		Where("id = ?", project.ID).
		Updates(map[string]any{
			"title":       project.Title,
			"description": project.Description,
			"status":      project.Status,
		}).Error
}

func (r *ProjectRepository) GetProjectsForUser(userID uuid.UUID) ([]*projects_models.Project, error) {
	projects := make([]*projects_models.Project, 0)

	err := storage.GetDb().
		Table("projects p").
		Select("p.*").
		Joins("JOIN project_memberships pm ON p.id = pm.project_id").
		Where("pm.user_id = ? AND p.deleted_at IS NULL", userID).
		Order("p.title ASC").
		Scan(&projects).Error

	return projects, err
}

func (r *ProjectRepository) GetTrashedProjectsForCreator(creatorID uuid.UUID) ([]*projects_models.Project, error) {
	projects := make([]*projects_models.Project, 0)

	err := storage.GetDb().
		Where("creator_id = ? AND deleted_at IS NOT NULL", creatorID).
		Order("deleted_at DESC").
		Find(&projects).Error

	return projects, err
}

func (r *ProjectRepository) MoveToTrash(projectID uuid.UUID) error {
	now := time.Now().UTC()

	return storage.GetDb().Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&projects_models.Project{}).
			Where("id = ?", projectID).
			Update("deleted_at", now).Error; err != nil {
			return err
		}

		// Cascade: project tasks follow the project into trash
		return tx.Exec(
			"UPDATE tasks SET deleted_at = ? WHERE project_id = ? AND deleted_at IS NULL",
			now, projectID,
		).Error
	})
}

func (r *ProjectRepository) RestoreFromTrash(projectID uuid.UUID) error {
	return storage.GetDb().Transaction(func(tx *gorm.DB) error {
		var project projects_models.Project
		if err := tx.Where("id = ?", projectID).First(&project).Error; err != nil {
			return err
		}

		if project.DeletedAt == nil {
			return nil
		}

		if err := tx.Model(&projects_models.Project{}).
			Where("id = ?", projectID).
			Update("deleted_at", nil).Error; err != nil {
			return err
		}

		// Only restore tasks trashed together with the project
		return tx.Exec(
			"UPDATE tasks SET deleted_at = NULL WHERE project_id = ? AND deleted_at = ?",
			projectID, *project.DeletedAt,
		).Error
	})
}

func (r *ProjectRepository) GetTrashedProjectIDsBefore(cutoff time.Time) ([]uuid.UUID, error) {
	var projectIDs []uuid.UUID

	err := storage.GetDb().
		Model(&projects_models.Project{}).
		Where("deleted_at IS NOT NULL AND deleted_at < ?", cutoff).
		Pluck("id", &projectIDs).Error

	return projectIDs, err
}

// PurgeProject permanently removes a project and everything it owns.
func (r *ProjectRepository) PurgeProject(projectID uuid.UUID) error {
	return storage.GetDb().Transaction(func(tx *gorm.DB) error {
		statements := []string{
			"DELETE FROM reactions WHERE message_id IN (SELECT id FROM messages WHERE project_id = ?)",
			"DELETE FROM messages WHERE project_id = ?",
			"DELETE FROM tasks WHERE project_id = ?",
			"DELETE FROM milestones WHERE project_id = ?",
			"DELETE FROM project_invitations WHERE project_id = ?",
			"DELETE FROM project_memberships WHERE project_id = ?",
			"DELETE FROM projects WHERE id = ?",
		}

		for _, statement := range statements {
			if err := tx.Exec(statement, projectID).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
