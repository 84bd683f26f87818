package tasks_repositories

import (
	"errors"
	"time"

	tasks_models "huddle/internal/features/tasks/models"
	"huddle/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskRepository struct{}

func (r *TaskRepository) CreateTask(task *tasks_models.Task) error {
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}

	now := time.Now().UTC()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}
	task.UpdatedAt = now

	return storage.GetDb().Create(task).Error
}

func (r *TaskRepository) GetTaskByID(taskID uuid.UUID) (*tasks_models.Task, error) {
	var task tasks_models.Task

	if err := storage.GetDb().
		Where("id = ?", taskID).
		First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &task, nil
}

func (r *TaskRepository) UpdateTask(task *tasks_models.Task) error {
	task.UpdatedAt = time.Now().UTC()
	return storage.GetDb().Save(task).Error
}

// GetProjectTasks returns live tasks for the project's board.
func (r *TaskRepository) GetProjectTasks(projectID uuid.UUID) ([]*tasks_models.Task, int64, error) {
	tasks := make([]*tasks_models.Task, 0)

	err := storage.GetDb().
		Where("project_id = ? AND deleted_at IS NULL", projectID).
		Order("created_at ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, 0, err
	}

	return tasks, int64(len(tasks)), nil
}

func (r *TaskRepository) GetTrashedProjectTasks(projectID uuid.UUID) ([]*tasks_models.Task, error) {
	tasks := make([]*tasks_models.Task, 0)

	err := storage.GetDb().
		Where("project_id = ? AND deleted_at IS NOT NULL", projectID).
		Order("deleted_at DESC").
		Find(&tasks).Error

	return tasks, err
}

func (r *TaskRepository) MoveToTrash(taskID uuid.UUID) error {
	now := time.Now().UTC()

	return storage.GetDb().
		Model(&tasks_models.Task{}).
		Where("id = ? AND deleted_at IS NULL", taskID).
		Updates(map[string]any{"deleted_at": now, "updated_at": now}).Error
}

func (r *TaskRepository) RestoreFromTrash(taskID uuid.UUID) error {
	return storage.GetDb().
		Model(&tasks_models.Task{}).
		Where("id = ? AND deleted_at IS NOT NULL", taskID).
		Updates(map[string]any{"deleted_at": nil, "updated_at": time.Now().UTC()}).Error
}

// UnassignUserTasks clears the assignee on every live task of the user in
// one project. Used when a member is removed.
func (r *TaskRepository) UnassignUserTasks(projectID, userID uuid.UUID) (int64, error) {
	result := storage.GetDb().
		Model(&tasks_models.Task{}).
		Where("project_id = ? AND assignee_id = ? AND deleted_at IS NULL", projectID, userID).
		Updates(map[string]any{"assignee_id": nil, "updated_at": time.Now().UTC()})

	return result.RowsAffected, result.Error
}

// PurgeTrashedBefore permanently deletes tasks trashed before the cutoff.
// Tasks trashed by a project cascade are purged with their project
// instead.
func (r *TaskRepository) PurgeTrashedBefore(cutoff time.Time) (int64, error) {
	result := storage.GetDb().
		Where("deleted_at IS NOT NULL AND deleted_at < ?", cutoff).
		Delete(&tasks_models.Task{})

	return result.RowsAffected, result.Error
}
