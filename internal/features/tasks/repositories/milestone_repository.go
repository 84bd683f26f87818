package tasks_repositories

import (
	"errors"
	"time"

	tasks_models "huddle/internal/features/tasks/models"
	"huddle/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MilestoneRepository struct{}

func (r *MilestoneRepository) CreateMilestone(milestone *tasks_models.Milestone) error {
	if milestone.ID == uuid.Nil {
		milestone.ID = uuid.New()
	}

	if milestone.CreatedAt.IsZero() {
		milestone.CreatedAt = time.Now().UTC()
	}

	return storage.GetDb().Create(milestone).Error
}

func (r *MilestoneRepository) GetMilestoneByID(milestoneID uuid.UUID) (*tasks_models.Milestone, error) {
	var milestone tasks_models.Milestone

	if err := storage.GetDb().
		Where("id = ?", milestoneID).
		First(&milestone).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &milestone, nil
}

func (r *MilestoneRepository) GetProjectMilestones(projectID uuid.UUID) ([]*tasks_models.Milestone, error) {
	milestones := make([]*tasks_models.Milestone, 0)

	err := storage.GetDb().
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&milestones).Error

	return milestones, err
}
