package tasks_models

import (
	"time"

	"github.com/google/uuid"
)

type Milestone struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID uuid.UUID  `gorm:"type:uuid;not null;index" json:"projectId"`
	Title     string     `gorm:"type:varchar(255);not null" json:"title"`
	DueDate   *time.Time `json:"dueDate,omitempty"`
	CreatedAt time.Time  `gorm:"not null" json:"createdAt"`
}

func (Milestone) TableName() string {
	return "milestones"
}
