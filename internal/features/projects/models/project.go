package projects_models

import (
	"time"

	"github.com/google/uuid"
)

type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusCompleted ProjectStatus = "completed"
)

func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectStatusActive, ProjectStatusCompleted:
		return true
	default:
		return false
	}
}

type Project struct {
	ID          uuid.UUID     `json:"id"          gorm:"column:id"`
	Title       string        `json:"title"       gorm:"column:title"`
	Description string        `json:"description" gorm:"column:description"`
	Status      ProjectStatus `json:"status"      gorm:"column:status"`
	CreatorID   uuid.UUID     `json:"creatorId"   gorm:"column:creator_id"`
	CreatedAt   time.Time     `json:"createdAt"   gorm:"column:created_at"`
	DeletedAt   *time.Time    `json:"deletedAt"   gorm:"column:deleted_at"`
}

func (Project) TableName() string {
	return "projects"
}

func (p *Project) IsTrashed() bool {
	return p.DeletedAt != nil
}
