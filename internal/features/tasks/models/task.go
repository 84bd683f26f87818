package tasks_models

import (
	"time"

	"github.com/google/uuid"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
)

// IsValid accepts the three workflow states. Transitions between them are
// unrestricted, so completed tasks can be reopened.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusCompleted:
		return true
	default:
		return false
	}
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "LOW"
	TaskPriorityMedium TaskPriority = "MEDIUM"
	TaskPriorityHigh   TaskPriority = "HIGH"
)

func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	default:
		return false
	}
}

type Task struct {
	ID             uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID      uuid.UUID    `gorm:"type:uuid;not null;index" json:"projectId"`
	CreatorID      uuid.UUID    `gorm:"type:uuid;not null" json:"creatorId"`
	Title          string       `gorm:"type:varchar(255);not null" json:"title"`
	Description    string       `gorm:"type:text" json:"description"`
	Status         TaskStatus   `gorm:"type:varchar(32);not null" json:"status"`
	Priority       TaskPriority `gorm:"type:varchar(32);not null" json:"priority"`
	AssigneeID     *uuid.UUID   `gorm:"type:uuid;index" json:"assigneeId,omitempty"`
	MilestoneID    *uuid.UUID   `gorm:"type:uuid" json:"milestoneId,omitempty"`
	DueDate        *time.Time   `json:"dueDate,omitempty"`
	EstimatedHours *float64     `json:"estimatedHours,omitempty"`
	CreatedAt      time.Time    `gorm:"not null" json:"createdAt"`
	UpdatedAt      time.Time    `gorm:"not null" json:"updatedAt"`
	DeletedAt      *time.Time   `gorm:"index" json:"deletedAt,omitempty"`
}

func (Task) TableName() string {
	return "tasks"
}

func (t *Task) IsTrashed() bool {
	return t.DeletedAt != nil
}
