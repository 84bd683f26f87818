package tasks_dto

import (
	"time"

	tasks_models "huddle/internal/features/tasks/models"

	"github.com/google/uuid"
)

type CreateTaskRequestDTO struct {
	Title          string     `json:"title" binding:"required,min=1,max=255"`
	Description    string     `json:"description" binding:"max=10000"`
	Priority       string     `json:"priority"`
	AssigneeID     *uuid.UUID `json:"assigneeId"`
	MilestoneID    *uuid.UUID `json:"milestoneId"`
	DueDate        *time.Time `json:"dueDate"`
	EstimatedHours *float64   `json:"estimatedHours"`
}

type UpdateTaskRequestDTO struct {
	Title          *string    `json:"title"`
	Description    *string    `json:"description"`
	Priority       *string    `json:"priority"`
	AssigneeID     *uuid.UUID `json:"assigneeId"`
	ClearAssignee  bool       `json:"clearAssignee"`
	MilestoneID    *uuid.UUID `json:"milestoneId"`
	ClearMilestone bool       `json:"clearMilestone"`
	DueDate        *time.Time `json:"dueDate"`
	EstimatedHours *float64   `json:"estimatedHours"`
}

type MoveTaskRequestDTO struct {
	Status string `json:"status" binding:"required"`
}

type ListTasksResponseDTO struct {
	Tasks []*tasks_models.Task `json:"tasks"`
	Total int64                `json:"total"`
}

type CreateMilestoneRequestDTO struct {
	Title   string     `json:"title" binding:"required,min=1,max=255"`
	DueDate *time.Time `json:"dueDate"`
}

type ListMilestonesResponseDTO struct {
	Milestones []*tasks_models.Milestone `json:"milestones"`
}

// TaskUpdatedDTO is the payload of the taskUpdated event. Action tells
// clients whether to insert, patch or drop the task from their board.
type TaskUpdatedDTO struct {
	Action string             `json:"action"`
	Task   *tasks_models.Task `json:"task"`
}

const (
	TaskActionCreated  = "created"
	TaskActionUpdated  = "updated"
	TaskActionMoved    = "moved"
	TaskActionTrashed  = "trashed"
	TaskActionRestored = "restored"
)
