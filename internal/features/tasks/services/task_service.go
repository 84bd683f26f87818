package tasks_services

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	audit_logs "huddle/internal/features/audit_logs"
	projects_permissions "huddle/internal/features/projects/permissions"
	projects_repositories "huddle/internal/features/projects/repositories"
	"huddle/internal/features/realtime"
	tasks_dto "huddle/internal/features/tasks/dto"
	tasks_models "huddle/internal/features/tasks/models"
	tasks_repositories "huddle/internal/features/tasks/repositories"
	users_models "huddle/internal/features/users/models"

	"github.com/google/uuid"
)

type TaskService struct {
	taskRepository       *tasks_repositories.TaskRepository
	milestoneRepository  *tasks_repositories.MilestoneRepository
	membershipRepository *projects_repositories.MembershipRepository
	resolver             *projects_permissions.Resolver
	hub                  *realtime.Hub
	auditLogService      *audit_logs.AuditLogService
	logger               *slog.Logger

	assignmentNotifier AssignmentNotifier
}

// AssignmentNotifier is implemented by the notifications feature.
type AssignmentNotifier interface {
	NotifyTaskAssigned(projectID, assigneeID uuid.UUID, assigner *users_models.User, taskTitle string) error
}

func NewTaskService(
	taskRepository *tasks_repositories.TaskRepository,
	milestoneRepository *tasks_repositories.MilestoneRepository,
	membershipRepository *projects_repositories.MembershipRepository,
	resolver *projects_permissions.Resolver,
	hub *realtime.Hub,
	auditLogService *audit_logs.AuditLogService,
	logger *slog.Logger,
) *TaskService {
	return &TaskService{
		taskRepository:       taskRepository,
		milestoneRepository:  milestoneRepository,
		membershipRepository: membershipRepository,
		resolver:             resolver,
		hub:                  hub,
		auditLogService:      auditLogService,
		logger:               logger,
	}
}

func (s *TaskService) SetAssignmentNotifier(notifier AssignmentNotifier) {
	s.assignmentNotifier = notifier
}

func (s *TaskService) CreateTask(
	projectID uuid.UUID,
	request *tasks_dto.CreateTaskRequestDTO,
	user *users_models.User,
) (*tasks_models.Task, error) {
	capabilities := s.resolver.Resolve(projectID, user.ID)
	if !s.canManageTasks(capabilities) {
		return nil, fmt.Errorf("you do not have permission to manage tasks in this project")
	}

	title, err := validateTitle(request.Title)
	if err != nil {
		return nil, err
	}

	if err := validateEstimatedHours(request.EstimatedHours); err != nil {
		return nil, err
	}

	priority, err := parsePriority(request.Priority)
	if err != nil {
		return nil, err
	}

	if err := s.validateAssignee(projectID, request.AssigneeID); err != nil {
		return nil, err
	}

	if err := s.validateMilestone(projectID, request.MilestoneID); err != nil {
		return nil, err
	}

	task := &tasks_models.Task{
		ProjectID:      projectID,
		CreatorID:      user.ID,
		Title:          title,
		Description:    strings.TrimSpace(request.Description),
		Status:         tasks_models.TaskStatusTodo,
		Priority:       priority,
		AssigneeID:     request.AssigneeID,
		MilestoneID:    request.MilestoneID,
		DueDate:        request.DueDate,
		EstimatedHours: request.EstimatedHours,
	}

	if err := s.taskRepository.CreateTask(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.broadcastTask(tasks_dto.TaskActionCreated, task)
	s.notifyAssignment(task, nil, user)

	return task, nil
}

func (s *TaskService) UpdateTask(
	taskID uuid.UUID,
	request *tasks_dto.UpdateTaskRequestDTO,
	user *users_models.User,
) (*tasks_models.Task, error) {
	task, err := s.getLiveTask(taskID)
	if err != nil {
		return nil, err
	}

	capabilities := s.resolver.Resolve(task.ProjectID, user.ID)
	if !s.canManageTasks(capabilities) {
		return nil, fmt.Errorf("you do not have permission to manage tasks in this project")
	}

	previousAssignee := task.AssigneeID

	if request.Title != nil {
		title, err := validateTitle(*request.Title)
		if err != nil {
			return nil, err
		}
		task.Title = title
	}

	if request.Description != nil {
		task.Description = strings.TrimSpace(*request.Description)
	}

	if request.Priority != nil {
		priority, err := parsePriority(*request.Priority)
		if err != nil {
			return nil, err
		}
		task.Priority = priority
	}

	if request.EstimatedHours != nil {
		if err := validateEstimatedHours(request.EstimatedHours); err != nil {
			return nil, err
		}
		task.EstimatedHours = request.EstimatedHours
	}

	if request.DueDate != nil {
		task.DueDate = request.DueDate
	}

	if request.ClearAssignee {
		task.AssigneeID = nil
	} else if request.AssigneeID != nil {
		if err := s.validateAssignee(task.ProjectID, request.AssigneeID); err != nil {
			return nil, err
		}
		task.AssigneeID = request.AssigneeID
	}

	if request.ClearMilestone {
		task.MilestoneID = nil
	} else if request.MilestoneID != nil {
		if err := s.validateMilestone(task.ProjectID, request.MilestoneID); err != nil {
			return nil, err
		}
		task.MilestoneID = request.MilestoneID
	}

	if err := s.taskRepository.UpdateTask(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.broadcastTask(tasks_dto.TaskActionUpdated, task)
	s.notifyAssignment(task, previousAssignee, user)

	return task, nil
}

// MoveTask changes the workflow status. Any state can move to any other
// state.
func (s *TaskService) MoveTask(
	taskID uuid.UUID,
	rawStatus string,
	user *users_models.User,
) (*tasks_models.Task, error) {
	task, err := s.getLiveTask(taskID)
	if err != nil {
		return nil, err
	}

	capabilities := s.resolver.Resolve(task.ProjectID, user.ID)
	if !s.canManageTasks(capabilities) {
		return nil, fmt.Errorf("you do not have permission to manage tasks in this project")
	}

	status, err := parseStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	if task.Status == status {
		return task, nil
	}

	task.Status = status
	if err := s.taskRepository.UpdateTask(task); err != nil {
		return nil, fmt.Errorf("failed to move task: %w", err)
	}

	s.broadcastTask(tasks_dto.TaskActionMoved, task)
	return task, nil
}

// MoveToTrash soft deletes a task. Only the project creator can do this;
// members with the manage tasks flag can edit but not delete.
func (s *TaskService) MoveToTrash(taskID uuid.UUID, user *users_models.User) error {
	task, err := s.getLiveTask(taskID)
	if err != nil {
		return err
	}

	capabilities := s.resolver.Resolve(task.ProjectID, user.ID)
	if !capabilities.IsCreator {
		return fmt.Errorf("only the project creator can delete tasks")
	}

	if err := s.taskRepository.MoveToTrash(task.ID); err != nil {
		return fmt.Errorf("failed to move task to trash: %w", err)
	}

	now := time.Now().UTC()
	task.DeletedAt = &now

	s.broadcastTask(tasks_dto.TaskActionTrashed, task)
	s.auditLogService.WriteAuditLog("Task moved to trash", &user.ID, &task.ProjectID)

	return nil
}

func (s *TaskService) RestoreFromTrash(taskID uuid.UUID, user *users_models.User) error {
	task, err := s.taskRepository.GetTaskByID(taskID)
	if err != nil {
		return fmt.Errorf("failed to load task: %w", err)
	}
	if task == nil || !task.IsTrashed() {
		return fmt.Errorf("task not found in trash")
	}

	capabilities := s.resolver.Resolve(task.ProjectID, user.ID)
	if !capabilities.IsCreator {
		return fmt.Errorf("only the project creator can restore tasks")
	}

	if err := s.taskRepository.RestoreFromTrash(task.ID); err != nil {
		return fmt.Errorf("failed to restore task: %w", err)
	}

	task.DeletedAt = nil
	s.broadcastTask(tasks_dto.TaskActionRestored, task)
	s.auditLogService.WriteAuditLog("Task restored from trash", &user.ID, &task.ProjectID)

	return nil
}

func (s *TaskService) GetProjectTasks(
	projectID uuid.UUID,
	user *users_models.User,
) (*tasks_dto.ListTasksResponseDTO, error) {
	capabilities := s.resolver.Resolve(projectID, user.ID)
	if !capabilities.HasAny() {
		return nil, fmt.Errorf("you do not have access to this project")
	}

	tasks, total, err := s.taskRepository.GetProjectTasks(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	return &tasks_dto.ListTasksResponseDTO{Tasks: tasks, Total: total}, nil
}

func (s *TaskService) GetTrashedTasks(
	projectID uuid.UUID,
	user *users_models.User,
) (*tasks_dto.ListTasksResponseDTO, error) {
	capabilities := s.resolver.Resolve(projectID, user.ID)
	if !capabilities.IsCreator {
		return nil, fmt.Errorf("only the project creator can view the task trash")
	}

	tasks, err := s.taskRepository.GetTrashedProjectTasks(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load trashed tasks: %w", err)
	}

	return &tasks_dto.ListTasksResponseDTO{Tasks: tasks, Total: int64(len(tasks))}, nil
}

func (s *TaskService) CreateMilestone(
	projectID uuid.UUID,
	request *tasks_dto.CreateMilestoneRequestDTO,
	user *users_models.User,
) (*tasks_models.Milestone, error) {
	capabilities := s.resolver.Resolve(projectID, user.ID)
	if !s.canManageTasks(capabilities) {
		return nil, fmt.Errorf("you do not have permission to manage tasks in this project")
	}

	title, err := validateTitle(request.Title)
	if err != nil {
		return nil, err
	}

	milestone := &tasks_models.Milestone{
		ProjectID: projectID,
		Title:     title,
		DueDate:   request.DueDate,
	}

	if err := s.milestoneRepository.CreateMilestone(milestone); err != nil {
		return nil, fmt.Errorf("failed to create milestone: %w", err)
	}

	return milestone, nil
}

func (s *TaskService) GetProjectMilestones(
	projectID uuid.UUID,
	user *users_models.User,
) (*tasks_dto.ListMilestonesResponseDTO, error) {
	capabilities := s.resolver.Resolve(projectID, user.ID)
	if !capabilities.HasAny() {
		return nil, fmt.Errorf("you do not have access to this project")
	}

	milestones, err := s.milestoneRepository.GetProjectMilestones(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load milestones: %w", err)
	}

	return &tasks_dto.ListMilestonesResponseDTO{Milestones: milestones}, nil
}

// OnMemberRemoved clears task assignments of a removed member so their
// board columns do not point at someone outside the project.
func (s *TaskService) OnMemberRemoved(projectID, userID uuid.UUID) error {
	unassigned, err := s.taskRepository.UnassignUserTasks(projectID, userID)
	if err != nil {
		return fmt.Errorf("failed to unassign tasks of removed member: %w", err)
	}

	if unassigned > 0 {
		s.logger.Info("unassigned tasks of removed member",
			slog.String("projectId", projectID.String()),
			slog.String("userId", userID.String()),
			slog.Int64("count", unassigned))
	}

	return nil
}

func (s *TaskService) canManageTasks(capabilities projects_permissions.Capabilities) bool {
	return capabilities.CanManageTasks || capabilities.IsCreator
}

func (s *TaskService) getLiveTask(taskID uuid.UUID) (*tasks_models.Task, error) {
	task, err := s.taskRepository.GetTaskByID(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to load task: %w", err)
	}
	if task == nil || task.IsTrashed() {
		return nil, fmt.Errorf("task not found")
	}

	return task, nil
}

func (s *TaskService) validateAssignee(projectID uuid.UUID, assigneeID *uuid.UUID) error {
	if assigneeID == nil {
		return nil
	}

	membership, err := s.membershipRepository.GetMembershipByUserAndProject(*assigneeID, projectID)
	if err != nil {
		return fmt.Errorf("failed to check assignee membership: %w", err)
	}
	if membership == nil {
		return fmt.Errorf("assignee must be a member of the project")
	}

	return nil
}

func (s *TaskService) validateMilestone(projectID uuid.UUID, milestoneID *uuid.UUID) error {
	if milestoneID == nil {
		return nil
	}

	milestone, err := s.milestoneRepository.GetMilestoneByID(*milestoneID)
	if err != nil {
		return fmt.Errorf("failed to check milestone: %w", err)
	}
	if milestone == nil || milestone.ProjectID != projectID {
		return fmt.Errorf("milestone does not belong to this project")
	}

	return nil
}

func (s *TaskService) broadcastTask(action string, task *tasks_models.Task) {
	payload, err := realtime.EncodeEvent(realtime.EventTaskUpdated, tasks_dto.TaskUpdatedDTO{
		Action: action,
		Task:   task,
	})
	if err != nil {
		s.logger.Error("failed to encode task event", slog.Any("error", err))
		return
	}

	s.hub.BroadcastToRoom(task.ProjectID, payload)
}

func (s *TaskService) notifyAssignment(
	task *tasks_models.Task,
	previousAssignee *uuid.UUID,
	actor *users_models.User,
) {
	if s.assignmentNotifier == nil || task.AssigneeID == nil {
		return
	}

	if previousAssignee != nil && *previousAssignee == *task.AssigneeID {
		return
	}

	if err := s.assignmentNotifier.NotifyTaskAssigned(task.ProjectID, *task.AssigneeID, actor, task.Title); err != nil {
		s.logger.Error("assignment notification failed",
			slog.String("taskId", task.ID.String()),
			slog.Any("error", err))
	}
}
