package tasks_controllers

import (
	"net/http"
	"strings"

	tasks_dto "huddle/internal/features/tasks/dto"
	tasks_services "huddle/internal/features/tasks/services"
	users_middleware "huddle/internal/features/users/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TaskController struct {
	taskService *tasks_services.TaskService
}

func (c *TaskController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/projects/:id/tasks", c.GetProjectTasks)
	router.POST("/projects/:id/tasks", c.CreateTask)
	router.GET("/projects/:id/tasks/trash", c.GetTrashedTasks)
	router.GET("/projects/:id/milestones", c.GetProjectMilestones)
	router.POST("/projects/:id/milestones", c.CreateMilestone)

	taskRoutes := router.Group("/tasks")
	taskRoutes.PUT("/:taskId", c.UpdateTask)
	taskRoutes.PUT("/:taskId/status", c.MoveTask)
	taskRoutes.DELETE("/:taskId", c.MoveToTrash)
	taskRoutes.POST("/:taskId/restore", c.RestoreFromTrash)
}

// GetProjectTasks
// @Summary List live tasks of a project
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} tasks_dto.ListTasksResponseDTO
// @Failure 403 {object} map[string]string
// @Router /projects/{id}/tasks [get]
func (c *TaskController) GetProjectTasks(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}

	response, err := c.taskService.GetProjectTasks(projectID, user)
	if err != nil {
		respondTaskError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// CreateTask
// @Summary Create a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param request body tasks_dto.CreateTaskRequestDTO true "Task data"
// @Success 201 {object} tasks_models.Task
// @Failure 403 {object} map[string]string
// @Router /projects/{id}/tasks [post]
func (c *TaskController) CreateTask(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}

	var request tasks_dto.CreateTaskRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	task, err := c.taskService.CreateTask(projectID, &request, user)
	if err != nil {
		respondTaskError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, task)
}

// GetTrashedTasks
// @Summary List trashed tasks of a project
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} tasks_dto.ListTasksResponseDTO
// @Failure 403 {object} map[string]string
// @Router /projects/{id}/tasks/trash [get]
func (c *TaskController) GetTrashedTasks(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}

	response, err := c.taskService.GetTrashedTasks(projectID, user)
	if err != nil {
		respondTaskError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// UpdateTask
// @Summary Update task fields
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param taskId path string true "Task ID"
// @Param request body tasks_dto.UpdateTaskRequestDTO true "Changed fields"
// @Success 200 {object} tasks_models.Task
// @Failure 403 {object} map[string]string
// @Router /tasks/{taskId} [put]
func (c *TaskController) UpdateTask(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	taskID, err := uuid.Parse(ctx.Param("taskId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
		return
	}

	var request tasks_dto.UpdateTaskRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	task, err := c.taskService.UpdateTask(taskID, &request, user)
	if err != nil {
		respondTaskError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, task)
}

// MoveTask
// @Summary Move a task to another status
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param taskId path string true "Task ID"
// @Param request body tasks_dto.MoveTaskRequestDTO true "Target status"
// @Success 200 {object} tasks_models.Task
// @Failure 403 {object} map[string]string
// @Router /tasks/{taskId}/status [put]
func (c *TaskController) MoveTask(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	taskID, err := uuid.Parse(ctx.Param("taskId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
		return
	}

	var request tasks_dto.MoveTaskRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	task, err := c.taskService.MoveTask(taskID, request.Status, user)
	if err != nil {
		respondTaskError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, task)
}

// MoveToTrash
// @Summary Move a task to trash
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param taskId path string true "Task ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /tasks/{taskId} [delete]
func (c *TaskController) MoveToTrash(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	taskID, err := uuid.Parse(ctx.Param("taskId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
		return
	}

	if err := c.taskService.MoveToTrash(taskID, user); err != nil {
		respondTaskError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Task moved to trash"})
}

// RestoreFromTrash
// @Summary Restore a task from trash
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param taskId path string true "Task ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /tasks/{taskId}/restore [post]
func (c *TaskController) RestoreFromTrash(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	taskID, err := uuid.Parse(ctx.Param("taskId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
		return
	}

	if err := c.taskService.RestoreFromTrash(taskID, user); err != nil {
		respondTaskError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Task restored"})
}

// CreateMilestone
// @Summary Create a milestone
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param request body tasks_dto.CreateMilestoneRequestDTO true "Milestone data"
// @Success 201 {object} tasks_models.Milestone
// @Failure 403 {object} map[string]string
// @Router /projects/{id}/milestones [post]
func (c *TaskController) CreateMilestone(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}

	var request tasks_dto.CreateMilestoneRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	milestone, err := c.taskService.CreateMilestone(projectID, &request, user)
	if err != nil {
		respondTaskError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, milestone)
}

// GetProjectMilestones
// @Summary List milestones of a project
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} tasks_dto.ListMilestonesResponseDTO
// @Failure 403 {object} map[string]string
// @Router /projects/{id}/milestones [get]
func (c *TaskController) GetProjectMilestones(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}

	response, err := c.taskService.GetProjectMilestones(projectID, user)
	if err != nil {
		respondTaskError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

func respondTaskError(ctx *gin.Context, err error) {
	message := err.Error()

	switch {
	case strings.Contains(message, "permission") ||
		strings.Contains(message, "only the project creator") ||
		strings.Contains(message, "access"):
		ctx.JSON(http.StatusForbidden, gin.H{"error": message})

	case strings.Contains(message, "not found"):
		ctx.JSON(http.StatusNotFound, gin.H{"error": message})

	case strings.Contains(message, "invalid") ||
		strings.Contains(message, "required") ||
		strings.Contains(message, "must be") ||
		strings.Contains(message, "cannot be") ||
		strings.Contains(message, "exceeds") ||
		strings.Contains(message, "does not belong"):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": message})

	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": message})
	}
}
