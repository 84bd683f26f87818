package tasks_services

import (
	"sync"

	audit_logs "huddle/internal/features/audit_logs"
	projects_permissions "huddle/internal/features/projects/permissions"
	projects_repositories "huddle/internal/features/projects/repositories"
	"huddle/internal/features/realtime"
	tasks_repositories "huddle/internal/features/tasks/repositories"
	"huddle/internal/util/logger"
)

var (
	setupOnce   sync.Once
	taskService *TaskService
)

func GetTaskService() *TaskService {
	setupOnce.Do(func() {
		taskService = NewTaskService(
			&tasks_repositories.TaskRepository{},
			&tasks_repositories.MilestoneRepository{},
			&projects_repositories.MembershipRepository{},
			projects_permissions.GetResolver(),
			realtime.GetHub(),
			audit_logs.GetAuditLogService(),
			logger.GetLogger(),
		)
	})

	return taskService
}
