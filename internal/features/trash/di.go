package trash

import (
	"sync"

	projects_services "huddle/internal/features/projects/services"
	tasks_repositories "huddle/internal/features/tasks/repositories"
	"huddle/internal/util/logger"
)

var (
	setupOnce             sync.Once
	trashRetentionService *TrashRetentionService
)

func GetTrashRetentionService() *TrashRetentionService {
	setupOnce.Do(func() {
		trashRetentionService = &TrashRetentionService{
			projectService: projects_services.GetProjectService(),
			taskRepository: &tasks_repositories.TaskRepository{},
			logger:         logger.GetLogger(),
		}
	})

	return trashRetentionService
}
