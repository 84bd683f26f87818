package tasks_controllers

import (
	"sync"

	tasks_services "huddle/internal/features/tasks/services"
)

var (
	setupOnce      sync.Once
	taskController *TaskController
)

func GetTaskController() *TaskController {
	setupOnce.Do(func() {
		taskController = &TaskController{
			taskService: tasks_services.GetTaskService(),
		}
	})

	return taskController
}
