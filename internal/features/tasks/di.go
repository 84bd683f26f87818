package tasks

import (
	notifications_services "huddle/internal/features/notifications/services"
	projects_services "huddle/internal/features/projects/services"
	tasks_services "huddle/internal/features/tasks/services"
)

// SetupDependencies registers the task service where other features
// expect it: membership removal unassigns the member's tasks, and new
// assignments go through the notification fan-out.
func SetupDependencies() {
	taskService := tasks_services.GetTaskService()

	taskService.SetAssignmentNotifier(notifications_services.GetNotificationService())
	projects_services.GetMembershipService().AddMemberRemovalListener(taskService)
}
