package notifications

import (
	notifications_services "huddle/internal/features/notifications/services"
	projects_services "huddle/internal/features/projects/services"
)

// SetupDependencies registers the notification service so a purged
// project takes its notifications with it.
func SetupDependencies() {
	projects_services.GetProjectService().AddProjectDeletionListener(
		notifications_services.GetNotificationService(),
	)
}
