package notifications_services

import (
	"sync"

	audit_logs "huddle/internal/features/audit_logs"
	notifications_repositories "huddle/internal/features/notifications/repositories"
	projects_repositories "huddle/internal/features/projects/repositories"
	"huddle/internal/features/realtime"
	users_services "huddle/internal/features/users/services"
	"huddle/internal/util/logger"
)

var (
	setupOnce           sync.Once
	notificationService *NotificationService
)

func GetNotificationService() *NotificationService {
	setupOnce.Do(func() {
		notificationService = NewNotificationService(
			&notifications_repositories.NotificationRepository{},
			&projects_repositories.MembershipRepository{},
			users_services.GetManagementService(),
			realtime.GetHub(),
			audit_logs.GetAuditLogService(),
			logger.GetLogger(),
		)
	})

	return notificationService
}
