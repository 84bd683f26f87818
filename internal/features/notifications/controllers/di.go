package notifications_controllers

import (
	"sync"

	notifications_services "huddle/internal/features/notifications/services"
)

var (
	setupOnce              sync.Once
	notificationController *NotificationController
)

func GetNotificationController() *NotificationController {
	setupOnce.Do(func() {
		notificationController = &NotificationController{
			notificationService: notifications_services.GetNotificationService(),
		}
	})

	return notificationController
}
