package chat_services

import (
	"sync"

	chat_repositories "huddle/internal/features/chat/repositories"
	notifications_services "huddle/internal/features/notifications/services"
	projects_permissions "huddle/internal/features/projects/permissions"
	"huddle/internal/features/realtime"
	"huddle/internal/util/logger"
	"huddle/internal/util/rate_limit"
)

var (
	setupOnce   sync.Once
	chatService *ChatService
)

func GetChatService() *ChatService {
	setupOnce.Do(func() {
		chatService = NewChatService(
			&chat_repositories.MessageRepository{},
			&chat_repositories.ReactionRepository{},
			projects_permissions.GetResolver(),
			realtime.GetHub(),
			rate_limit.NewRateLimiter(),
			notifications_services.GetNotificationService(),
			logger.GetLogger(),
		)
	})

	return chatService
}
