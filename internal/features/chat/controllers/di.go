package chat_controllers

import (
	"sync"

	chat_services "huddle/internal/features/chat/services"
)

var (
	setupOnce      sync.Once
	chatController *ChatController
)

func GetChatController() *ChatController {
	setupOnce.Do(func() {
		chatController = &ChatController{
			chatService: chat_services.GetChatService(),
		}
	})

	return chatController
}
