package chat

import (
	chat_services "huddle/internal/features/chat/services"
	"huddle/internal/features/realtime"
)

// SetupDependencies plugs the chat service into the realtime dispatcher,
// which only knows it as a MessageHandler.
func SetupDependencies() {
	realtime.GetRealtimeService().SetMessageHandler(chat_services.GetChatService())
}
