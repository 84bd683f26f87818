package chat_services

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	chat_dto "huddle/internal/features/chat/dto"
	chat_models "huddle/internal/features/chat/models"
	chat_repositories "huddle/internal/features/chat/repositories"
	notifications_services "huddle/internal/features/notifications/services"
	projects_permissions "huddle/internal/features/projects/permissions"
	"huddle/internal/features/realtime"
	users_models "huddle/internal/features/users/models"
	"huddle/internal/util/rate_limit"

	"github.com/google/uuid"
)

const (
	maxMessageLength = 4000
	maxEmojiLength   = 32

	// per user per project; bursts cover pasting a few lines in a row
	messagesPerSecond = 5
	messagesBurst     = 15
)

type ChatService struct {
	messageRepository   *chat_repositories.MessageRepository
	reactionRepository  *chat_repositories.ReactionRepository
	resolver            *projects_permissions.Resolver
	hub                 *realtime.Hub
	rateLimiter         *rate_limit.RateLimiter
	notificationService *notifications_services.NotificationService
	logger              *slog.Logger
}

func NewChatService(
	messageRepository *chat_repositories.MessageRepository,
	reactionRepository *chat_repositories.ReactionRepository,
	resolver *projects_permissions.Resolver,
	hub *realtime.Hub,
	rateLimiter *rate_limit.RateLimiter,
	notificationService *notifications_services.NotificationService,
	logger *slog.Logger,
) *ChatService {
	return &ChatService{
		messageRepository:   messageRepository,
		reactionRepository:  reactionRepository,
		resolver:            resolver,
		hub:                 hub,
		rateLimiter:         rateLimiter,
		notificationService: notificationService,
		logger:              logger,
	}
}

// SendMessage persists a chat message and broadcasts it to the project
// room. The message is durable before any broadcast happens.
func (s *ChatService) SendMessage(
	user *users_models.User,
	projectID uuid.UUID,
	content string,
) error {
	capabilities := s.resolver.Resolve(projectID, user.ID)
	if !capabilities.CanChat && !capabilities.IsCreator {
		return fmt.Errorf("you do not have permission to chat in this project")
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return fmt.Errorf("message content cannot be empty")
	}
	if utf8.RuneCountInString(content) > maxMessageLength {
		return fmt.Errorf("message content exceeds %d characters", maxMessageLength)
	}

	scopeKey := fmt.Sprintf("chat:%s:%s", projectID, user.ID)
	limit, err := s.rateLimiter.CheckRateLimit(scopeKey, messagesPerSecond, messagesBurst)
	if err != nil {
		s.logger.Warn("chat rate limit check failed, allowing message", slog.Any("error", err))
	} else if !limit.Allowed {
		return fmt.Errorf("you are sending messages too quickly, slow down")
	}

	message := &chat_models.Message{
		ProjectID: projectID,
		SenderID:  user.ID,
		Content:   content,
	}

	if err := s.messageRepository.CreateMessage(message); err != nil {
		return fmt.Errorf("failed to save message: %w", err)
	}

	s.broadcastMessage(message, user.DisplayName)

	if err := s.notificationService.NotifyNewMessage(projectID, user, content); err != nil {
		s.logger.Error("message notification fan-out failed",
			slog.String("messageId", message.ID.String()),
			slog.Any("error", err))
	}

	return nil
}

// ToggleReaction adds or removes the user's emoji on a message and
// broadcasts the resulting aggregate. Toggling twice restores the
// previous state.
func (s *ChatService) ToggleReaction(
	user *users_models.User,
	projectID, messageID uuid.UUID,
	emoji string,
) error {
	capabilities := s.resolver.Resolve(projectID, user.ID)
	if !capabilities.CanChat && !capabilities.IsCreator {
		return fmt.Errorf("you do not have permission to react in this project")
	}

	emoji = strings.TrimSpace(emoji)
	if emoji == "" {
		return fmt.Errorf("reaction emoji cannot be empty")
	}
	if utf8.RuneCountInString(emoji) > maxEmojiLength {
		return fmt.Errorf("reaction emoji is too long")
	}

	message, err := s.messageRepository.GetMessageByID(messageID)
	if err != nil {
		return fmt.Errorf("failed to load message: %w", err)
	}
	if message == nil || message.ProjectID != projectID {
		return fmt.Errorf("message not found in this project")
	}

	if err := s.reactionRepository.ToggleReaction(messageID, user.ID, emoji); err != nil {
		return fmt.Errorf("failed to toggle reaction: %w", err)
	}

	counts, err := s.reactionRepository.GetReactionCounts(messageID)
	if err != nil {
		return fmt.Errorf("failed to aggregate reactions: %w", err)
	}

	payload, err := realtime.EncodeEvent(realtime.EventReactionsUpdated, chat_dto.ReactionsUpdatedDTO{
		ProjectID: projectID,
		MessageID: messageID,
		Reactions: counts,
	})
	if err != nil {
		return fmt.Errorf("failed to encode reaction event: %w", err)
	}

	s.hub.BroadcastToRoom(projectID, payload)
	return nil
}

// GetReactions returns the emoji aggregate of one message.
func (s *ChatService) GetReactions(
	user *users_models.User,
	projectID, messageID uuid.UUID,
) (*chat_dto.ReactionsUpdatedDTO, error) {
	capabilities := s.resolver.Resolve(projectID, user.ID)
	if !capabilities.HasAny() {
		return nil, fmt.Errorf("you do not have access to this project")
	}

	message, err := s.messageRepository.GetMessageByID(messageID)
	if err != nil {
		return nil, fmt.Errorf("failed to load message: %w", err)
	}
	if message == nil || message.ProjectID != projectID {
		return nil, fmt.Errorf("message not found in this project")
	}

	counts, err := s.reactionRepository.GetReactionCounts(messageID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate reactions: %w", err)
	}

	return &chat_dto.ReactionsUpdatedDTO{
		ProjectID: projectID,
		MessageID: messageID,
		Reactions: counts,
	}, nil
}

// GetMessages returns the message history newest first, each with its
// reaction aggregate.
func (s *ChatService) GetMessages(
	user *users_models.User,
	projectID uuid.UUID,
	limit, offset int,
) (*chat_dto.ListMessagesResponseDTO, error) {
	capabilities := s.resolver.Resolve(projectID, user.ID)
	if !capabilities.HasAny() {
		return nil, fmt.Errorf("you do not have access to this project")
	}

	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	rows, total, err := s.messageRepository.GetProjectMessages(projectID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to load messages: %w", err)
	}

	messageIDs := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		messageIDs = append(messageIDs, row.ID)
	}

	countsByMessage, err := s.reactionRepository.GetReactionCountsForMessages(messageIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load reactions: %w", err)
	}

	messages := make([]chat_dto.MessageResponseDTO, 0, len(rows))
	for _, row := range rows {
		counts := countsByMessage[row.ID]
		if counts == nil {
			counts = map[string]int{}
		}

		messages = append(messages, chat_dto.MessageResponseDTO{
			ID:                row.ID,
			ProjectID:         row.ProjectID,
			SenderID:          row.SenderID,
			SenderDisplayName: row.SenderDisplayName,
			Content:           row.Content,
			CreatedAt:         row.CreatedAt,
			Reactions:         counts,
		})
	}

	return &chat_dto.ListMessagesResponseDTO{
		Messages: messages,
		Total:    total,
		Limit:    limit,
		Offset:   offset,
	}, nil
}

func (s *ChatService) broadcastMessage(message *chat_models.Message, senderDisplayName string) {
	payload, err := realtime.EncodeEvent(realtime.EventReceiveMessage, chat_dto.MessageResponseDTO{
		ID:                message.ID,
		ProjectID:         message.ProjectID,
		SenderID:          message.SenderID,
		SenderDisplayName: senderDisplayName,
		Content:           message.Content,
		CreatedAt:         message.CreatedAt,
		Reactions:         map[string]int{},
	})
	if err != nil {
		s.logger.Error("failed to encode message event", slog.Any("error", err))
		return
	}

	s.hub.BroadcastToRoom(message.ProjectID, payload)
}
