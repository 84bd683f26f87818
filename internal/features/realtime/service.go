package realtime

import (
	"fmt"
	"log/slog"

	projects_permissions "huddle/internal/features/projects/permissions"
	users_models "huddle/internal/features/users/models"

	"github.com/google/uuid"
)

// MessageHandler is implemented by the chat feature. The dispatcher
// forwards chat events through it instead of importing chat directly.
type MessageHandler interface {
	SendMessage(user *users_models.User, projectID uuid.UUID, content string) error
	ToggleReaction(user *users_models.User, projectID, messageID uuid.UUID, emoji string) error
}

type RealtimeService struct {
	hub      *Hub
	resolver *projects_permissions.Resolver
	logger   *slog.Logger

	messageHandler MessageHandler
}

func NewRealtimeService(hub *Hub, resolver *projects_permissions.Resolver, logger *slog.Logger) *RealtimeService {
	return &RealtimeService{
		hub:      hub,
		resolver: resolver,
		logger:   logger,
	}
}

func (s *RealtimeService) SetMessageHandler(handler MessageHandler) {
	s.messageHandler = handler
}

func (s *RealtimeService) Hub() *Hub {
	return s.hub
}

// HandleConnect registers a freshly upgraded connection with the hub.
func (s *RealtimeService) HandleConnect(client *Client) {
	s.hub.RegisterUser(client.User().ID, client)
}

// HandleDisconnect removes the connection from every room and user
// binding it holds and closes the outbound queue so the write pump
// exits without waiting for the next ping.
func (s *RealtimeService) HandleDisconnect(client *Client) {
	s.hub.RemoveConnection(client)
	client.Close()
}

// HandleInbound dispatches one raw inbound frame from a connection.
// Failures surface to the sender as a chatError event and never
// terminate the connection.
func (s *RealtimeService) HandleInbound(client *Client, raw []byte) {
	envelope, err := DecodeEnvelope(raw)
	if err != nil {
		s.sendError(client, err.Error())
		return
	}

	if err := s.dispatch(client, envelope); err != nil {
		s.sendError(client, err.Error())
	}
}

func (s *RealtimeService) dispatch(client *Client, envelope *Envelope) error {
	switch envelope.Event {
	case EventRegisterUser:
		return s.handleRegisterUser(client, envelope)

	case EventJoinProject:
		return s.handleJoinProject(client, envelope)

	case EventLeaveProject:
		return s.handleLeaveProject(client, envelope)

	case EventSendMessage:
		return s.handleSendMessage(client, envelope)

	case EventToggleReaction:
		return s.handleToggleReaction(client, envelope)

	default:
		return fmt.Errorf("event %q is not accepted from clients", envelope.Event)
	}
}

// handleRegisterUser confirms the user binding made at connect time.
// The payload identity must match the authenticated user; a mismatch
// means the client is trying to impersonate someone else.
func (s *RealtimeService) handleRegisterUser(client *Client, envelope *Envelope) error {
	var payload RegisterUserPayload
	if err := decodePayload(envelope, &payload); err != nil {
		return err
	}

	if payload.UserID != client.User().ID {
		return fmt.Errorf("user identity does not match the authenticated connection")
	}

	s.hub.RegisterUser(client.User().ID, client)
	return nil
}

func (s *RealtimeService) handleJoinProject(client *Client, envelope *Envelope) error {
	var payload JoinProjectPayload
	if err := decodePayload(envelope, &payload); err != nil {
		return err
	}

	capabilities := s.resolver.Resolve(payload.ProjectID, client.User().ID)
	if !capabilities.HasAny() {
		return fmt.Errorf("you do not have access to this project")
	}

	s.hub.JoinRoom(payload.ProjectID, client)

	s.logger.Debug("user joined project room",
		slog.String("userId", client.User().ID.String()),
		slog.String("projectId", payload.ProjectID.String()))

	return nil
}

func (s *RealtimeService) handleLeaveProject(client *Client, envelope *Envelope) error {
	var payload LeaveProjectPayload
	if err := decodePayload(envelope, &payload); err != nil {
		return err
	}

	s.hub.LeaveRoom(payload.ProjectID, client)
	return nil
}

func (s *RealtimeService) handleSendMessage(client *Client, envelope *Envelope) error {
	if s.messageHandler == nil {
		return fmt.Errorf("chat is not available")
	}

	var payload SendMessagePayload
	if err := decodePayload(envelope, &payload); err != nil {
		return err
	}

	return s.messageHandler.SendMessage(client.User(), payload.ProjectID, payload.Content)
}

func (s *RealtimeService) handleToggleReaction(client *Client, envelope *Envelope) error {
	if s.messageHandler == nil {
		return fmt.Errorf("chat is not available")
	}

	var payload ToggleReactionPayload
	if err := decodePayload(envelope, &payload); err != nil {
		return err
	}

	return s.messageHandler.ToggleReaction(client.User(), payload.ProjectID, payload.MessageID, payload.Emoji)
}

func (s *RealtimeService) sendError(client *Client, message string) {
	payload, err := EncodeEvent(EventChatError, ChatErrorPayload{Message: message})
	if err != nil {
		s.logger.Error("failed to encode chat error event", slog.Any("error", err))
		return
	}

	if !client.Send(payload) {
		s.hub.RemoveConnection(client)
	}
}
