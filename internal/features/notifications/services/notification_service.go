package notifications_services

import (
	"fmt"
	"log/slog"

	audit_logs "huddle/internal/features/audit_logs"
	notifications_dto "huddle/internal/features/notifications/dto"
	notifications_models "huddle/internal/features/notifications/models"
	notifications_repositories "huddle/internal/features/notifications/repositories"
	projects_repositories "huddle/internal/features/projects/repositories"
	"huddle/internal/features/realtime"
	users_models "huddle/internal/features/users/models"
	users_services "huddle/internal/features/users/services"

	"github.com/google/uuid"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 200
)

type NotificationService struct {
	notificationRepository *notifications_repositories.NotificationRepository
	membershipRepository   *projects_repositories.MembershipRepository
	managementService      *users_services.ManagementService
	hub                    *realtime.Hub
	auditLogService        *audit_logs.AuditLogService
	logger                 *slog.Logger
}

func NewNotificationService(
	notificationRepository *notifications_repositories.NotificationRepository,
	membershipRepository *projects_repositories.MembershipRepository,
	managementService *users_services.ManagementService,
	hub *realtime.Hub,
	auditLogService *audit_logs.AuditLogService,
	logger *slog.Logger,
) *NotificationService {
	return &NotificationService{
		notificationRepository: notificationRepository,
		membershipRepository:   membershipRepository,
		managementService:      managementService,
		hub:                    hub,
		auditLogService:        auditLogService,
		logger:                 logger,
	}
}

// NotifyNewMessage fans a chat message out to every other project member.
// A member mentioned by display name gets a mention notification instead
// of a plain one; a member is never notified twice for the same message.
func (s *NotificationService) NotifyNewMessage(
	projectID uuid.UUID,
	sender *users_models.User,
	content string,
) error {
	members, err := s.membershipRepository.GetProjectMembers(projectID)
	if err != nil {
		return fmt.Errorf("failed to load project members: %w", err)
	}

	scopedProjectID := projectID
	notifications := make([]*notifications_models.Notification, 0, len(members))

	for _, member := range members {
		if member.UserID == sender.ID {
			continue
		}

		kind := notifications_models.NotificationKindMessage
		message := fmt.Sprintf("New message from %s", sender.DisplayName)

		if IsMentioned(content, member.DisplayName) {
			kind = notifications_models.NotificationKindMention
			message = fmt.Sprintf("%s mentioned you in chat", sender.DisplayName)
		}

		notifications = append(notifications, &notifications_models.Notification{
			RecipientID: member.UserID,
			ProjectID:   &scopedProjectID,
			Kind:        kind,
			Message:     message,
		})
	}

	if err := s.notificationRepository.CreateNotifications(notifications); err != nil {
		return fmt.Errorf("failed to persist notifications: %w", err)
	}

	for _, notification := range notifications {
		s.push(notification)
	}

	return nil
}

// NotifyTaskAssigned tells a user a task was assigned to them. Assigning
// a task to yourself stays silent.
func (s *NotificationService) NotifyTaskAssigned(
	projectID, assigneeID uuid.UUID,
	assigner *users_models.User,
	taskTitle string,
) error {
	if assigneeID == assigner.ID {
		return nil
	}

	scopedProjectID := projectID
	notification := &notifications_models.Notification{
		RecipientID: assigneeID,
		ProjectID:   &scopedProjectID,
		Kind:        notifications_models.NotificationKindAssignment,
		Message:     fmt.Sprintf("%s assigned you the task %q", assigner.DisplayName, taskTitle),
	}

	if err := s.notificationRepository.CreateNotification(notification); err != nil {
		return fmt.Errorf("failed to persist assignment notification: %w", err)
	}

	s.push(notification)
	return nil
}

// BroadcastAnnouncement delivers an admin announcement to every active
// user except the sender.
func (s *NotificationService) BroadcastAnnouncement(
	actor *users_models.User,
	message string,
) (*notifications_dto.BroadcastAnnouncementResponseDTO, error) {
	if !actor.CanBroadcastAnnouncements() {
		return nil, fmt.Errorf("only administrators can broadcast announcements")
	}

	recipientIDs, err := s.managementService.GetActiveUserIDs()
	if err != nil {
		return nil, fmt.Errorf("failed to load recipients: %w", err)
	}

	notifications := make([]*notifications_models.Notification, 0, len(recipientIDs))
	for _, recipientID := range recipientIDs {
		if recipientID == actor.ID {
			continue
		}

		notifications = append(notifications, &notifications_models.Notification{
			RecipientID: recipientID,
			Kind:        notifications_models.NotificationKindBroadcast,
			Message:     message,
		})
	}

	if err := s.notificationRepository.CreateNotifications(notifications); err != nil {
		return nil, fmt.Errorf("failed to persist announcement: %w", err)
	}

	for _, notification := range notifications {
		s.push(notification)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Announcement broadcast to %d users", len(notifications)),
		&actor.ID,
		nil,
	)

	return &notifications_dto.BroadcastAnnouncementResponseDTO{
		Recipients: len(notifications),
	}, nil
}

func (s *NotificationService) GetNotifications(
	userID uuid.UUID,
	limit, offset int,
) (*notifications_dto.ListNotificationsResponseDTO, error) {
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	if offset < 0 {
		offset = 0
	}

	notifications, total, err := s.notificationRepository.GetNotificationsForUser(userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to load notifications: %w", err)
	}

	unread, err := s.notificationRepository.CountUnread(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return &notifications_dto.ListNotificationsResponseDTO{
		Notifications: notifications,
		UnreadCount:   unread,
		Total:         total,
		Limit:         limit,
		Offset:        offset,
	}, nil
}

func (s *NotificationService) MarkAllRead(userID uuid.UUID) (*notifications_dto.MarkReadResponseDTO, error) {
	updated, err := s.notificationRepository.MarkAllRead(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to mark notifications read: %w", err)
	}

	return &notifications_dto.MarkReadResponseDTO{Updated: updated}, nil
}

func (s *NotificationService) MarkProjectRead(
	userID, projectID uuid.UUID,
) (*notifications_dto.MarkReadResponseDTO, error) {
	updated, err := s.notificationRepository.MarkProjectRead(userID, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to mark project notifications read: %w", err)
	}

	return &notifications_dto.MarkReadResponseDTO{Updated: updated}, nil
}

// OnBeforeProjectDeletion drops notifications pointing at a purged project.
func (s *NotificationService) OnBeforeProjectDeletion(projectID uuid.UUID) error {
	return s.notificationRepository.DeleteNotificationsForProject(projectID)
}

// push attempts realtime delivery. The notification is already persisted,
// so an offline recipient just reads it later.
func (s *NotificationService) push(notification *notifications_models.Notification) {
	payload, err := realtime.EncodeEvent(realtime.EventReceiveNotification, notification)
	if err != nil {
		s.logger.Error("failed to encode notification event", slog.Any("error", err))
		return
	}

	s.hub.SendToUser(notification.RecipientID, payload)
}
