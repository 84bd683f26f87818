package notifications_repositories

import (
	"time"

	notifications_models "huddle/internal/features/notifications/models"
	"huddle/internal/storage"

	"github.com/google/uuid"
)

type NotificationRepository struct{}

func (r *NotificationRepository) CreateNotification(notification *notifications_models.Notification) error {
	if notification.ID == uuid.Nil {
		notification.ID = uuid.New()
	}

	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now().UTC()
	}

	return storage.GetDb().Create(notification).Error
}

func (r *NotificationRepository) CreateNotifications(
	notifications []*notifications_models.Notification,
) error {
	if len(notifications) == 0 {
		return nil
	}

	now := time.Now().UTC()
	for _, notification := range notifications {
		if notification.ID == uuid.Nil {
			notification.ID = uuid.New()
		}
		if notification.CreatedAt.IsZero() {
			notification.CreatedAt = now
		}
	}

	return storage.GetDb().CreateInBatches(notifications, 200).Error
}

func (r *NotificationRepository) GetNotificationsForUser(
	userID uuid.UUID,
	limit, offset int,
) ([]*notifications_models.Notification, int64, error) {
	var total int64

	if err := storage.GetDb().
		Model(&notifications_models.Notification{}).
		Where("recipient_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	notifications := make([]*notifications_models.Notification, 0)

	err := storage.GetDb().
		Where("recipient_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&notifications).Error

	return notifications, total, err
}

func (r *NotificationRepository) CountUnread(userID uuid.UUID) (int64, error) {
	var count int64

	err := storage.GetDb().
		Model(&notifications_models.Notification{}).
		Where("recipient_id = ? AND is_read = false", userID).
		Count(&count).Error

	return count, err
}

// MarkAllRead flips every unread notification of the user. Running it
// again is a no-op reporting zero updates.
func (r *NotificationRepository) MarkAllRead(userID uuid.UUID) (int64, error) {
	result := storage.GetDb().
		Model(&notifications_models.Notification{}).
		Where("recipient_id = ? AND is_read = false", userID).
		Update("is_read", true)

	return result.RowsAffected, result.Error
}

// MarkProjectRead flips unread notifications of the user scoped to one
// project.
func (r *NotificationRepository) MarkProjectRead(userID, projectID uuid.UUID) (int64, error) {
	result := storage.GetDb().
		Model(&notifications_models.Notification{}).
		Where("recipient_id = ? AND project_id = ? AND is_read = false", userID, projectID).
		Update("is_read", true)

	return result.RowsAffected, result.Error
}

func (r *NotificationRepository) DeleteNotificationsForProject(projectID uuid.UUID) error {
	return storage.GetDb().
		Where("project_id = ?", projectID).
		Delete(&notifications_models.Notification{}).Error
}
