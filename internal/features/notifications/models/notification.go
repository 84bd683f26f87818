package notifications_models

import (
	"time"

	"github.com/google/uuid"
)

type NotificationKind string

const (
	NotificationKindMessage    NotificationKind = "MESSAGE"
	NotificationKindMention    NotificationKind = "MENTION"
	NotificationKindAssignment NotificationKind = "ASSIGNMENT"
	NotificationKindBroadcast  NotificationKind = "BROADCAST"
)

// Notification is persisted before any realtime delivery attempt, so
// offline recipients see it on their next fetch. ProjectID is nil for
// instance wide broadcasts.
type Notification struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	RecipientID uuid.UUID        `gorm:"type:uuid;not null;index" json:"recipientId"`
	ProjectID   *uuid.UUID       `gorm:"type:uuid;index" json:"projectId,omitempty"`
	Kind        NotificationKind `gorm:"type:varchar(32);not null" json:"kind"`
	Message     string           `gorm:"type:text;not null" json:"message"`
	IsRead      bool             `gorm:"not null;default:false" json:"isRead"`
	CreatedAt   time.Time        `gorm:"not null" json:"createdAt"`
}

func (Notification) TableName() string {
	return "notifications"
}
