package chat_models

import (
	"time"

	"github.com/google/uuid"
)

// Message is an append-only chat entry. Messages are never edited or
// deleted individually; they disappear only when their project is purged.
type Message struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index" json:"projectId"`
	SenderID  uuid.UUID `gorm:"type:uuid;not null" json:"senderId"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
}

func (Message) TableName() string {
	return "messages"
}
