package chat_models

import (
	"time"

	"github.com/google/uuid"
)

// Reaction marks one user's emoji on one message. The unique index makes
// a repeated toggle a removal instead of a duplicate row.
type Reaction struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	MessageID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reactions_message_user_emoji" json:"messageId"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reactions_message_user_emoji" json:"userId"`
	Emoji     string    `gorm:"type:varchar(32);not null;uniqueIndex:idx_reactions_message_user_emoji" json:"emoji"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
}

func (Reaction) TableName() string {
	return "reactions"
}
