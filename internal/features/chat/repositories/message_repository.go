package chat_repositories

import (
	"errors"
	"time"

	chat_models "huddle/internal/features/chat/models"
	"huddle/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageRepository struct{}

type MessageRow struct {
	ID                uuid.UUID `gorm:"column:id"`
	ProjectID         uuid.UUID `gorm:"column:project_id"`
	SenderID          uuid.UUID `gorm:"column:sender_id"`
	SenderDisplayName string    `gorm:"column:sender_display_name"`
	Content           string    `gorm:"column:content"`
	CreatedAt         time.Time `gorm:"column:created_at"`
}

func (r *MessageRepository) CreateMessage(message *chat_models.Message) error {
	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}

	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now().UTC()
	}

	return storage.GetDb().Create(message).Error
}

func (r *MessageRepository) GetMessageByID(messageID uuid.UUID) (*chat_models.Message, error) {
	var message chat_models.Message

	if err := storage.GetDb().
		Where("id = ?", messageID).
		First(&message).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &message, nil
}

// GetProjectMessages returns messages newest first, with the sender's
// display name joined in.
func (r *MessageRepository) GetProjectMessages(
	projectID uuid.UUID,
	limit, offset int,
) ([]*MessageRow, int64, error) {
	var total int64

	if err := storage.GetDb().
		Model(&chat_models.Message{}).
		Where("project_id = ?", projectID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	rows := make([]*MessageRow, 0)

	err := storage.GetDb().
		Table("messages m").
		Select("m.id, m.project_id, m.sender_id, u.display_name AS sender_display_name, m.content, m.created_at").
		Joins("JOIN users u ON m.sender_id = u.id").
		Where("m.project_id = ?", projectID).
		Order("m.created_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error

	return rows, total, err
}
