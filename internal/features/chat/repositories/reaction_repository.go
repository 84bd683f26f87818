package chat_repositories

import (
	"errors"
	"time"

	chat_models "huddle/internal/features/chat/models"
	"huddle/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReactionRepository struct{}

type reactionCountRow struct {
	Emoji string `gorm:"column:emoji"`
	Count int    `gorm:"column:count"`
}

// ToggleReaction adds the reaction if the user has not placed it yet and
// removes it otherwise. The check and the write run in one transaction so
// two toggles of the same reaction cannot both insert.
//
// Two concurrent toggles can both see no row to delete; the unique index
// then rejects the second insert once the first commits. That toggle is
// rerun, finds the committed row, and removes it.
func (r *ReactionRepository) ToggleReaction(messageID, userID uuid.UUID, emoji string) error {
	err := r.toggleOnce(messageID, userID, emoji)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return r.toggleOnce(messageID, userID, emoji)
	}

	return err
}

func (r *ReactionRepository) toggleOnce(messageID, userID uuid.UUID, emoji string) error {
	return storage.GetDb().Transaction(func(tx *gorm.DB) error {
		deleted := tx.
			Where("message_id = ? AND user_id = ? AND emoji = ?", messageID, userID, emoji).
			Delete(&chat_models.Reaction{})
		if deleted.Error != nil {
			return deleted.Error
		}

		if deleted.RowsAffected > 0 {
			return nil
		}

		return tx.Create(&chat_models.Reaction{
			ID:        uuid.New(),
			MessageID: messageID,
			UserID:    userID,
			Emoji:     emoji,
			CreatedAt: time.Now().UTC(),
		}).Error
	})
}

// GetReactionCounts aggregates reactions for one message as emoji to count.
func (r *ReactionRepository) GetReactionCounts(messageID uuid.UUID) (map[string]int, error) {
	rows := make([]*reactionCountRow, 0)

	err := storage.GetDb().
		Model(&chat_models.Reaction{}).
		Select("emoji, COUNT(*) AS count").
		Where("message_id = ?", messageID).
		Group("emoji").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Emoji] = row.Count
	}

	return counts, nil
}

// GetReactionCountsForMessages aggregates reactions for a batch of
// messages, keyed by message id.
func (r *ReactionRepository) GetReactionCountsForMessages(
	messageIDs []uuid.UUID,
) (map[uuid.UUID]map[string]int, error) {
	counts := make(map[uuid.UUID]map[string]int, len(messageIDs))
	if len(messageIDs) == 0 {
		return counts, nil
	}

	type batchRow struct {
		MessageID uuid.UUID `gorm:"column:message_id"`
		Emoji     string    `gorm:"column:emoji"`
		Count     int       `gorm:"column:count"`
	}

	rows := make([]*batchRow, 0)

	err := storage.GetDb().
		Model(&chat_models.Reaction{}).
		Select("message_id, emoji, COUNT(*) AS count").
		Where("message_id IN ?", messageIDs).
		Group("message_id, emoji").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		if counts[row.MessageID] == nil {
			counts[row.MessageID] = make(map[string]int)
		}
		counts[row.MessageID][row.Emoji] = row.Count
	}

	return counts, nil
}
