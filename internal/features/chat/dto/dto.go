package chat_dto

import (
	"time"

	"github.com/google/uuid"
)

type MessageResponseDTO struct {
	ID                uuid.UUID      `json:"id"`
	ProjectID         uuid.UUID      `json:"projectId"`
	SenderID          uuid.UUID      `json:"senderId"`
	SenderDisplayName string         `json:"senderDisplayName"`
	Content           string         `json:"content"`
	CreatedAt         time.Time      `json:"createdAt"`
	Reactions         map[string]int `json:"reactions"`
}

type ListMessagesResponseDTO struct {
	Messages []MessageResponseDTO `json:"messages"`
	Total    int64                `json:"total"`
	Limit    int                  `json:"limit"`
	Offset   int                  `json:"offset"`
}

// ReactionsUpdatedDTO is the payload of the reactionsUpdated event. It
// always carries the full aggregate for the message, so clients replace
// their state instead of applying deltas.
type ReactionsUpdatedDTO struct {
	ProjectID uuid.UUID      `json:"projectId"`
	MessageID uuid.UUID      `json:"messageId"`
	Reactions map[string]int `json:"reactions"`
}
