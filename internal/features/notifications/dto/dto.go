package notifications_dto

import (
	notifications_models "huddle/internal/features/notifications/models"
)

type ListNotificationsResponseDTO struct {
	Notifications []*notifications_models.Notification `json:"notifications"`
	UnreadCount   int64                                `json:"unreadCount"`
	Total         int64                                `json:"total"`
	Limit         int                                  `json:"limit"`
	Offset        int                                  `json:"offset"`
}

type BroadcastAnnouncementRequestDTO struct {
	Message string `json:"message" binding:"required,min=1,max=2000"`
}

type BroadcastAnnouncementResponseDTO struct {
	Recipients int `json:"recipients"`
}

type MarkReadResponseDTO struct {
	Updated int64 `json:"updated"`
}
