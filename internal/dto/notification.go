package dto

import (
	"time"

	"github.com/gameplanhq/artwork-workflow-api/internal/models"
)

// NotificationDTO represents a notification in API responses
type NotificationDTO struct {
	ID         uint64    `json:"id"`
	FromUserID uint64    `json:"from_user_id"`
	EventType  string    `json:"event_type"`
	Message    string    `json:"message"`
	TaskID     uint64    `json:"task_id"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"created_at"`
}

// NotificationListResponse represents a paginated list of notifications
type NotificationListResponse struct {
	Notifications []NotificationDTO `json:"notifications"`
	Page          int               `json:"page"`
	PageSize      int               `json:"page_size"`
	TotalCount    int64             `json:"total_count"`
	UnreadCount   int64             `json:"unread_count"`
}

// ToNotificationDTO converts a notification to DTO
func ToNotificationDTO(notification models.Notification) NotificationDTO {
	return NotificationDTO{
		ID:         notification.ID,
		FromUserID: notification.FromUserID,
		EventType:  notification.EventType,
		Message:    notification.Message,
		TaskID:     notification.TaskID,
		Read:       notification.Read,
		CreatedAt:  notification.CreatedAt,
	}
}

// ToNotificationListResponse builds a paginated notification list response
func ToNotificationListResponse(notifications []models.Notification, page, pageSize int, totalCount, unreadCount int64) NotificationListResponse {
	items := make([]NotificationDTO, len(notifications))
	for i, notification := range notifications {
		items[i] = ToNotificationDTO(notification)
	}

	return NotificationListResponse{
		Notifications: items,
		Page:          page,
		PageSize:      pageSize,
		TotalCount:    totalCount,
		UnreadCount:   unreadCount,
	}
}
