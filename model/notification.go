package model

import "time"

type NotificationType string

const (
	NotificationNewRequest       NotificationType = "new_request"
	NotificationProviderResponse NotificationType = "provider_response"
	NotificationRequestAccepted  NotificationType = "request_accepted"
	NotificationRequestCompleted NotificationType = "request_completed"
	NotificationNewMessage       NotificationType = "new_message"
)

type Notification struct {
	ID        uint             `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint             `gorm:"not null;index:idx_notification_user_read" json:"userId"`
	Type      NotificationType `gorm:"type:varchar(30);not null" json:"type"`
	Title     string           `gorm:"type:varchar(255);not null" json:"title"`
	Message   string           `gorm:"type:text;not null" json:"message"`
	PostID    *uint            `json:"postId"`
	IsRead    bool             `gorm:"default:false;index:idx_notification_user_read" json:"isRead"`
	CreatedAt time.Time        `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time        `gorm:"autoUpdateTime" json:"updatedAt"`
}
