package controller

import (
	"github.com/gin-gonic/gin"

	"skilllink/service"
)

type NotificationController struct {
	notifications *service.NotificationService
}

func NewNotificationController(notifications *service.NotificationService) *NotificationController {
	return &NotificationController{notifications: notifications}
}

func (ctrl *NotificationController) List(c *gin.Context) {
	page, limit := parsePage(c, 50)

	var isRead *bool
	switch c.Query("isRead") {
	case "true":
		v := true
		isRead = &v
	case "false":
		v := false
		isRead = &v
	}

	notifications, unreadCount, pagination, err := ctrl.notifications.List(currentUser(c).ID, isRead, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{
		"notifications": notifications,
		"unreadCount":   unreadCount,
		"pagination":    pagination,
	})
}

func (ctrl *NotificationController) MarkRead(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(400, gin.H{"status": "error", "message": "Invalid notification ID"})
		return
	}
	if err := ctrl.notifications.MarkRead(currentUser(c).ID, id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Notification marked as read")
}

func (ctrl *NotificationController) MarkAllRead(c *gin.Context) {
	if err := ctrl.notifications.MarkAllRead(currentUser(c).ID); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "All notifications marked as read")
}

func (ctrl *NotificationController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(400, gin.H{"status": "error", "message": "Invalid notification ID"})
		return
	}
	if err := ctrl.notifications.Delete(currentUser(c).ID, id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Notification deleted successfully")
}
