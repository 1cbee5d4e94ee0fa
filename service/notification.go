package service

import (
	"skilllink/model"
	"skilllink/pkg/errors"
	"skilllink/repository"
)

// NotificationService 把事件落库供客户端轮询，并尽力通过推送/邮件
// 转发一份。转发失败只记日志，不影响主流程。
type NotificationService struct {
	notifications *repository.NotificationRepository
	users         *repository.UserRepository
	pusher        Pusher
	mailer        *Mailer
}

func NewNotificationService(notifications *repository.NotificationRepository, users *repository.UserRepository, pusher Pusher, mailer *Mailer) *NotificationService {
	return &NotificationService{notifications: notifications, users: users, pusher: pusher, mailer: mailer}
}

// Notify 给用户写一条通知记录，并尽力转发
func (s *NotificationService) Notify(userID uint, ntype model.NotificationType, title, message string, postID *uint) {
	n := &model.Notification{
		UserID:  userID,
		Type:    ntype,
		Title:   title,
		Message: message,
		PostID:  postID,
		IsRead:  false,
	}
	if err := s.notifications.Create(n); err != nil {
		logger.Warnf("Failed to create notification for user %d: %s", userID, err)
		return
	}

	user, err := s.users.ByID(userID)
	if err != nil || user == nil {
		return
	}
	if s.pusher != nil && user.FcmToken != "" {
		if err := s.pusher.Push(user.FcmToken, title, message, map[string]string{"type": string(ntype)}); err != nil {
			logger.Warnf("Failed to push notification to user %d: %s", userID, err)
		}
	}
	if s.mailer != nil {
		if err := s.mailer.Send(user.Email, title, message); err != nil {
			logger.Warnf("Failed to email notification to user %d: %s", userID, err)
		}
	}
}

func (s *NotificationService) List(userID uint, isRead *bool, page, limit int) ([]model.Notification, int64, *Pagination, error) {
	notifications, total, err := s.notifications.List(userID, isRead, limit, Offset(page, limit))
	if err != nil {
		return nil, 0, nil, errors.Internal("Failed to fetch notifications", err)
	}
	unread, err := s.notifications.CountUnread(userID)
	if err != nil {
		return nil, 0, nil, errors.Internal("Failed to fetch notifications", err)
	}
	return notifications, unread, NewPagination(page, limit, total), nil
}

func (s *NotificationService) MarkRead(userID, notificationID uint) error {
	n, err := s.notifications.ByID(notificationID)
	if err != nil {
		return errors.Internal("Failed to mark notification as read", err)
	}
	if n == nil {
		return errors.NotFound("Notification not found")
	}
	if n.UserID != userID {
		return errors.Forbidden("You can only update your own notifications")
	}
	if err := s.notifications.MarkRead(n.ID); err != nil {
		return errors.Internal("Failed to mark notification as read", err)
	}
	return nil
}

func (s *NotificationService) MarkAllRead(userID uint) error {
	if err := s.notifications.MarkAllRead(userID); err != nil {
		return errors.Internal("Failed to mark all notifications as read", err)
	}
	return nil
}

func (s *NotificationService) Delete(userID, notificationID uint) error {
	n, err := s.notifications.ByID(notificationID)
	if err != nil {
		return errors.Internal("Failed to delete notification", err)
	}
	if n == nil {
		return errors.NotFound("Notification not found")
	}
	if n.UserID != userID {
		return errors.Forbidden("You can only delete your own notifications")
	}
	if err := s.notifications.Delete(n); err != nil {
		return errors.Internal("Failed to delete notification", err)
	}
	return nil
}
