package service

import (
	"time"

	"skilllink/repository"
)

// ReconcileService 夜间对账：冗余的聚合字段（用户评分、会话未读
// 计数）由各写入路径各自维护，时间长了可能漂移，这里定期从基础表
// 重算一遍覆盖回去。
type ReconcileService struct {
	reviews *repository.ReviewRepository
	users   *repository.UserRepository
	convs   *repository.ConversationRepository
	msgs    *repository.MessageRepository
}

func NewReconcileService(reviews *repository.ReviewRepository, users *repository.UserRepository, convs *repository.ConversationRepository, msgs *repository.MessageRepository) *ReconcileService {
	return &ReconcileService{reviews: reviews, users: users, convs: convs, msgs: msgs}
}

func (s *ReconcileService) Run() {
	logger.Infof("[%s] Start scheduled task Reconcile", "scheduled task")
	startTime := time.Now()

	if err := s.ReconcileRatings(); err != nil {
		logger.Warnf("[%s] reconcile ratings error, %s", "scheduled task", err)
	}
	if err := s.ReconcileUnreadCounts(); err != nil {
		logger.Warnf("[%s] reconcile unread counts error, %s", "scheduled task", err)
	}

	logger.Infof("[%s] Finished scheduled task Reconcile cost %v", "scheduled task", time.Since(startTime))
}

// ReconcileRatings 从 reviews 表重算每个被评价用户的评分聚合
func (s *ReconcileService) ReconcileRatings() error {
	ids, err := s.reviews.RevieweeIDs()
	if err != nil {
		return err
	}
	for _, id := range ids {
		avg, count, err := s.reviews.AggregateForUser(id)
		if err != nil {
			return err
		}
		if err := s.users.UpdateRating(id, avg, count); err != nil {
			return err
		}
	}
	return nil
}

// ReconcileUnreadCounts 从 Message 表重算每个会话两侧的未读计数
func (s *ReconcileService) ReconcileUnreadCounts() error {
	conversations, err := s.convs.All()
	if err != nil {
		return err
	}
	for i := range conversations {
		conv := &conversations[i]
		user1Unread, err := s.msgs.CountUnreadInConversation(conv.ID, conv.User1ID)
		if err != nil {
			return err
		}
		user2Unread, err := s.msgs.CountUnreadInConversation(conv.ID, conv.User2ID)
		if err != nil {
			return err
		}
		if int(user1Unread) == conv.User1UnreadCount && int(user2Unread) == conv.User2UnreadCount {
			continue
		}
		logger.Infof("Repairing unread counters for conversation %d: (%d,%d) -> (%d,%d)",
			conv.ID, conv.User1UnreadCount, conv.User2UnreadCount, user1Unread, user2Unread)
		if err := s.convs.SetUnread(conv.ID, int(user1Unread), int(user2Unread)); err != nil {
			return err
		}
	}
	return nil
}
