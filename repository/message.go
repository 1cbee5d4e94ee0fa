package repository

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"skilllink/model"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// WithTx 返回一个在事务内工作的副本
func (r *MessageRepository) WithTx(tx *gorm.DB) *MessageRepository {
	return &MessageRepository{db: tx}
}

func (r *MessageRepository) Create(m *model.Message) error {
	if err := r.db.Create(m).Error; err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

func (r *MessageRepository) ByID(id uint) (*model.Message, error) {
	var m model.Message
	if err := r.db.Preload("Sender").First(&m, id).Error; err != nil {
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return &m, nil
}

// ListByConversation 按创建时间正序（时间线顺序）
func (r *MessageRepository) ListByConversation(convID uint, limit, offset int) ([]model.Message, int64, error) {
	q := r.db.Model(&model.Message{}).Where("conversation_id = ?", convID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count messages: %w", err)
	}

	var messages []model.Message
	err := q.
		Preload("Sender").
		Order("created_at ASC").
		Limit(limit).Offset(offset).
		Find(&messages).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, total, nil
}

// MarkConversationRead 把会话里发给 receiverId 的所有未读消息标记为
// 已读已送达。重复执行是无操作。
func (r *MessageRepository) MarkConversationRead(convID, receiverID uint, now time.Time) (int64, error) {
	result := r.db.Model(&model.Message{}).
		Where("conversation_id = ? AND receiver_id = ? AND is_read = ?", convID, receiverID, false).
		Updates(map[string]interface{}{
			"is_read":      true,
			"read_at":      now,
			"is_delivered": true,
			"delivered_at": now,
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to mark messages as read: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// CountUnreadForUser 跨所有会话的未读总数，直接数 Message 表，
// 不依赖会话上的缓存计数。
func (r *MessageRepository) CountUnreadForUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Message{}).
		Where("receiver_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}
	return count, nil
}

// CountUnreadInConversation 对账任务重算某一侧的未读计数
func (r *MessageRepository) CountUnreadInConversation(convID, receiverID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Message{}).
		Where("conversation_id = ? AND receiver_id = ? AND is_read = ?", convID, receiverID, false).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}
	return count, nil
}
