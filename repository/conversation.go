package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"skilllink/model"
)

type ConversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) *ConversationRepository {
	return &ConversationRepository{db: db}
}

// WithTx 返回一个在事务内工作的副本
func (r *ConversationRepository) WithTx(tx *gorm.DB) *ConversationRepository {
	return &ConversationRepository{db: tx}
}

func (r *ConversationRepository) preload(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User1").
		Preload("User2").
		Preload("LastMessage").
		Preload("Post")
}

// FindPair 按无序对查找会话，两种顺序都查
func (r *ConversationRepository) FindPair(a, b uint) (*model.Conversation, error) {
	var conv model.Conversation
	err := r.preload(r.db).
		Where("(user1_id = ? AND user2_id = ?) OR (user1_id = ? AND user2_id = ?)", a, b, b, a).
		First(&conv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return &conv, nil
}

func (r *ConversationRepository) Create(conv *model.Conversation) error {
	if err := r.db.Create(conv).Error; err != nil {
		return fmt.Errorf("failed to create conversation: %w", err)
	}
	return nil
}

func (r *ConversationRepository) ByID(id uint) (*model.Conversation, error) {
	var conv model.Conversation
	if err := r.preload(r.db).First(&conv, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return &conv, nil
}

// ByIDForUser 只返回 userId 参与的会话，找不到即视为不存在
func (r *ConversationRepository) ByIDForUser(id, userID uint) (*model.Conversation, error) {
	var conv model.Conversation
	err := r.db.
		Where("id = ? AND (user1_id = ? OR user2_id = ?)", id, userID, userID).
		First(&conv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return &conv, nil
}

// ListForUser 按最后一条消息时间倒序，没有消息的会话排在最后，
// 再按创建时间倒序兜底。
func (r *ConversationRepository) ListForUser(userID uint, limit, offset int) ([]model.Conversation, int64, error) {
	q := r.db.Model(&model.Conversation{}).
		Where("(user1_id = ? OR user2_id = ?) AND is_active = ?", userID, userID, true)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count conversations: %w", err)
	}

	var conversations []model.Conversation
	err := r.preload(q).
		Order("last_message_at IS NULL ASC").
		Order("last_message_at DESC").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&conversations).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list conversations: %w", err)
	}
	return conversations, total, nil
}

// SetLastMessage 无条件覆盖最后一条消息指针（last-write-wins）
func (r *ConversationRepository) SetLastMessage(convID, messageID uint, at time.Time) error {
	err := r.db.Model(&model.Conversation{}).Where("id = ?", convID).
		Updates(map[string]interface{}{"last_message_id": messageID, "last_message_at": at}).Error
	if err != nil {
		return fmt.Errorf("failed to update last message: %w", err)
	}
	return nil
}

// IncrementUnread 给 user1 或 user2 一侧的未读计数加一
func (r *ConversationRepository) IncrementUnread(convID uint, forUser1 bool) error {
	column := "user2_unread_count"
	if forUser1 {
		column = "user1_unread_count"
	}
	err := r.db.Model(&model.Conversation{}).Where("id = ?", convID).
		UpdateColumn(column, gorm.Expr(column+" + ?", 1)).Error
	if err != nil {
		return fmt.Errorf("failed to increment unread count: %w", err)
	}
	return nil
}

// ResetUnread 把一侧的未读计数清零。绝对归零而不是减量，并发下重复执行无害。
func (r *ConversationRepository) ResetUnread(convID uint, forUser1 bool) error {
	column := "user2_unread_count"
	if forUser1 {
		column = "user1_unread_count"
	}
	err := r.db.Model(&model.Conversation{}).Where("id = ?", convID).
		UpdateColumn(column, 0).Error
	if err != nil {
		return fmt.Errorf("failed to reset unread count: %w", err)
	}
	return nil
}

// SetUnread 对账任务直接写入重算后的两个计数
func (r *ConversationRepository) SetUnread(convID uint, user1Count, user2Count int) error {
	err := r.db.Model(&model.Conversation{}).Where("id = ?", convID).
		Updates(map[string]interface{}{
			"user1_unread_count": user1Count,
			"user2_unread_count": user2Count,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to set unread counts: %w", err)
	}
	return nil
}

// All 对账任务用
func (r *ConversationRepository) All() ([]model.Conversation, error) {
	var conversations []model.Conversation
	if err := r.db.Find(&conversations).Error; err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	return conversations, nil
}
