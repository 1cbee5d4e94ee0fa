package model

import "time"

type MessageType string

const (
	MessageTypeText     MessageType = "text"
	MessageTypeImage    MessageType = "image"
	MessageTypeFile     MessageType = "file"
	MessageTypeLocation MessageType = "location"
)

func (t MessageType) Valid() bool {
	switch t {
	case MessageTypeText, MessageTypeImage, MessageTypeFile, MessageTypeLocation:
		return true
	}
	return false
}

// Message 会话内的单条消息。conversationId/senderId/receiverId 创建后不变，
// 只有已读/已送达状态会被更新。
type Message struct {
	ID             uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	ConversationID uint        `gorm:"not null;index:idx_message_conversation_created" json:"conversationId"`
	SenderID       uint        `gorm:"not null;index" json:"senderId"`
	ReceiverID     uint        `gorm:"not null;index" json:"receiverId"`
	MessageType    MessageType `gorm:"type:varchar(20);default:text" json:"messageType"`
	Content        string      `gorm:"type:text;not null" json:"content"`
	AttachmentUrl  string      `gorm:"type:longtext" json:"attachmentUrl"`
	IsRead         bool        `gorm:"default:false;index" json:"isRead"`
	ReadAt         *time.Time  `json:"readAt"`
	IsDelivered    bool        `gorm:"default:false" json:"isDelivered"`
	DeliveredAt    *time.Time  `json:"deliveredAt"`
	CreatedAt      time.Time   `gorm:"autoCreateTime;index:idx_message_conversation_created" json:"createdAt"`
	UpdatedAt      time.Time   `gorm:"autoUpdateTime" json:"updatedAt"`

	Sender *User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
}

// MessageSummary 会话列表里展示的最后一条消息摘要
type MessageSummary struct {
	ID          uint        `json:"id"`
	Content     string      `json:"content"`
	MessageType MessageType `json:"messageType"`
	CreatedAt   time.Time   `json:"createdAt"`
	IsRead      bool        `json:"isRead"`
}

func (m *Message) Summary() *MessageSummary {
	if m == nil {
		return nil
	}
	return &MessageSummary{
		ID:          m.ID,
		Content:     m.Content,
		MessageType: m.MessageType,
		CreatedAt:   m.CreatedAt,
		IsRead:      m.IsRead,
	}
}
