package model

import "time"

// Conversation 两个用户之间唯一的一对一会话。user1/user2 按 id 从小到大
// 规范化存储，使无序对 {A,B} 在 (user1Id, user2Id) 唯一索引下只占一行。
// lastMessageId/lastMessageAt 和两个未读计数是冗余缓存字段，由消息
// 写入路径负责维护。
type Conversation struct {
	ID               uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	PostID           *uint      `gorm:"index" json:"postId"`
	User1ID          uint       `gorm:"not null;uniqueIndex:idx_conversation_pair" json:"user1Id"`
	User2ID          uint       `gorm:"not null;uniqueIndex:idx_conversation_pair" json:"user2Id"`
	LastMessageID    *uint      `json:"lastMessageId"`
	LastMessageAt    *time.Time `gorm:"index" json:"lastMessageAt"`
	User1UnreadCount int        `gorm:"default:0" json:"user1UnreadCount"`
	User2UnreadCount int        `gorm:"default:0" json:"user2UnreadCount"`
	IsActive         bool       `gorm:"default:true" json:"isActive"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`

	User1       *User        `gorm:"foreignKey:User1ID" json:"-"`
	User2       *User        `gorm:"foreignKey:User2ID" json:"-"`
	LastMessage *Message     `gorm:"foreignKey:LastMessageID" json:"-"`
	Post        *ServicePost `gorm:"foreignKey:PostID" json:"-"`
}

// OtherUser 返回相对 userId 的对端参与者
func (c *Conversation) OtherUser(userID uint) *User {
	if c.User1ID == userID {
		return c.User2
	}
	return c.User1
}

// UnreadFor 返回 userId 这一侧的未读计数
func (c *Conversation) UnreadFor(userID uint) int {
	if c.User1ID == userID {
		return c.User1UnreadCount
	}
	return c.User2UnreadCount
}
