package service

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"skilllink/model"
	"skilllink/pkg/errors"
	"skilllink/repository"
)

// MessageService 维护会话与消息，包括会话上冗余的未读计数和
// 最后一条消息指针。跨多条记录的写入都放在一个事务里。
type MessageService struct {
	db     *gorm.DB
	convs  *repository.ConversationRepository
	msgs   *repository.MessageRepository
	users  *repository.UserRepository
	notify *NotificationService
}

func NewMessageService(db *gorm.DB, convs *repository.ConversationRepository, msgs *repository.MessageRepository, users *repository.UserRepository, notify *NotificationService) *MessageService {
	return &MessageService{db: db, convs: convs, msgs: msgs, users: users, notify: notify}
}

// ConversationView 面向请求方的会话投影：对端参与者和己方未读数
// 在读取时根据存储的 user1/user2 顺序计算，不单独存储。
type ConversationView struct {
	ID            uint                  `json:"id"`
	OtherUser     *model.UserSummary    `json:"otherUser"`
	LastMessage   *model.MessageSummary `json:"lastMessage"`
	LastMessageAt *time.Time            `json:"lastMessageAt"`
	UnreadCount   int                   `json:"unreadCount"`
	Post          *model.PostSummary    `json:"post"`
	CreatedAt     time.Time             `json:"createdAt"`
}

func viewFor(conv *model.Conversation, userID uint) *ConversationView {
	return &ConversationView{
		ID:            conv.ID,
		OtherUser:     conv.OtherUser(userID).Summary(),
		LastMessage:   conv.LastMessage.Summary(),
		LastMessageAt: conv.LastMessageAt,
		UnreadCount:   conv.UnreadFor(userID),
		Post:          conv.Post.Summary(),
		CreatedAt:     conv.CreatedAt,
	}
}

// GetOrCreateConversation 返回两个用户之间的会话，不存在则创建。
// 创建时把用户对按 id 从小到大规范化存储，保证无序对在唯一索引下
// 只占一行。本操作不会创建任何消息。
func (s *MessageService) GetOrCreateConversation(userID, otherUserID uint, postID *uint) (*ConversationView, error) {
	if otherUserID == 0 {
		return nil, errors.InvalidArg("otherUserId is required")
	}
	if userID == otherUserID {
		return nil, errors.InvalidArg("Cannot create conversation with yourself")
	}

	conv, err := s.convs.FindPair(userID, otherUserID)
	if err != nil {
		return nil, errors.Internal("Failed to create conversation", err)
	}
	if conv == nil {
		user1, user2 := userID, otherUserID
		if user2 < user1 {
			user1, user2 = user2, user1
		}
		created := &model.Conversation{
			User1ID:  user1,
			User2ID:  user2,
			PostID:   postID,
			IsActive: true,
		}
		if err := s.convs.Create(created); err != nil {
			return nil, errors.Internal("Failed to create conversation", err)
		}
		conv, err = s.convs.ByID(created.ID)
		if err != nil || conv == nil {
			return nil, errors.Internal("Failed to create conversation", err)
		}
	}
	return viewFor(conv, userID), nil
}

// ListConversations 请求方参与且仍激活的会话，最近有消息的在前
func (s *MessageService) ListConversations(userID uint, page, limit int) ([]*ConversationView, *Pagination, error) {
	conversations, total, err := s.convs.ListForUser(userID, limit, Offset(page, limit))
	if err != nil {
		return nil, nil, errors.Internal("Failed to fetch conversations", err)
	}
	views := make([]*ConversationView, 0, len(conversations))
	for i := range conversations {
		views = append(views, viewFor(&conversations[i], userID))
	}
	return views, NewPagination(page, limit, total), nil
}

// ListMessages 返回会话消息（时间线正序），同时把发给请求方的所有
// 未读消息标记为已读已送达，并把请求方一侧的未读计数清零。计数是
// 绝对归零而不是按行数递减，重复调用是幂等的。
func (s *MessageService) ListMessages(userID, convID uint, page, limit int) ([]model.Message, *Pagination, error) {
	var messages []model.Message
	var total int64

	err := s.db.Transaction(func(tx *gorm.DB) error {
		convs := s.convs.WithTx(tx)
		msgs := s.msgs.WithTx(tx)

		conv, err := convs.ByIDForUser(convID, userID)
		if err != nil {
			return err
		}
		if conv == nil {
			return errors.NotFound("Conversation not found")
		}

		messages, total, err = msgs.ListByConversation(convID, limit, Offset(page, limit))
		if err != nil {
			return err
		}

		now := time.Now()
		if _, err := msgs.MarkConversationRead(convID, userID, now); err != nil {
			return err
		}
		return convs.ResetUnread(convID, conv.User1ID == userID)
	})
	if err != nil {
		if _, ok := errors.AsAppError(err); ok {
			return nil, nil, err
		}
		return nil, nil, errors.Internal("Failed to fetch messages", err)
	}
	return messages, NewPagination(page, limit, total), nil
}

type SendMessageInput struct {
	ConversationID uint
	ReceiverID     uint
	Content        string
	MessageType    model.MessageType
	AttachmentUrl  string
}

// SendMessage 写入消息并维护会话上的冗余字段：最后一条消息指针
// 无条件覆盖，未读计数按 receiverId 与 user1 的比较选一侧加一。
// receiverId 来自请求体，沿用观察到的行为不与会话参与者交叉校验。
func (s *MessageService) SendMessage(senderID uint, in SendMessageInput) (*model.Message, error) {
	if in.ConversationID == 0 || in.ReceiverID == 0 || in.Content == "" {
		return nil, errors.InvalidArg("conversationId, receiverId, and content are required")
	}
	msgType := in.MessageType
	if msgType == "" {
		msgType = model.MessageTypeText
	}
	if !msgType.Valid() {
		return nil, errors.InvalidArg("Invalid message type")
	}

	var message *model.Message
	err := s.db.Transaction(func(tx *gorm.DB) error {
		convs := s.convs.WithTx(tx)
		msgs := s.msgs.WithTx(tx)

		conv, err := convs.ByIDForUser(in.ConversationID, senderID)
		if err != nil {
			return err
		}
		if conv == nil {
			return errors.NotFound("Conversation not found")
		}

		now := time.Now()
		message = &model.Message{
			ConversationID: in.ConversationID,
			SenderID:       senderID,
			ReceiverID:     in.ReceiverID,
			MessageType:    msgType,
			Content:        in.Content,
			AttachmentUrl:  in.AttachmentUrl,
			// 没有实时传输层，"已送达"在这里表示服务端已接收
			IsDelivered: true,
			DeliveredAt: &now,
		}
		if err := msgs.Create(message); err != nil {
			return err
		}
		if err := convs.SetLastMessage(conv.ID, message.ID, now); err != nil {
			return err
		}
		return convs.IncrementUnread(conv.ID, conv.User1ID == in.ReceiverID)
	})
	if err != nil {
		if _, ok := errors.AsAppError(err); ok {
			return nil, err
		}
		return nil, errors.Internal("Failed to send message", err)
	}

	withSender, err := s.msgs.ByID(message.ID)
	if err != nil {
		return nil, errors.Internal("Failed to send message", err)
	}

	if withSender.Sender != nil {
		s.notify.Notify(in.ReceiverID, model.NotificationNewMessage,
			"New Message",
			fmt.Sprintf("%s sent you a message", withSender.Sender.FullName),
			nil)
	}
	return withSender, nil
}

// CountUnread 跨所有会话的未读总数，直接数消息表，与会话上的缓存
// 计数互相独立。
func (s *MessageService) CountUnread(userID uint) (int64, error) {
	count, err := s.msgs.CountUnreadForUser(userID)
	if err != nil {
		return 0, errors.Internal("Failed to fetch unread count", err)
	}
	return count, nil
}
