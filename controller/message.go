package controller

import (
	"github.com/gin-gonic/gin"

	"skilllink/model"
	"skilllink/service"
)

type MessageController struct {
	messages *service.MessageService
}

func NewMessageController(messages *service.MessageService) *MessageController {
	return &MessageController{messages: messages}
}

func (ctrl *MessageController) GetOrCreateConversation(c *gin.Context) {
	var input struct {
		OtherUserID uint  `json:"otherUserId"`
		PostID      *uint `json:"postId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"status": "error", "message": "Invalid input"})
		return
	}

	conversation, err := ctrl.messages.GetOrCreateConversation(currentUser(c).ID, input.OtherUserID, input.PostID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"conversation": conversation})
}

func (ctrl *MessageController) ListConversations(c *gin.Context) {
	page, limit := parsePage(c, 20)

	conversations, pagination, err := ctrl.messages.ListConversations(currentUser(c).ID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"conversations": conversations, "pagination": pagination})
}

// ListMessages 拉取会话消息，同时把发给当前用户的未读消息置为已读。
func (ctrl *MessageController) ListMessages(c *gin.Context) {
	convID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(400, gin.H{"status": "error", "message": "Invalid conversation ID"})
		return
	}
	page, limit := parsePage(c, 50)

	messages, pagination, err := ctrl.messages.ListMessages(currentUser(c).ID, convID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"messages": messages, "pagination": pagination})
}

func (ctrl *MessageController) Send(c *gin.Context) {
	logger.Infof("[%s] Handling send message request", c.GetString("requestId"))

	var input struct {
		ConversationID uint   `json:"conversationId"`
		ReceiverID     uint   `json:"receiverId"`
		Content        string `json:"content"`
		MessageType    string `json:"messageType"`
		AttachmentUrl  string `json:"attachmentUrl"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"status": "error", "message": "Invalid input"})
		return
	}

	message, err := ctrl.messages.SendMessage(currentUser(c).ID, service.SendMessageInput{
		ConversationID: input.ConversationID,
		ReceiverID:     input.ReceiverID,
		Content:        input.Content,
		MessageType:    model.MessageType(input.MessageType),
		AttachmentUrl:  input.AttachmentUrl,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, "Message sent successfully", gin.H{"message": message})
}

func (ctrl *MessageController) UnreadCount(c *gin.Context) {
	count, err := ctrl.messages.CountUnread(currentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"unreadCount": count})
}
