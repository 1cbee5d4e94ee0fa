package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skilllink/model"
	"skilllink/pkg/errors"
)

func TestGetOrCreateConversationCanonicalPair(t *testing.T) {
	db := newTestDB(t)
	svc := newMessageService(db)

	alice := seedUser(t, db, "alice", model.RoleCustomer)
	bob := seedUser(t, db, "bob", model.RoleProvider)

	// 先由 id 较大的一方发起
	view, err := svc.GetOrCreateConversation(bob.ID, alice.ID, nil)
	require.NoError(t, err)
	require.NotNil(t, view)
	assert.Equal(t, alice.ID, view.OtherUser.ID)

	var conv model.Conversation
	require.NoError(t, db.First(&conv, view.ID).Error)
	assert.Equal(t, alice.ID, conv.User1ID, "pair should be stored smaller id first")
	assert.Equal(t, bob.ID, conv.User2ID)

	// 反方向再请求一次，拿到的是同一个会话
	again, err := svc.GetOrCreateConversation(alice.ID, bob.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, view.ID, again.ID)
	assert.Equal(t, bob.ID, again.OtherUser.ID)

	var count int64
	require.NoError(t, db.Model(&model.Conversation{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGetOrCreateConversationWithSelf(t *testing.T) {
	db := newTestDB(t)
	svc := newMessageService(db)

	alice := seedUser(t, db, "alice", model.RoleCustomer)

	_, err := svc.GetOrCreateConversation(alice.ID, alice.ID, nil)
	require.Error(t, err)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.CodeInvalidArgument, appErr.Code)
}

func TestSendMessageUpdatesConversation(t *testing.T) {
	db := newTestDB(t)
	svc := newMessageService(db)

	alice := seedUser(t, db, "alice", model.RoleCustomer)
	bob := seedUser(t, db, "bob", model.RoleProvider)

	view, err := svc.GetOrCreateConversation(alice.ID, bob.ID, nil)
	require.NoError(t, err)

	msg, err := svc.SendMessage(alice.ID, SendMessageInput{
		ConversationID: view.ID,
		ReceiverID:     bob.ID,
		Content:        "hello",
	})
	require.NoError(t, err)
	assert.Equal(t, model.MessageTypeText, msg.MessageType)
	assert.True(t, msg.IsDelivered)
	require.NotNil(t, msg.Sender)
	assert.Equal(t, alice.ID, msg.Sender.ID)

	var conv model.Conversation
	require.NoError(t, db.First(&conv, view.ID).Error)
	require.NotNil(t, conv.LastMessageID)
	assert.Equal(t, msg.ID, *conv.LastMessageID)
	require.NotNil(t, conv.LastMessageAt)
	assert.Equal(t, 1, conv.UnreadFor(bob.ID))
	assert.Equal(t, 0, conv.UnreadFor(alice.ID))

	// 接收方会收到一条 new_message 通知
	var notification model.Notification
	require.NoError(t, db.Where("user_id = ?", bob.ID).First(&notification).Error)
	assert.Equal(t, model.NotificationNewMessage, notification.Type)
}

func TestSendMessageNotParticipant(t *testing.T) {
	db := newTestDB(t)
	svc := newMessageService(db)

	alice := seedUser(t, db, "alice", model.RoleCustomer)
	bob := seedUser(t, db, "bob", model.RoleProvider)
	carol := seedUser(t, db, "carol", model.RoleProvider)

	view, err := svc.GetOrCreateConversation(alice.ID, bob.ID, nil)
	require.NoError(t, err)

	_, err = svc.SendMessage(carol.ID, SendMessageInput{
		ConversationID: view.ID,
		ReceiverID:     alice.ID,
		Content:        "let me in",
	})
	require.Error(t, err)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.CodeNotFound, appErr.Code)
}

func TestListMessagesMarksReadAndResetsCounter(t *testing.T) {
	db := newTestDB(t)
	svc := newMessageService(db)

	alice := seedUser(t, db, "alice", model.RoleCustomer)
	bob := seedUser(t, db, "bob", model.RoleProvider)

	view, err := svc.GetOrCreateConversation(alice.ID, bob.ID, nil)
	require.NoError(t, err)

	for _, content := range []string{"one", "two", "three"} {
		_, err := svc.SendMessage(alice.ID, SendMessageInput{
			ConversationID: view.ID,
			ReceiverID:     bob.ID,
			Content:        content,
		})
		require.NoError(t, err)
	}

	var conv model.Conversation
	require.NoError(t, db.First(&conv, view.ID).Error)
	assert.Equal(t, 3, conv.UnreadFor(bob.ID))

	messages, _, err := svc.ListMessages(bob.ID, view.ID, 1, 50)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, "one", messages[0].Content)
	assert.Equal(t, "three", messages[2].Content)

	// 拉取后对方发来的消息全部已读已送达，计数归零
	var unreadRows int64
	require.NoError(t, db.Model(&model.Message{}).
		Where("receiver_id = ? AND is_read = ?", bob.ID, false).
		Count(&unreadRows).Error)
	assert.Equal(t, int64(0), unreadRows)

	require.NoError(t, db.First(&conv, view.ID).Error)
	assert.Equal(t, 0, conv.UnreadFor(bob.ID))

	// 重复拉取是幂等的
	_, _, err = svc.ListMessages(bob.ID, view.ID, 1, 50)
	require.NoError(t, err)
	require.NoError(t, db.First(&conv, view.ID).Error)
	assert.Equal(t, 0, conv.UnreadFor(bob.ID))

	// 清零后再来一条，从 0 重新开始计数
	_, err = svc.SendMessage(alice.ID, SendMessageInput{
		ConversationID: view.ID,
		ReceiverID:     bob.ID,
		Content:        "four",
	})
	require.NoError(t, err)
	require.NoError(t, db.First(&conv, view.ID).Error)
	assert.Equal(t, 1, conv.UnreadFor(bob.ID))
}

func TestListMessagesNotParticipant(t *testing.T) {
	db := newTestDB(t)
	svc := newMessageService(db)

	alice := seedUser(t, db, "alice", model.RoleCustomer)
	bob := seedUser(t, db, "bob", model.RoleProvider)
	carol := seedUser(t, db, "carol", model.RoleProvider)

	view, err := svc.GetOrCreateConversation(alice.ID, bob.ID, nil)
	require.NoError(t, err)

	_, _, err = svc.ListMessages(carol.ID, view.ID, 1, 50)
	require.Error(t, err)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.CodeNotFound, appErr.Code)
}

func TestCountUnreadAcrossConversations(t *testing.T) {
	db := newTestDB(t)
	svc := newMessageService(db)

	alice := seedUser(t, db, "alice", model.RoleCustomer)
	bob := seedUser(t, db, "bob", model.RoleProvider)
	carol := seedUser(t, db, "carol", model.RoleProvider)

	withBob, err := svc.GetOrCreateConversation(alice.ID, bob.ID, nil)
	require.NoError(t, err)
	withCarol, err := svc.GetOrCreateConversation(alice.ID, carol.ID, nil)
	require.NoError(t, err)

	_, err = svc.SendMessage(bob.ID, SendMessageInput{ConversationID: withBob.ID, ReceiverID: alice.ID, Content: "hi"})
	require.NoError(t, err)
	_, err = svc.SendMessage(bob.ID, SendMessageInput{ConversationID: withBob.ID, ReceiverID: alice.ID, Content: "there"})
	require.NoError(t, err)
	_, err = svc.SendMessage(carol.ID, SendMessageInput{ConversationID: withCarol.ID, ReceiverID: alice.ID, Content: "hey"})
	require.NoError(t, err)
	_, err = svc.SendMessage(alice.ID, SendMessageInput{ConversationID: withBob.ID, ReceiverID: bob.ID, Content: "hello"})
	require.NoError(t, err)

	count, err := svc.CountUnread(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	count, err = svc.CountUnread(bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// 读掉和 bob 的会话后只剩 carol 的那条
	_, _, err = svc.ListMessages(alice.ID, withBob.ID, 1, 50)
	require.NoError(t, err)

	count, err = svc.CountUnread(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = svc.CountUnread(bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestListConversationsRecentFirst(t *testing.T) {
	db := newTestDB(t)
	svc := newMessageService(db)

	alice := seedUser(t, db, "alice", model.RoleCustomer)
	bob := seedUser(t, db, "bob", model.RoleProvider)
	carol := seedUser(t, db, "carol", model.RoleProvider)

	withBob, err := svc.GetOrCreateConversation(alice.ID, bob.ID, nil)
	require.NoError(t, err)
	withCarol, err := svc.GetOrCreateConversation(alice.ID, carol.ID, nil)
	require.NoError(t, err)

	_, err = svc.SendMessage(carol.ID, SendMessageInput{ConversationID: withCarol.ID, ReceiverID: alice.ID, Content: "first"})
	require.NoError(t, err)
	_, err = svc.SendMessage(bob.ID, SendMessageInput{ConversationID: withBob.ID, ReceiverID: alice.ID, Content: "second"})
	require.NoError(t, err)

	views, pagination, err := svc.ListConversations(alice.ID, 1, 20)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, int64(2), pagination.Total)

	// 最近有消息的会话排在前面
	assert.Equal(t, withBob.ID, views[0].ID)
	assert.Equal(t, withCarol.ID, views[1].ID)
	require.NotNil(t, views[0].LastMessage)
	assert.Equal(t, "second", views[0].LastMessage.Content)
	assert.Equal(t, 1, views[0].UnreadCount)
}
