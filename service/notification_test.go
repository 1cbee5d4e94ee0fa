package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skilllink/model"
	"skilllink/pkg/errors"
)

func TestNotificationLifecycle(t *testing.T) {
	db := newTestDB(t)
	svc := newNotificationService(db)

	alice := seedUser(t, db, "alice", model.RoleCustomer)
	bob := seedUser(t, db, "bob", model.RoleProvider)

	svc.Notify(alice.ID, model.NotificationProviderResponse, "New Response Received", "bob responded", nil)
	svc.Notify(alice.ID, model.NotificationNewMessage, "New Message", "bob sent you a message", nil)

	notifications, unread, pagination, err := svc.List(alice.ID, nil, 1, 50)
	require.NoError(t, err)
	require.Len(t, notifications, 2)
	assert.Equal(t, int64(2), unread)
	assert.Equal(t, int64(2), pagination.Total)

	// 别人的通知不能标记
	err = svc.MarkRead(bob.ID, notifications[0].ID)
	require.Error(t, err)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.CodeForbidden, appErr.Code)

	require.NoError(t, svc.MarkRead(alice.ID, notifications[0].ID))
	_, unread, _, err = svc.List(alice.ID, nil, 1, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	// isRead 过滤
	isRead := false
	filtered, _, _, err := svc.List(alice.ID, &isRead, 1, 50)
	require.NoError(t, err)
	require.Len(t, filtered, 1)

	require.NoError(t, svc.MarkAllRead(alice.ID))
	_, unread, _, err = svc.List(alice.ID, nil, 1, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(0), unread)

	require.NoError(t, svc.Delete(alice.ID, notifications[0].ID))
	remaining, _, _, err := svc.List(alice.ID, nil, 1, 50)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
}
