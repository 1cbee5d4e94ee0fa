package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"skilllink/model"
	"skilllink/repository"
)

func newReconcileService(db *gorm.DB) *ReconcileService {
	return NewReconcileService(
		repository.NewReviewRepository(db),
		repository.NewUserRepository(db),
		repository.NewConversationRepository(db),
		repository.NewMessageRepository(db))
}

func TestReconcileRatings(t *testing.T) {
	db := newTestDB(t)
	svc := newReconcileService(db)

	customer := seedUser(t, db, "customer", model.RoleCustomer)
	provider := seedUser(t, db, "provider", model.RoleProvider)
	category := seedCategory(t, db, "Plumbing")
	first := seedPost(t, db, customer, category.ID, model.PostStatusCompleted)
	second := seedPost(t, db, customer, category.ID, model.PostStatusCompleted)

	for _, r := range []struct {
		post   *model.ServicePost
		rating float64
	}{{first, 3}, {second, 5}} {
		require.NoError(t, db.Create(&model.Review{
			PostID:     r.post.ID,
			ReviewerID: customer.ID,
			RevieweeID: provider.ID,
			Rating:     r.rating,
			ReviewType: model.ReviewCustomerToProvider,
		}).Error)
	}

	require.NoError(t, svc.ReconcileRatings())

	var reviewee model.User
	require.NoError(t, db.First(&reviewee, provider.ID).Error)
	assert.InDelta(t, 4.0, reviewee.Rating, 0.001)
	assert.Equal(t, 2, reviewee.ReviewCount)
}

func TestReconcileUnreadCounts(t *testing.T) {
	db := newTestDB(t)
	messages := newMessageService(db)
	svc := newReconcileService(db)

	alice := seedUser(t, db, "alice", model.RoleCustomer)
	bob := seedUser(t, db, "bob", model.RoleProvider)

	view, err := messages.GetOrCreateConversation(alice.ID, bob.ID, nil)
	require.NoError(t, err)

	_, err = messages.SendMessage(alice.ID, SendMessageInput{ConversationID: view.ID, ReceiverID: bob.ID, Content: "one"})
	require.NoError(t, err)
	_, err = messages.SendMessage(alice.ID, SendMessageInput{ConversationID: view.ID, ReceiverID: bob.ID, Content: "two"})
	require.NoError(t, err)

	// 人为制造计数漂移
	require.NoError(t, db.Model(&model.Conversation{}).Where("id = ?", view.ID).
		Updates(map[string]interface{}{"user1_unread_count": 7, "user2_unread_count": 9}).Error)

	require.NoError(t, svc.ReconcileUnreadCounts())

	var conv model.Conversation
	require.NoError(t, db.First(&conv, view.ID).Error)
	assert.Equal(t, 2, conv.UnreadFor(bob.ID))
	assert.Equal(t, 0, conv.UnreadFor(alice.ID))
}
