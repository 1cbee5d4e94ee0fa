package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"skilllink/model"
	"skilllink/pkg/errors"
	"skilllink/repository"
)

func newReviewService(db *gorm.DB) *ReviewService {
	return NewReviewService(
		repository.NewReviewRepository(db),
		repository.NewPostRepository(db),
		repository.NewUserRepository(db))
}

func TestCreateReviewUpdatesAggregate(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewService(db)

	customer := seedUser(t, db, "customer", model.RoleCustomer)
	provider := seedUser(t, db, "provider", model.RoleProvider)
	category := seedCategory(t, db, "Plumbing")
	first := seedPost(t, db, customer, category.ID, model.PostStatusCompleted)
	second := seedPost(t, db, customer, category.ID, model.PostStatusCompleted)

	review, err := svc.Create(customer, CreateReviewInput{
		PostID:     first.ID,
		RevieweeID: provider.ID,
		Rating:     4,
		Comment:    "Good work",
	})
	require.NoError(t, err)
	assert.Equal(t, model.ReviewCustomerToProvider, review.ReviewType)

	_, err = svc.Create(customer, CreateReviewInput{
		PostID:     second.ID,
		RevieweeID: provider.ID,
		Rating:     5,
	})
	require.NoError(t, err)

	var reviewee model.User
	require.NoError(t, db.First(&reviewee, provider.ID).Error)
	assert.InDelta(t, 4.5, reviewee.Rating, 0.001)
	assert.Equal(t, 2, reviewee.ReviewCount)
}

func TestCreateReviewValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewService(db)

	customer := seedUser(t, db, "customer", model.RoleCustomer)
	provider := seedUser(t, db, "provider", model.RoleProvider)
	category := seedCategory(t, db, "Plumbing")
	completed := seedPost(t, db, customer, category.ID, model.PostStatusCompleted)
	open := seedPost(t, db, customer, category.ID, model.PostStatusOpen)

	// 自评
	_, err := svc.Create(customer, CreateReviewInput{PostID: completed.ID, RevieweeID: customer.ID, Rating: 5})
	require.Error(t, err)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.CodeInvalidArgument, appErr.Code)

	// 评分超出范围
	_, err = svc.Create(customer, CreateReviewInput{PostID: completed.ID, RevieweeID: provider.ID, Rating: 6})
	require.Error(t, err)

	// 未完成的请求不能评价
	_, err = svc.Create(customer, CreateReviewInput{PostID: open.ID, RevieweeID: provider.ID, Rating: 4})
	require.Error(t, err)
	appErr, ok = errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.CodeInvalidArgument, appErr.Code)

	// 同一条请求只能评价一次
	_, err = svc.Create(customer, CreateReviewInput{PostID: completed.ID, RevieweeID: provider.ID, Rating: 4})
	require.NoError(t, err)
	_, err = svc.Create(customer, CreateReviewInput{PostID: completed.ID, RevieweeID: provider.ID, Rating: 3})
	require.Error(t, err)
	appErr, ok = errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.CodeAlreadyExists, appErr.Code)
}

func TestCreateReviewNotPostOwner(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewService(db)

	customer := seedUser(t, db, "customer", model.RoleCustomer)
	stranger := seedUser(t, db, "stranger", model.RoleCustomer)
	provider := seedUser(t, db, "provider", model.RoleProvider)
	category := seedCategory(t, db, "Plumbing")
	post := seedPost(t, db, customer, category.ID, model.PostStatusCompleted)

	_, err := svc.Create(stranger, CreateReviewInput{PostID: post.ID, RevieweeID: provider.ID, Rating: 4})
	require.Error(t, err)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.CodeForbidden, appErr.Code)
}

func TestProviderReviewsCustomer(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewService(db)

	customer := seedUser(t, db, "customer", model.RoleCustomer)
	provider := seedUser(t, db, "provider", model.RoleProvider)
	category := seedCategory(t, db, "Plumbing")
	post := seedPost(t, db, customer, category.ID, model.PostStatusCompleted)

	review, err := svc.Create(provider, CreateReviewInput{
		PostID:     post.ID,
		RevieweeID: customer.ID,
		Rating:     5,
		Comment:    "Easy to work with",
	})
	require.NoError(t, err)
	assert.Equal(t, model.ReviewProviderToCustomer, review.ReviewType)

	// 被评价方必须是请求的发布者
	other := seedUser(t, db, "other", model.RoleCustomer)
	_, err = svc.Create(provider, CreateReviewInput{PostID: post.ID, RevieweeID: other.ID, Rating: 5})
	require.Error(t, err)
}
