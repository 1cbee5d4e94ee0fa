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

func newPostService(db *gorm.DB) *PostService {
	return NewPostService(repository.NewPostRepository(db), repository.NewCategoryRepository(db))
}

func TestCreatePost(t *testing.T) {
	db := newTestDB(t)
	svc := newPostService(db)

	customer := seedUser(t, db, "customer", model.RoleCustomer)
	provider := seedUser(t, db, "provider", model.RoleProvider)
	category := seedCategory(t, db, "Plumbing")

	post, err := svc.Create(customer, CreatePostInput{
		CategoryID:  category.ID,
		Title:       "Fix kitchen sink",
		Description: "The sink is leaking",
		Budget:      "2000",
		Images:      []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"},
	})
	require.NoError(t, err)
	assert.Equal(t, model.PostStatusOpen, post.Status)
	assert.Equal(t, "Lahore", post.City, "city falls back to the poster's city")
	assert.True(t, post.HasAttachments)
	require.Len(t, post.Images, 2)
	assert.Equal(t, 0, post.Images[0].SortOrder)

	// provider 不能发布请求
	_, err = svc.Create(provider, CreatePostInput{
		CategoryID:  category.ID,
		Title:       "t",
		Description: "d",
	})
	require.Error(t, err)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.CodeForbidden, appErr.Code)

	// 分类必须存在
	_, err = svc.Create(customer, CreatePostInput{CategoryID: 999, Title: "t", Description: "d"})
	require.Error(t, err)
	appErr, ok = errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.CodeNotFound, appErr.Code)
}

func TestGetPostIncrementsViewCount(t *testing.T) {
	db := newTestDB(t)
	svc := newPostService(db)

	customer := seedUser(t, db, "customer", model.RoleCustomer)
	category := seedCategory(t, db, "Plumbing")
	post := seedPost(t, db, customer, category.ID, model.PostStatusOpen)

	_, err := svc.Get(post.ID)
	require.NoError(t, err)
	_, err = svc.Get(post.ID)
	require.NoError(t, err)

	var stored model.ServicePost
	require.NoError(t, db.First(&stored, post.ID).Error)
	assert.Equal(t, 2, stored.ViewCount)

	_, err = svc.Get(9999)
	require.Error(t, err)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.CodeNotFound, appErr.Code)
}

func TestListPostsDefaultsToOpen(t *testing.T) {
	db := newTestDB(t)
	svc := newPostService(db)

	customer := seedUser(t, db, "customer", model.RoleCustomer)
	category := seedCategory(t, db, "Plumbing")
	seedPost(t, db, customer, category.ID, model.PostStatusOpen)
	seedPost(t, db, customer, category.ID, model.PostStatusCompleted)

	posts, pagination, err := svc.List(repository.PostFilter{}, 1, 20)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, model.PostStatusOpen, posts[0].Status)
	assert.Equal(t, int64(1), pagination.Total)
}

func TestUpdatePostOwnerOnly(t *testing.T) {
	db := newTestDB(t)
	svc := newPostService(db)

	customer := seedUser(t, db, "customer", model.RoleCustomer)
	stranger := seedUser(t, db, "stranger", model.RoleCustomer)
	category := seedCategory(t, db, "Plumbing")
	post := seedPost(t, db, customer, category.ID, model.PostStatusOpen)

	_, err := svc.Update(stranger.ID, post.ID, UpdatePostInput{Title: "hijacked"})
	require.Error(t, err)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.CodeForbidden, appErr.Code)

	updated, err := svc.Update(customer.ID, post.ID, UpdatePostInput{
		Title:  "Fix bathroom sink",
		Status: model.PostStatusCompleted,
	})
	require.NoError(t, err)
	assert.Equal(t, "Fix bathroom sink", updated.Title)
	assert.Equal(t, model.PostStatusCompleted, updated.Status)
	assert.Equal(t, "The sink is leaking", updated.Description, "untouched fields keep their value")
}

func TestDeletePostCascadesImages(t *testing.T) {
	db := newTestDB(t)
	svc := newPostService(db)

	customer := seedUser(t, db, "customer", model.RoleCustomer)
	category := seedCategory(t, db, "Plumbing")

	post, err := svc.Create(customer, CreatePostInput{
		CategoryID:  category.ID,
		Title:       "Fix kitchen sink",
		Description: "The sink is leaking",
		Images:      []string{"https://cdn.example.com/a.jpg"},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(customer.ID, post.ID))

	var imageCount int64
	require.NoError(t, db.Model(&model.PostImage{}).Where("post_id = ?", post.ID).Count(&imageCount).Error)
	assert.Equal(t, int64(0), imageCount)
}
