package service

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"skilllink/model"
	"skilllink/repository"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, model.Migrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string, role model.Role) *model.User {
	t.Helper()
	user := &model.User{
		Email:       fmt.Sprintf("%s@example.com", name),
		PhoneNumber: fmt.Sprintf("+1555%s", name),
		Password:    "not-a-real-hash",
		FullName:    name,
		Role:        role,
		City:        "Lahore",
		IsActive:    true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedCategory(t *testing.T, db *gorm.DB, name string) *model.Category {
	t.Helper()
	category := &model.Category{Name: name, IsActive: true}
	require.NoError(t, db.Create(category).Error)
	return category
}

func seedPost(t *testing.T, db *gorm.DB, owner *model.User, categoryID uint, status model.PostStatus) *model.ServicePost {
	t.Helper()
	post := &model.ServicePost{
		UserID:      owner.ID,
		CategoryID:  categoryID,
		Title:       "Fix kitchen sink",
		Description: "The sink is leaking",
		City:        owner.City,
		Status:      status,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

func newNotificationService(db *gorm.DB) *NotificationService {
	return NewNotificationService(repository.NewNotificationRepository(db), repository.NewUserRepository(db), nil, nil)
}

func newMessageService(db *gorm.DB) *MessageService {
	return NewMessageService(db,
		repository.NewConversationRepository(db),
		repository.NewMessageRepository(db),
		repository.NewUserRepository(db),
		newNotificationService(db))
}
