package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"skilllink/model"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *model.User) error {
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *UserRepository) ByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) ByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return &user, nil
}

// ByEmailOrPhone 注册时的唯一性检查
func (r *UserRepository) ByEmailOrPhone(email, phone string) (*model.User, error) {
	var user model.User
	err := r.db.Where("email = ? OR phone_number = ?", email, phone).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) Save(user *model.User) error {
	if err := r.db.Save(user).Error; err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

// UpdateRating 覆盖评分聚合字段
func (r *UserRepository) UpdateRating(userID uint, rating float64, reviewCount int) error {
	err := r.db.Model(&model.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{"rating": rating, "review_count": reviewCount}).Error
	if err != nil {
		return fmt.Errorf("failed to update user rating: %w", err)
	}
	return nil
}
