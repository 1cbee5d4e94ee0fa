package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"skilllink/model"
)

type ResponseRepository struct {
	db *gorm.DB
}

func NewResponseRepository(db *gorm.DB) *ResponseRepository {
	return &ResponseRepository{db: db}
}

func (r *ResponseRepository) Create(resp *model.ProviderResponse) error {
	if err := r.db.Create(resp).Error; err != nil {
		return fmt.Errorf("failed to create response: %w", err)
	}
	return nil
}

func (r *ResponseRepository) ByID(id uint) (*model.ProviderResponse, error) {
	var resp model.ProviderResponse
	err := r.db.
		Preload("Post").
		Preload("Provider").
		First(&resp, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return &resp, nil
}

// Exists 同一服务商是否已响应过该请求
func (r *ResponseRepository) Exists(postID, providerID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.ProviderResponse{}).
		Where("post_id = ? AND provider_id = ?", postID, providerID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("database query failed: %w", err)
	}
	return count > 0, nil
}

func (r *ResponseRepository) ListByPost(postID uint) ([]model.ProviderResponse, error) {
	var responses []model.ProviderResponse
	err := r.db.Where("post_id = ?", postID).
		Preload("Provider").
		Order("created_at DESC").
		Find(&responses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list responses: %w", err)
	}
	return responses, nil
}

func (r *ResponseRepository) ListByProvider(providerID uint, status model.ResponseStatus, limit, offset int) ([]model.ProviderResponse, int64, error) {
	q := r.db.Model(&model.ProviderResponse{}).Where("provider_id = ?", providerID)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count responses: %w", err)
	}

	var responses []model.ProviderResponse
	err := q.
		Preload("Post").
		Preload("Post.User").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&responses).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list responses: %w", err)
	}
	return responses, total, nil
}

// ListForOwner 客户查看自己请求收到的所有响应
func (r *ResponseRepository) ListForOwner(ownerID uint, postID uint, limit, offset int) ([]model.ProviderResponse, int64, error) {
	q := r.db.Model(&model.ProviderResponse{}).
		Joins("JOIN service_posts ON service_posts.id = provider_responses.post_id").
		Where("service_posts.user_id = ?", ownerID)
	if postID != 0 {
		q = q.Where("provider_responses.post_id = ?", postID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count responses: %w", err)
	}

	var responses []model.ProviderResponse
	err := q.
		Preload("Post").
		Preload("Provider").
		Order("provider_responses.created_at DESC").
		Limit(limit).Offset(offset).
		Find(&responses).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list responses: %w", err)
	}
	return responses, total, nil
}

func (r *ResponseRepository) Updates(resp *model.ProviderResponse, fields map[string]interface{}) error {
	if err := r.db.Model(resp).Updates(fields).Error; err != nil {
		return fmt.Errorf("failed to update response: %w", err)
	}
	return nil
}

func (r *ResponseRepository) Delete(resp *model.ProviderResponse) error {
	if err := r.db.Delete(resp).Error; err != nil {
		return fmt.Errorf("failed to delete response: %w", err)
	}
	return nil
}
