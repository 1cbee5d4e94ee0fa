package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"skilllink/model"
)

// PostFilter 列表查询的过滤条件
type PostFilter struct {
	CategoryID uint
	City       string
	Status     model.PostStatus
	Search     string
	UserID     uint
}

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(post *model.ServicePost) error {
	if err := r.db.Create(post).Error; err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	return nil
}

func (r *PostRepository) CreateImages(images []model.PostImage) error {
	if len(images) == 0 {
		return nil
	}
	if err := r.db.Create(&images).Error; err != nil {
		return fmt.Errorf("failed to create post images: %w", err)
	}
	return nil
}

func (r *PostRepository) ByID(id uint) (*model.ServicePost, error) {
	var post model.ServicePost
	err := r.db.
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") }).
		Preload("User").
		Preload("Category").
		Preload("Responses").
		Preload("Responses.Provider").
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return &post, nil
}

// ByIDBare 不带关联的查询，更新、删除前的归属检查用
func (r *PostRepository) ByIDBare(id uint) (*model.ServicePost, error) {
	var post model.ServicePost
	if err := r.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return &post, nil
}

func (r *PostRepository) List(filter PostFilter, limit, offset int) ([]model.ServicePost, int64, error) {
	q := r.db.Model(&model.ServicePost{})
	if filter.CategoryID != 0 {
		q = q.Where("category_id = ?", filter.CategoryID)
	}
	if filter.City != "" {
		q = q.Where("city LIKE ?", "%"+filter.City+"%")
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("title LIKE ? OR description LIKE ?", like, like)
	}
	if filter.UserID != 0 {
		q = q.Where("user_id = ?", filter.UserID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	var posts []model.ServicePost
	err := q.
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") }).
		Preload("User").
		Preload("Category").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, total, nil
}

func (r *PostRepository) Updates(post *model.ServicePost, fields map[string]interface{}) error {
	if err := r.db.Model(post).Updates(fields).Error; err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	return nil
}

func (r *PostRepository) Delete(post *model.ServicePost) error {
	if err := r.db.Where("post_id = ?", post.ID).Delete(&model.PostImage{}).Error; err != nil {
		return fmt.Errorf("failed to delete post images: %w", err)
	}
	if err := r.db.Delete(post).Error; err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return nil
}

func (r *PostRepository) IncrementViewCount(id uint) error {
	err := r.db.Model(&model.ServicePost{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error
	if err != nil {
		return fmt.Errorf("failed to increment view count: %w", err)
	}
	return nil
}

func (r *PostRepository) IncrementResponseCount(id uint) error {
	err := r.db.Model(&model.ServicePost{}).Where("id = ?", id).
		UpdateColumn("response_count", gorm.Expr("response_count + ?", 1)).Error
	if err != nil {
		return fmt.Errorf("failed to increment response count: %w", err)
	}
	return nil
}

func (r *PostRepository) UpdateStatus(id uint, status model.PostStatus) error {
	err := r.db.Model(&model.ServicePost{}).Where("id = ?", id).
		Update("status", status).Error
	if err != nil {
		return fmt.Errorf("failed to update post status: %w", err)
	}
	return nil
}
