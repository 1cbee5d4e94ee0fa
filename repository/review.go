package repository

import (
	"fmt"

	"gorm.io/gorm"

	"skilllink/model"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(review *model.Review) error {
	if err := r.db.Create(review).Error; err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// Exists 同一评价人对同一请求只能评价一次
func (r *ReviewRepository) Exists(postID, reviewerID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.Review{}).
		Where("post_id = ? AND reviewer_id = ?", postID, reviewerID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("database query failed: %w", err)
	}
	return count > 0, nil
}

func (r *ReviewRepository) ListForUser(userID uint, limit, offset int) ([]model.Review, int64, error) {
	q := r.db.Model(&model.Review{}).Where("reviewee_id = ?", userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	var reviews []model.Review
	err := q.
		Preload("Reviewer").
		Preload("Post").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, total, nil
}

// AggregateForUser 从 reviews 表计算某用户的评分均值和条数
func (r *ReviewRepository) AggregateForUser(userID uint) (float64, int, error) {
	var agg struct {
		Avg   float64
		Count int
	}
	err := r.db.Model(&model.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("reviewee_id = ?", userID).
		Scan(&agg).Error
	if err != nil {
		return 0, 0, fmt.Errorf("failed to aggregate reviews: %w", err)
	}
	return agg.Avg, agg.Count, nil
}

// RevieweeIDs 所有被评价过的用户，对账任务用
func (r *ReviewRepository) RevieweeIDs() ([]uint, error) {
	var ids []uint
	err := r.db.Model(&model.Review{}).Distinct("reviewee_id").Pluck("reviewee_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reviewees: %w", err)
	}
	return ids, nil
}
