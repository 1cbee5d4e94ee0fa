package service

import (
	"skilllink/model"
	"skilllink/pkg/errors"
	"skilllink/repository"
)

type ReviewService struct {
	reviews *repository.ReviewRepository
	posts   *repository.PostRepository
	users   *repository.UserRepository
}

func NewReviewService(reviews *repository.ReviewRepository, posts *repository.PostRepository, users *repository.UserRepository) *ReviewService {
	return &ReviewService{reviews: reviews, posts: posts, users: users}
}

type CreateReviewInput struct {
	PostID     uint
	RevieweeID uint
	Rating     float64
	Comment    string
}

func (s *ReviewService) Create(reviewer *model.User, in CreateReviewInput) (*model.Review, error) {
	if in.PostID == 0 || in.RevieweeID == 0 || in.Rating == 0 {
		return nil, errors.InvalidArg("Post ID, reviewee ID, and rating are required")
	}
	if in.Rating < 1 || in.Rating > 5 {
		return nil, errors.InvalidArg("Rating must be between 1 and 5")
	}
	if in.RevieweeID == reviewer.ID {
		return nil, errors.InvalidArg("Cannot review yourself")
	}

	post, err := s.posts.ByIDBare(in.PostID)
	if err != nil {
		return nil, errors.Internal("Failed to create review", err)
	}
	if post == nil {
		return nil, errors.NotFound("Post not found")
	}
	if post.Status != model.PostStatusCompleted {
		return nil, errors.InvalidArg("Reviews can only be left on completed posts")
	}

	reviewType := model.ReviewProviderToCustomer
	if reviewer.Role == model.RoleCustomer {
		reviewType = model.ReviewCustomerToProvider
	}
	// 只有请求的发布者本人能以客户身份评价
	if reviewType == model.ReviewCustomerToProvider && post.UserID != reviewer.ID {
		return nil, errors.Forbidden("You can only review work on your own posts")
	}
	if reviewType == model.ReviewProviderToCustomer && post.UserID != in.RevieweeID {
		return nil, errors.InvalidArg("Reviewee is not the owner of this post")
	}

	exists, err := s.reviews.Exists(in.PostID, reviewer.ID)
	if err != nil {
		return nil, errors.Internal("Failed to create review", err)
	}
	if exists {
		return nil, errors.AlreadyExists("You have already reviewed this post")
	}

	reviewee, err := s.users.ByID(in.RevieweeID)
	if err != nil {
		return nil, errors.Internal("Failed to create review", err)
	}
	if reviewee == nil {
		return nil, errors.NotFound("Reviewee not found")
	}

	review := &model.Review{
		PostID:     in.PostID,
		ReviewerID: reviewer.ID,
		RevieweeID: in.RevieweeID,
		Rating:     in.Rating,
		Comment:    in.Comment,
		ReviewType: reviewType,
	}
	if err := s.reviews.Create(review); err != nil {
		return nil, errors.Internal("Failed to create review", err)
	}

	// 重算被评价人的评分聚合
	if err := s.recomputeRating(in.RevieweeID); err != nil {
		logger.Warnf("Failed to recompute rating for user %d: %s", in.RevieweeID, err)
	}

	return review, nil
}

func (s *ReviewService) ListForUser(userID uint, page, limit int) ([]model.Review, *Pagination, error) {
	reviews, total, err := s.reviews.ListForUser(userID, limit, Offset(page, limit))
	if err != nil {
		return nil, nil, errors.Internal("Failed to fetch reviews", err)
	}
	return reviews, NewPagination(page, limit, total), nil
}

func (s *ReviewService) recomputeRating(userID uint) error {
	avg, count, err := s.reviews.AggregateForUser(userID)
	if err != nil {
		return err
	}
	return s.users.UpdateRating(userID, avg, count)
}
