package service

import (
	"skilllink/model"
	"skilllink/pkg/errors"
	"skilllink/repository"
)

type PostService struct {
	posts      *repository.PostRepository
	categories *repository.CategoryRepository
}

func NewPostService(posts *repository.PostRepository, categories *repository.CategoryRepository) *PostService {
	return &PostService{posts: posts, categories: categories}
}

type CreatePostInput struct {
	CategoryID  uint
	Title       string
	Description string
	Budget      string
	Location    string
	City        string
	Timing      string
	Images      []string
}

func (s *PostService) Create(user *model.User, in CreatePostInput) (*model.ServicePost, error) {
	if user.Role != model.RoleCustomer {
		return nil, errors.Forbidden("Only customers can create service posts")
	}
	if in.CategoryID == 0 || in.Title == "" || in.Description == "" {
		return nil, errors.InvalidArg("Category, title, and description are required")
	}

	category, err := s.categories.ByID(in.CategoryID)
	if err != nil {
		return nil, errors.Internal("Failed to create service post", err)
	}
	if category == nil {
		return nil, errors.NotFound("Category not found")
	}

	city := in.City
	if city == "" {
		city = user.City
	}
	post := &model.ServicePost{
		UserID:         user.ID,
		CategoryID:     in.CategoryID,
		Title:          in.Title,
		Description:    in.Description,
		Budget:         in.Budget,
		Location:       in.Location,
		City:           city,
		Timing:         in.Timing,
		Status:         model.PostStatusOpen,
		HasAttachments: len(in.Images) > 0,
	}
	if err := s.posts.Create(post); err != nil {
		return nil, errors.Internal("Failed to create service post", err)
	}

	if len(in.Images) > 0 {
		images := make([]model.PostImage, 0, len(in.Images))
		for i, url := range in.Images {
			images = append(images, model.PostImage{PostID: post.ID, ImageUrl: url, SortOrder: i})
		}
		if err := s.posts.CreateImages(images); err != nil {
			return nil, errors.Internal("Failed to create service post", err)
		}
	}

	complete, err := s.posts.ByID(post.ID)
	if err != nil {
		return nil, errors.Internal("Failed to create service post", err)
	}
	return complete, nil
}

func (s *PostService) List(filter repository.PostFilter, page, limit int) ([]model.ServicePost, *Pagination, error) {
	// 默认只展示开放中的请求
	if filter.Status == "" {
		filter.Status = model.PostStatusOpen
	}
	posts, total, err := s.posts.List(filter, limit, Offset(page, limit))
	if err != nil {
		return nil, nil, errors.Internal("Failed to fetch posts", err)
	}
	return posts, NewPagination(page, limit, total), nil
}

func (s *PostService) Get(id uint) (*model.ServicePost, error) {
	post, err := s.posts.ByID(id)
	if err != nil {
		return nil, errors.Internal("Failed to fetch post", err)
	}
	if post == nil {
		return nil, errors.NotFound("Post not found")
	}
	if err := s.posts.IncrementViewCount(post.ID); err != nil {
		logger.Warnf("Failed to increment view count for post %d: %s", post.ID, err)
	}
	return post, nil
}

func (s *PostService) ListMine(userID uint, status model.PostStatus, page, limit int) ([]model.ServicePost, *Pagination, error) {
	filter := repository.PostFilter{UserID: userID, Status: status}
	posts, total, err := s.posts.List(filter, limit, Offset(page, limit))
	if err != nil {
		return nil, nil, errors.Internal("Failed to fetch your posts", err)
	}
	return posts, NewPagination(page, limit, total), nil
}

type UpdatePostInput struct {
	Title       string
	Description string
	Budget      *string
	Location    string
	City        string
	Timing      string
	Status      model.PostStatus
}

func (s *PostService) Update(userID, postID uint, in UpdatePostInput) (*model.ServicePost, error) {
	post, err := s.posts.ByIDBare(postID)
	if err != nil {
		return nil, errors.Internal("Failed to update post", err)
	}
	if post == nil {
		return nil, errors.NotFound("Post not found")
	}
	if post.UserID != userID {
		return nil, errors.Forbidden("You can only edit your own posts")
	}
	if in.Status != "" && !in.Status.Valid() {
		return nil, errors.InvalidArg("Invalid post status")
	}

	fields := map[string]interface{}{}
	if in.Title != "" {
		fields["title"] = in.Title
	}
	if in.Description != "" {
		fields["description"] = in.Description
	}
	if in.Budget != nil {
		fields["budget"] = *in.Budget
	}
	if in.Location != "" {
		fields["location"] = in.Location
	}
	if in.City != "" {
		fields["city"] = in.City
	}
	if in.Timing != "" {
		fields["timing"] = in.Timing
	}
	if in.Status != "" {
		fields["status"] = in.Status
	}
	if len(fields) > 0 {
		if err := s.posts.Updates(post, fields); err != nil {
			return nil, errors.Internal("Failed to update post", err)
		}
	}

	updated, err := s.posts.ByID(post.ID)
	if err != nil {
		return nil, errors.Internal("Failed to update post", err)
	}
	return updated, nil
}

func (s *PostService) Delete(userID, postID uint) error {
	post, err := s.posts.ByIDBare(postID)
	if err != nil {
		return errors.Internal("Failed to delete post", err)
	}
	if post == nil {
		return errors.NotFound("Post not found")
	}
	if post.UserID != userID {
		return errors.Forbidden("You can only delete your own posts")
	}
	if err := s.posts.Delete(post); err != nil {
		return errors.Internal("Failed to delete post", err)
	}
	return nil
}
