package service

import (
	"fmt"

	"skilllink/model"
	"skilllink/pkg/errors"
	"skilllink/repository"
)

type ResponseService struct {
	responses *repository.ResponseRepository
	posts     *repository.PostRepository
	notify    *NotificationService
}

func NewResponseService(responses *repository.ResponseRepository, posts *repository.PostRepository, notify *NotificationService) *ResponseService {
	return &ResponseService{responses: responses, posts: posts, notify: notify}
}

type CreateResponseInput struct {
	PostID        uint
	ResponseType  model.ResponseType
	QuotedPrice   string
	Message       string
	EstimatedTime string
}

func (s *ResponseService) Create(provider *model.User, in CreateResponseInput) (*model.ProviderResponse, error) {
	if provider.Role != model.RoleProvider {
		return nil, errors.Forbidden("Only providers can respond to service posts")
	}
	if in.PostID == 0 || in.ResponseType == "" {
		return nil, errors.InvalidArg("Post ID and response type are required")
	}
	if !in.ResponseType.Valid() {
		return nil, errors.InvalidArg("Invalid response type")
	}

	post, err := s.posts.ByIDBare(in.PostID)
	if err != nil {
		return nil, errors.Internal("Failed to submit response", err)
	}
	if post == nil {
		return nil, errors.NotFound("Service post not found")
	}
	if post.Status != model.PostStatusOpen {
		return nil, errors.InvalidArg("This post is no longer accepting responses")
	}

	exists, err := s.responses.Exists(in.PostID, provider.ID)
	if err != nil {
		return nil, errors.Internal("Failed to submit response", err)
	}
	if exists {
		return nil, errors.AlreadyExists("You have already responded to this post")
	}

	resp := &model.ProviderResponse{
		PostID:        in.PostID,
		ProviderID:    provider.ID,
		ResponseType:  in.ResponseType,
		QuotedPrice:   in.QuotedPrice,
		Message:       in.Message,
		EstimatedTime: in.EstimatedTime,
		Status:        model.ResponseStatusPending,
	}
	if err := s.responses.Create(resp); err != nil {
		return nil, errors.Internal("Failed to submit response", err)
	}

	if err := s.posts.IncrementResponseCount(post.ID); err != nil {
		logger.Warnf("Failed to increment response count for post %d: %s", post.ID, err)
	}

	s.notify.Notify(post.UserID, model.NotificationProviderResponse,
		"New Response Received",
		fmt.Sprintf("%s responded to your service request: %s", provider.FullName, post.Title),
		&post.ID)

	complete, err := s.responses.ByID(resp.ID)
	if err != nil {
		return nil, errors.Internal("Failed to submit response", err)
	}
	return complete, nil
}

func (s *ResponseService) ListByPost(postID uint) ([]model.ProviderResponse, error) {
	responses, err := s.responses.ListByPost(postID)
	if err != nil {
		return nil, errors.Internal("Failed to fetch responses", err)
	}
	return responses, nil
}

func (s *ResponseService) ListMine(provider *model.User, status model.ResponseStatus, page, limit int) ([]model.ProviderResponse, *Pagination, error) {
	if provider.Role != model.RoleProvider {
		return nil, nil, errors.Forbidden("Only providers can view their responses")
	}
	responses, total, err := s.responses.ListByProvider(provider.ID, status, limit, Offset(page, limit))
	if err != nil {
		return nil, nil, errors.Internal("Failed to fetch your responses", err)
	}
	return responses, NewPagination(page, limit, total), nil
}

func (s *ResponseService) ListForMyPosts(owner *model.User, postID uint, page, limit int) ([]model.ProviderResponse, *Pagination, error) {
	if owner.Role != model.RoleCustomer {
		return nil, nil, errors.Forbidden("Only customers can view responses to their posts")
	}
	responses, total, err := s.responses.ListForOwner(owner.ID, postID, limit, Offset(page, limit))
	if err != nil {
		return nil, nil, errors.Internal("Failed to fetch responses", err)
	}
	return responses, NewPagination(page, limit, total), nil
}

func (s *ResponseService) Accept(customer *model.User, responseID uint) (*model.ProviderResponse, error) {
	if customer.Role != model.RoleCustomer {
		return nil, errors.Forbidden("Only customers can accept responses")
	}

	resp, err := s.responses.ByID(responseID)
	if err != nil {
		return nil, errors.Internal("Failed to accept response", err)
	}
	if resp == nil {
		return nil, errors.NotFound("Response not found")
	}
	if resp.Post == nil || resp.Post.UserID != customer.ID {
		return nil, errors.Forbidden("You can only accept responses to your own posts")
	}
	if resp.Status == model.ResponseStatusAccepted {
		return nil, errors.InvalidArg("This response is already accepted")
	}

	if err := s.responses.Updates(resp, map[string]interface{}{"status": model.ResponseStatusAccepted}); err != nil {
		return nil, errors.Internal("Failed to accept response", err)
	}
	if err := s.posts.UpdateStatus(resp.PostID, model.PostStatusAssigned); err != nil {
		return nil, errors.Internal("Failed to accept response", err)
	}

	s.notify.Notify(resp.ProviderID, model.NotificationRequestAccepted,
		"Response Accepted!",
		fmt.Sprintf("%s accepted your response for: %s", customer.FullName, resp.Post.Title),
		&resp.PostID)

	return resp, nil
}

type UpdateResponseInput struct {
	QuotedPrice   *string
	Message       string
	EstimatedTime string
	Status        model.ResponseStatus
}

func (s *ResponseService) Update(userID, responseID uint, in UpdateResponseInput) (*model.ProviderResponse, error) {
	resp, err := s.responses.ByID(responseID)
	if err != nil {
		return nil, errors.Internal("Failed to update response", err)
	}
	if resp == nil {
		return nil, errors.NotFound("Response not found")
	}
	if resp.ProviderID != userID {
		return nil, errors.Forbidden("You can only edit your own responses")
	}

	fields := map[string]interface{}{}
	if in.QuotedPrice != nil {
		fields["quoted_price"] = *in.QuotedPrice
	}
	if in.Message != "" {
		fields["message"] = in.Message
	}
	if in.EstimatedTime != "" {
		fields["estimated_time"] = in.EstimatedTime
	}
	if in.Status != "" {
		fields["status"] = in.Status
	}
	if len(fields) > 0 {
		if err := s.responses.Updates(resp, fields); err != nil {
			return nil, errors.Internal("Failed to update response", err)
		}
	}

	updated, err := s.responses.ByID(resp.ID)
	if err != nil {
		return nil, errors.Internal("Failed to update response", err)
	}
	return updated, nil
}

func (s *ResponseService) Withdraw(userID, responseID uint) error {
	resp, err := s.responses.ByID(responseID)
	if err != nil {
		return errors.Internal("Failed to withdraw response", err)
	}
	if resp == nil {
		return errors.NotFound("Response not found")
	}
	if resp.ProviderID != userID {
		return errors.Forbidden("You can only delete your own responses")
	}
	if err := s.responses.Delete(resp); err != nil {
		return errors.Internal("Failed to withdraw response", err)
	}
	return nil
}
