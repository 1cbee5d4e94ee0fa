package controller

import (
	"github.com/gin-gonic/gin"

	"skilllink/service"
)

type ReviewController struct {
	reviews *service.ReviewService
}

func NewReviewController(reviews *service.ReviewService) *ReviewController {
	return &ReviewController{reviews: reviews}
}

func (ctrl *ReviewController) Create(c *gin.Context) {
	logger.Infof("[%s] Handling create review request", c.GetString("requestId"))

	var input struct {
		PostID     uint    `json:"postId"`
		RevieweeID uint    `json:"revieweeId"`
		Rating     float64 `json:"rating"`
		Comment    string  `json:"comment"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"status": "error", "message": "Invalid input"})
		return
	}

	review, err := ctrl.reviews.Create(currentUser(c), service.CreateReviewInput{
		PostID:     input.PostID,
		RevieweeID: input.RevieweeID,
		Rating:     input.Rating,
		Comment:    input.Comment,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, "Review submitted successfully", gin.H{"review": review})
}

func (ctrl *ReviewController) ListForUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		c.JSON(400, gin.H{"status": "error", "message": "Invalid user ID"})
		return
	}
	page, limit := parsePage(c, 20)

	reviews, pagination, err := ctrl.reviews.ListForUser(userID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"reviews": reviews, "pagination": pagination})
}
