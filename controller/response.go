package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"skilllink/model"
	"skilllink/service"
)

type ResponseController struct {
	responses *service.ResponseService
}

func NewResponseController(responses *service.ResponseService) *ResponseController {
	return &ResponseController{responses: responses}
}

func (ctrl *ResponseController) Create(c *gin.Context) {
	logger.Infof("[%s] Handling create response request", c.GetString("requestId"))

	var input struct {
		PostID        uint   `json:"postId"`
		ResponseType  string `json:"responseType"`
		QuotedPrice   string `json:"quotedPrice"`
		Message       string `json:"message"`
		EstimatedTime string `json:"estimatedTime"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"status": "error", "message": "Invalid input"})
		return
	}

	resp, err := ctrl.responses.Create(currentUser(c), service.CreateResponseInput{
		PostID:        input.PostID,
		ResponseType:  model.ResponseType(input.ResponseType),
		QuotedPrice:   input.QuotedPrice,
		Message:       input.Message,
		EstimatedTime: input.EstimatedTime,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, "Response submitted successfully", gin.H{"response": resp})
}

func (ctrl *ResponseController) ListByPost(c *gin.Context) {
	postID, ok := parseIDParam(c, "postId")
	if !ok {
		c.JSON(400, gin.H{"status": "error", "message": "Invalid post ID"})
		return
	}
	responses, err := ctrl.responses.ListByPost(postID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"responses": responses})
}

func (ctrl *ResponseController) ListMine(c *gin.Context) {
	page, limit := parsePage(c, 20)
	status := model.ResponseStatus(c.Query("status"))

	responses, pagination, err := ctrl.responses.ListMine(currentUser(c), status, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"responses": responses, "pagination": pagination})
}

func (ctrl *ResponseController) ListForMyPosts(c *gin.Context) {
	page, limit := parsePage(c, 20)

	var postID uint
	if v := c.Query("postId"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 64); err == nil {
			postID = uint(id)
		}
	}

	responses, pagination, err := ctrl.responses.ListForMyPosts(currentUser(c), postID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"responses": responses, "pagination": pagination})
}

func (ctrl *ResponseController) Accept(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(400, gin.H{"status": "error", "message": "Invalid response ID"})
		return
	}
	resp, err := ctrl.responses.Accept(currentUser(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, gin.H{"status": "success", "message": "Response accepted successfully", "data": gin.H{"response": resp}})
}

func (ctrl *ResponseController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(400, gin.H{"status": "error", "message": "Invalid response ID"})
		return
	}

	var input struct {
		QuotedPrice   *string `json:"quotedPrice"`
		Message       string  `json:"message"`
		EstimatedTime string  `json:"estimatedTime"`
		Status        string  `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"status": "error", "message": "Invalid input"})
		return
	}

	resp, err := ctrl.responses.Update(currentUser(c).ID, id, service.UpdateResponseInput{
		QuotedPrice:   input.QuotedPrice,
		Message:       input.Message,
		EstimatedTime: input.EstimatedTime,
		Status:        model.ResponseStatus(input.Status),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, gin.H{"status": "success", "message": "Response updated successfully", "data": gin.H{"response": resp}})
}

func (ctrl *ResponseController) Withdraw(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(400, gin.H{"status": "error", "message": "Invalid response ID"})
		return
	}
	if err := ctrl.responses.Withdraw(currentUser(c).ID, id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Response withdrawn successfully")
}
