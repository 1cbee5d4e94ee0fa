package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"skilllink/model"
	"skilllink/repository"
	"skilllink/service"
)

type PostController struct {
	posts *service.PostService
}

func NewPostController(posts *service.PostService) *PostController {
	return &PostController{posts: posts}
}

func (ctrl *PostController) Create(c *gin.Context) {
	logger.Infof("[%s] Handling create post request", c.GetString("requestId"))

	var input struct {
		CategoryID  uint     `json:"categoryId"`
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Budget      string   `json:"budget"`
		Location    string   `json:"location"`
		City        string   `json:"city"`
		Timing      string   `json:"timing"`
		Images      []string `json:"images"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"status": "error", "message": "Invalid input"})
		return
	}

	post, err := ctrl.posts.Create(currentUser(c), service.CreatePostInput{
		CategoryID:  input.CategoryID,
		Title:       input.Title,
		Description: input.Description,
		Budget:      input.Budget,
		Location:    input.Location,
		City:        input.City,
		Timing:      input.Timing,
		Images:      input.Images,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, "Service post created successfully", gin.H{"post": post})
}

func (ctrl *PostController) List(c *gin.Context) {
	page, limit := parsePage(c, 20)

	filter := repository.PostFilter{
		City:   c.Query("city"),
		Search: c.Query("search"),
		Status: model.PostStatus(c.DefaultQuery("status", string(model.PostStatusOpen))),
	}
	if v := c.Query("categoryId"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 64); err == nil {
			filter.CategoryID = uint(id)
		}
	}

	posts, pagination, err := ctrl.posts.List(filter, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"posts": posts, "pagination": pagination})
}

func (ctrl *PostController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(400, gin.H{"status": "error", "message": "Invalid post ID"})
		return
	}
	post, err := ctrl.posts.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"post": post})
}

func (ctrl *PostController) ListMine(c *gin.Context) {
	page, limit := parsePage(c, 20)
	status := model.PostStatus(c.Query("status"))

	posts, pagination, err := ctrl.posts.ListMine(currentUser(c).ID, status, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"posts": posts, "pagination": pagination})
}

func (ctrl *PostController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(400, gin.H{"status": "error", "message": "Invalid post ID"})
		return
	}

	var input struct {
		Title       string  `json:"title"`
		Description string  `json:"description"`
		Budget      *string `json:"budget"`
		Location    string  `json:"location"`
		City        string  `json:"city"`
		Timing      string  `json:"timing"`
		Status      string  `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"status": "error", "message": "Invalid input"})
		return
	}

	post, err := ctrl.posts.Update(currentUser(c).ID, id, service.UpdatePostInput{
		Title:       input.Title,
		Description: input.Description,
		Budget:      input.Budget,
		Location:    input.Location,
		City:        input.City,
		Timing:      input.Timing,
		Status:      model.PostStatus(input.Status),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, gin.H{"status": "success", "message": "Post updated successfully", "data": gin.H{"post": post}})
}

func (ctrl *PostController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(400, gin.H{"status": "error", "message": "Invalid post ID"})
		return
	}
	if err := ctrl.posts.Delete(currentUser(c).ID, id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Post deleted successfully")
}
