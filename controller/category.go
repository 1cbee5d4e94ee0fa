package controller

import (
	"github.com/gin-gonic/gin"

	"skilllink/repository"
)

type CategoryController struct {
	categories *repository.CategoryRepository
}

func NewCategoryController(categories *repository.CategoryRepository) *CategoryController {
	return &CategoryController{categories: categories}
}

func (ctrl *CategoryController) List(c *gin.Context) {
	categories, err := ctrl.categories.ListActive()
	if err != nil {
		logger.Errorf("[%s] Failed to list categories: %s", c.GetString("requestId"), err)
		c.JSON(500, gin.H{"status": "error", "message": "Failed to fetch categories"})
		return
	}
	respondOK(c, gin.H{"categories": categories})
}

func (ctrl *CategoryController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(400, gin.H{"status": "error", "message": "Invalid category ID"})
		return
	}
	category, err := ctrl.categories.ByID(id)
	if err != nil {
		logger.Errorf("[%s] Failed to fetch category %d: %s", c.GetString("requestId"), id, err)
		c.JSON(500, gin.H{"status": "error", "message": "Failed to fetch category"})
		return
	}
	if category == nil {
		c.JSON(404, gin.H{"status": "error", "message": "Category not found"})
		return
	}
	respondOK(c, gin.H{"category": category})
}
