package controller

import (
	"github.com/gin-gonic/gin"

	"skilllink/service"
)

type UploadController struct {
	uploads *service.UploadService
}

func NewUploadController(uploads *service.UploadService) *UploadController {
	return &UploadController{uploads: uploads}
}

func (ctrl *UploadController) UploadImage(c *gin.Context) {
	logger.Infof("[%s] Handling image upload request", c.GetString("requestId"))

	var input struct {
		Image string `json:"image"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Image == "" {
		c.JSON(400, gin.H{"status": "error", "message": "Image data is required"})
		return
	}

	result, err := ctrl.uploads.UploadImage(input.Image)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, gin.H{"status": "success", "message": "Image uploaded successfully", "data": result})
}
