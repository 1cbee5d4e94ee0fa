package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"skilllink/model"
	"skilllink/pkg/errors"
	"skilllink/platform"
)

var logger = platform.Logger

func respondOK(c *gin.Context, data gin.H) {
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": data})
}

func respondCreated(c *gin.Context, message string, data gin.H) {
	c.JSON(http.StatusCreated, gin.H{"status": "success", "message": message, "data": data})
}

func respondMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": message})
}

// respondError 把错误映射成响应包络。底层错误只进日志，不出现在
// 响应体里。
func respondError(c *gin.Context, err error) {
	requestId := c.GetString("requestId")
	if appErr, ok := errors.AsAppError(err); ok {
		if appErr.Cause != nil {
			logger.Errorf("[%s] %s", requestId, appErr.Error())
		}
		c.JSON(appErr.Code.HTTPStatus(), gin.H{"status": "error", "message": appErr.Message})
		return
	}
	logger.Errorf("[%s] unexpected error: %s", requestId, err)
	c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Internal server error"})
}

// currentUser 取出认证中间件挂在请求上的用户
func currentUser(c *gin.Context) *model.User {
	v, ok := c.Get("currentUser")
	if !ok {
		return nil
	}
	user, _ := v.(*model.User)
	return user
}

func parsePage(c *gin.Context, defaultLimit int) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	return page, limit
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
