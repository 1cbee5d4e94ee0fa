package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skilllink/repository"
	"skilllink/service"
)

// AuthController ...
type AuthController struct {
	tokens *service.TokenService
	users  *repository.UserRepository
}

func NewAuthController(tokens *service.TokenService, users *repository.UserRepository) *AuthController {
	return &AuthController{tokens: tokens, users: users}
}

// RequireAuth ...
// JWT Authentication middleware attached to each request that needs to be
// authenticated; resolves the token to a user row and attaches it.
func (a *AuthController) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		md, err := a.tokens.ExtractTokenMetadata(c.Request)
		if err != nil {
			message := "Invalid token"
			switch err {
			case service.ErrTokenMissing:
				message = "Access token required"
			case service.ErrTokenExpired:
				message = "Token expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "error", "message": message})
			return
		}

		user, lookupErr := a.users.ByID(md.UserID)
		if lookupErr != nil {
			logger.Errorf("[%s] auth lookup failed: %s", c.GetString("requestId"), lookupErr)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Authentication failed"})
			return
		}
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "User not found"})
			return
		}
		if !user.IsActive {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"status": "error", "message": "Account is deactivated"})
			return
		}

		c.Set("currentUser", user)
		c.Set("UserId", user.ID)
		c.Next()
	}
}

// OptionalAuth attaches the user when a valid token is present and stays
// silent otherwise.
func (a *AuthController) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		md, err := a.tokens.ExtractTokenMetadata(c.Request)
		if err == nil {
			if user, lookupErr := a.users.ByID(md.UserID); lookupErr == nil && user != nil && user.IsActive {
				c.Set("currentUser", user)
				c.Set("UserId", user.ID)
			}
		}
		c.Next()
	}
}
