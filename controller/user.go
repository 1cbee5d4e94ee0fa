package controller

import (
	"github.com/gin-gonic/gin"

	"skilllink/model"
	"skilllink/service"
)

// UserController ...
type UserController struct {
	users *service.UserService
}

func NewUserController(users *service.UserService) *UserController {
	return &UserController{users: users}
}

func (ctrl *UserController) Register(c *gin.Context) {
	logger.Infof("[%s] Handling user registration request", c.GetString("requestId"))

	var input struct {
		Email       string     `json:"email"`
		PhoneNumber string     `json:"phoneNumber"`
		Password    string     `json:"password"`
		FullName    string     `json:"fullName"`
		Role        model.Role `json:"role"`
		City        string     `json:"city"`
		FcmToken    string     `json:"fcmToken"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		logger.Warnf("[%s] Invalid input, %s", c.GetString("requestId"), err)
		c.JSON(400, gin.H{"status": "error", "message": "Invalid input"})
		return
	}

	user, token, err := ctrl.users.Register(service.RegisterInput{
		Email:       input.Email,
		PhoneNumber: input.PhoneNumber,
		Password:    input.Password,
		FullName:    input.FullName,
		Role:        input.Role,
		City:        input.City,
		FcmToken:    input.FcmToken,
	})
	if err != nil {
		logger.Warnf("[%s] Failed to register user %s: %s", c.GetString("requestId"), input.Email, err)
		respondError(c, err)
		return
	}

	logger.Infof("[%s] User %s registered successfully", c.GetString("requestId"), user.Email)
	respondCreated(c, "User registered successfully", gin.H{"token": token, "user": user})
}

func (ctrl *UserController) Login(c *gin.Context) {
	logger.Infof("[%s] Handling user login request", c.GetString("requestId"))

	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		FcmToken string `json:"fcmToken"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"status": "error", "message": "Invalid request data"})
		return
	}

	user, token, err := ctrl.users.Login(service.LoginInput{
		Email:    input.Email,
		Password: input.Password,
		FcmToken: input.FcmToken,
	})
	if err != nil {
		logger.Warnf("[%s] User %s failed to login: %s", c.GetString("requestId"), input.Email, err)
		respondError(c, err)
		return
	}

	logger.Infof("[%s] User %s login successfully", c.GetString("requestId"), user.Email)
	c.JSON(200, gin.H{"status": "success", "message": "Login successful", "data": gin.H{"token": token, "user": user}})
}

func (ctrl *UserController) Profile(c *gin.Context) {
	respondOK(c, gin.H{"user": currentUser(c)})
}

func (ctrl *UserController) UpdateProfile(c *gin.Context) {
	var input struct {
		FullName        string     `json:"fullName"`
		Bio             string     `json:"bio"`
		Address         string     `json:"address"`
		City            string     `json:"city"`
		Location        string     `json:"location"`
		ProfileImageUrl string     `json:"profileImageUrl"`
		Role            model.Role `json:"role"`
		PhoneNumber     string     `json:"phoneNumber"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"status": "error", "message": "Invalid input"})
		return
	}

	user, err := ctrl.users.UpdateProfile(currentUser(c), service.ProfileUpdateInput{
		FullName:        input.FullName,
		Bio:             input.Bio,
		Address:         input.Address,
		City:            input.City,
		Location:        input.Location,
		ProfileImageUrl: input.ProfileImageUrl,
		Role:            input.Role,
		PhoneNumber:     input.PhoneNumber,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, gin.H{"status": "success", "message": "Profile updated successfully", "data": gin.H{"user": user}})
}

func (ctrl *UserController) UpdateFcmToken(c *gin.Context) {
	var input struct {
		FcmToken string `json:"fcmToken"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"status": "error", "message": "Invalid input"})
		return
	}
	if err := ctrl.users.UpdateFcmToken(currentUser(c), input.FcmToken); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "FCM token updated successfully")
}

func (ctrl *UserController) RefreshToken(c *gin.Context) {
	token, err := ctrl.users.RefreshToken(currentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, gin.H{"status": "success", "message": "Token refreshed successfully", "data": gin.H{"token": token}})
}
