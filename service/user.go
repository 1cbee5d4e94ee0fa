package service

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"skilllink/model"
	"skilllink/pkg/errors"
	"skilllink/repository"
)

type UserService struct {
	users  *repository.UserRepository
	tokens *TokenService
}

func NewUserService(users *repository.UserRepository, tokens *TokenService) *UserService {
	return &UserService{users: users, tokens: tokens}
}

type RegisterInput struct {
	Email       string
	PhoneNumber string
	Password    string
	FullName    string
	Role        model.Role
	City        string
	FcmToken    string
}

func (s *UserService) Register(in RegisterInput) (*model.User, string, error) {
	if in.Email == "" || in.PhoneNumber == "" || in.Password == "" || in.FullName == "" || in.Role == "" {
		return nil, "", errors.InvalidArg("Email, phone number, password, full name, and role are required")
	}
	if !in.Role.Valid() {
		return nil, "", errors.InvalidArg(`Role must be either "customer" or "provider"`)
	}

	// 唯一性检查
	existing, err := s.users.ByEmailOrPhone(in.Email, in.PhoneNumber)
	if err != nil {
		return nil, "", errors.Internal("Failed to register user", err)
	}
	if existing != nil {
		if existing.Email == in.Email {
			return nil, "", errors.AlreadyExists("Email already registered")
		}
		return nil, "", errors.AlreadyExists("Phone number already registered")
	}

	// 密码加密
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", errors.Internal("Failed to register user", err)
	}

	user := &model.User{
		Email:       in.Email,
		PhoneNumber: in.PhoneNumber,
		Password:    string(hashedPassword),
		FullName:    in.FullName,
		Role:        in.Role,
		City:        in.City,
		FcmToken:    in.FcmToken,
		IsVerified:  false,
		IsActive:    true,
	}
	if err := s.users.Create(user); err != nil {
		return nil, "", errors.Internal("Failed to register user", err)
	}

	td, err := s.tokens.CreateToken(user.ID)
	if err != nil {
		return nil, "", errors.Internal("Failed to generate token", err)
	}
	return user, td.AccessToken, nil
}

type LoginInput struct {
	Email    string
	Password string
	FcmToken string
}

func (s *UserService) Login(in LoginInput) (*model.User, string, error) {
	if in.Email == "" || in.Password == "" {
		return nil, "", errors.InvalidArg("Email and password are required")
	}

	user, err := s.users.ByEmail(in.Email)
	if err != nil {
		return nil, "", errors.Internal("Failed to login", err)
	}
	if user == nil {
		return nil, "", errors.Unauthorized("Invalid email or password")
	}
	if !user.IsActive {
		return nil, "", errors.Forbidden("Account is deactivated. Please contact support.")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return nil, "", errors.Unauthorized("Invalid email or password")
	}

	// 更新推送令牌和最近登录时间
	if in.FcmToken != "" {
		user.FcmToken = in.FcmToken
	}
	now := time.Now()
	user.LastLoginAt = &now
	if err := s.users.Save(user); err != nil {
		return nil, "", errors.Internal("Failed to login", err)
	}

	td, err := s.tokens.CreateToken(user.ID)
	if err != nil {
		return nil, "", errors.Internal("Failed to generate token", err)
	}
	return user, td.AccessToken, nil
}

type ProfileUpdateInput struct {
	FullName        string
	Bio             string
	Address         string
	City            string
	Location        string
	ProfileImageUrl string
	Role            model.Role
	PhoneNumber     string
}

func (s *UserService) UpdateProfile(user *model.User, in ProfileUpdateInput) (*model.User, error) {
	if in.Role != "" && !in.Role.Valid() {
		return nil, errors.InvalidArg(`Role must be either "customer" or "provider"`)
	}

	if in.FullName != "" {
		user.FullName = in.FullName
	}
	if in.Bio != "" {
		user.Bio = in.Bio
	}
	if in.Address != "" {
		user.Address = in.Address
	}
	if in.City != "" {
		user.City = in.City
	}
	if in.Location != "" {
		user.Location = in.Location
	}
	if in.ProfileImageUrl != "" {
		user.ProfileImageUrl = in.ProfileImageUrl
	}
	if in.Role != "" {
		user.Role = in.Role
	}
	if in.PhoneNumber != "" {
		user.PhoneNumber = in.PhoneNumber
	}

	if err := s.users.Save(user); err != nil {
		return nil, errors.Internal("Failed to update profile", err)
	}
	return user, nil
}

func (s *UserService) UpdateFcmToken(user *model.User, fcmToken string) error {
	if fcmToken == "" {
		return errors.InvalidArg("FCM token is required")
	}
	user.FcmToken = fcmToken
	if err := s.users.Save(user); err != nil {
		return errors.Internal("Failed to update FCM token", err)
	}
	return nil
}

func (s *UserService) RefreshToken(userID uint) (string, error) {
	td, err := s.tokens.CreateToken(userID)
	if err != nil {
		return "", errors.Internal("Failed to refresh token", err)
	}
	return td.AccessToken, nil
}
