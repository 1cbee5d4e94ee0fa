package model

import "time"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleProvider Role = "provider"
)

func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleProvider
}

// User 表示用户模型
type User struct {
	ID              uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Email           string     `gorm:"type:varchar(255);not null;unique;index" json:"email"`
	PhoneNumber     string     `gorm:"type:varchar(20);unique" json:"phoneNumber"`
	Password        string     `gorm:"type:varchar(255);not null" json:"-"`
	FullName        string     `gorm:"type:varchar(255);not null" json:"fullName"`
	Role            Role       `gorm:"type:varchar(20);not null;default:customer;index" json:"role"`
	ProfileImageUrl string     `gorm:"type:text" json:"profileImageUrl"`
	Bio             string     `gorm:"type:text" json:"bio"`
	Address         string     `gorm:"type:text" json:"address"`
	City            string     `gorm:"type:varchar(100);index" json:"city"`
	Location        string     `gorm:"type:varchar(255)" json:"location"`
	Rating          float64    `gorm:"type:decimal(3,2);default:0" json:"rating"`
	ReviewCount     int        `gorm:"default:0" json:"reviewCount"`
	FcmToken        string     `gorm:"type:varchar(255)" json:"fcmToken"`
	IsVerified      bool       `gorm:"default:false" json:"isVerified"`
	IsActive        bool       `gorm:"default:true" json:"isActive"`
	LastLoginAt     *time.Time `json:"lastLoginAt"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

// UserSummary 会话、消息等接口里返回的对端公开信息
type UserSummary struct {
	ID              uint    `json:"id"`
	FullName        string  `json:"fullName"`
	ProfileImageUrl string  `json:"profileImageUrl"`
	Role            Role    `json:"role"`
	City            string  `json:"city,omitempty"`
	Rating          float64 `json:"rating,omitempty"`
	ReviewCount     int     `json:"reviewCount,omitempty"`
}

func (u *User) Summary() *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{
		ID:              u.ID,
		FullName:        u.FullName,
		ProfileImageUrl: u.ProfileImageUrl,
		Role:            u.Role,
	}
}
