package model

import "time"

type ReviewType string

const (
	ReviewCustomerToProvider ReviewType = "customer_to_provider"
	ReviewProviderToCustomer ReviewType = "provider_to_customer"
)

func (t ReviewType) Valid() bool {
	return t == ReviewCustomerToProvider || t == ReviewProviderToCustomer
}

type Review struct {
	ID         uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	PostID     uint       `gorm:"not null;index" json:"postId"`
	ReviewerID uint       `gorm:"not null;index" json:"reviewerId"`
	RevieweeID uint       `gorm:"not null;index" json:"revieweeId"`
	Rating     float64    `gorm:"type:decimal(2,1);not null" json:"rating"`
	Comment    string     `gorm:"type:text" json:"comment"`
	ReviewType ReviewType `gorm:"type:varchar(30);not null" json:"reviewType"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`

	Reviewer *User        `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
	Post     *ServicePost `gorm:"foreignKey:PostID" json:"post,omitempty"`
}
