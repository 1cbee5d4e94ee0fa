package model

import "time"

type ResponseType string

const (
	ResponseTypeInterested ResponseType = "interested"
	ResponseTypeQuote      ResponseType = "quote"
	ResponseTypeAccepted   ResponseType = "accepted"
	ResponseTypeRejected   ResponseType = "rejected"
)

func (t ResponseType) Valid() bool {
	switch t {
	case ResponseTypeInterested, ResponseTypeQuote, ResponseTypeAccepted, ResponseTypeRejected:
		return true
	}
	return false
}

type ResponseStatus string

const (
	ResponseStatusPending   ResponseStatus = "pending"
	ResponseStatusAccepted  ResponseStatus = "accepted_by_customer"
	ResponseStatusRejected  ResponseStatus = "rejected_by_customer"
	ResponseStatusWithdrawn ResponseStatus = "withdrawn"
)

// ProviderResponse 服务商对服务请求的响应，同一服务商对同一请求只能响应一次
type ProviderResponse struct {
	ID            uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	PostID        uint           `gorm:"not null;index;uniqueIndex:idx_response_post_provider" json:"postId"`
	ProviderID    uint           `gorm:"not null;index;uniqueIndex:idx_response_post_provider" json:"providerId"`
	ResponseType  ResponseType   `gorm:"type:varchar(20);not null;default:interested" json:"responseType"`
	QuotedPrice   string         `gorm:"type:varchar(100)" json:"quotedPrice"`
	Message       string         `gorm:"type:text" json:"message"`
	EstimatedTime string         `gorm:"type:varchar(100)" json:"estimatedTime"`
	Status        ResponseStatus `gorm:"type:varchar(30);not null;default:pending" json:"status"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`

	Post     *ServicePost `gorm:"foreignKey:PostID" json:"post,omitempty"`
	Provider *User        `gorm:"foreignKey:ProviderID" json:"provider,omitempty"`
}
