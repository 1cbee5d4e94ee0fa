package model

import "time"

type PostStatus string

const (
	PostStatusDraft      PostStatus = "draft"
	PostStatusOpen       PostStatus = "open"
	PostStatusAssigned   PostStatus = "assigned"
	PostStatusInProgress PostStatus = "in_progress"
	PostStatusCompleted  PostStatus = "completed"
	PostStatusCancelled  PostStatus = "cancelled"
)

func (s PostStatus) Valid() bool {
	switch s {
	case PostStatusDraft, PostStatusOpen, PostStatusAssigned,
		PostStatusInProgress, PostStatusCompleted, PostStatusCancelled:
		return true
	}
	return false
}

// ServicePost 客户发布的服务请求
type ServicePost struct {
	ID             uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         uint       `gorm:"not null;index" json:"userId"`
	CategoryID     uint       `gorm:"not null;index" json:"categoryId"`
	Title          string     `gorm:"type:varchar(255);not null" json:"title"`
	Description    string     `gorm:"type:text;not null" json:"description"`
	Budget         string     `gorm:"type:varchar(100)" json:"budget"`
	Location       string     `gorm:"type:varchar(255)" json:"location"`
	City           string     `gorm:"type:varchar(100);index" json:"city"`
	Timing         string     `gorm:"type:varchar(255)" json:"timing"`
	Status         PostStatus `gorm:"type:varchar(20);not null;default:open;index" json:"status"`
	HasAttachments bool       `gorm:"default:false" json:"hasAttachments"`
	ViewCount      int        `gorm:"default:0" json:"viewCount"`
	ResponseCount  int        `gorm:"default:0" json:"responseCount"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`

	User      *User              `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Category  *Category          `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Images    []PostImage        `gorm:"foreignKey:PostID" json:"images,omitempty"`
	Responses []ProviderResponse `gorm:"foreignKey:PostID" json:"responses,omitempty"`
}

type PostSummary struct {
	ID     uint       `json:"id"`
	Title  string     `json:"title"`
	Status PostStatus `json:"status"`
}

func (p *ServicePost) Summary() *PostSummary {
	if p == nil {
		return nil
	}
	return &PostSummary{ID: p.ID, Title: p.Title, Status: p.Status}
}
