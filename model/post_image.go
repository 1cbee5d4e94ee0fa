package model

import "time"

type PostImage struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	PostID       uint      `gorm:"not null;index;constraint:OnDelete:CASCADE" json:"postId"`
	ImageUrl     string    `gorm:"type:text;not null" json:"imageUrl"`
	ThumbnailUrl string    `gorm:"type:text" json:"thumbnailUrl"`
	SortOrder    int       `gorm:"default:0" json:"sortOrder"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
