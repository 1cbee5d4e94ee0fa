package model

import "time"

type Category struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"type:varchar(100);not null;unique" json:"name"`
	Icon        string    `gorm:"type:varchar(255)" json:"icon"`
	Description string    `gorm:"type:text" json:"description"`
	IsActive    bool      `gorm:"default:true" json:"isActive"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

type CategorySummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

func (c *Category) Summary() *CategorySummary {
	if c == nil {
		return nil
	}
	return &CategorySummary{ID: c.ID, Name: c.Name, Icon: c.Icon}
}
