package model

import "gorm.io/gorm"

// Migrate 建表。实体在这里显式列出，新增模型时必须加进来。
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Category{},
		&ServicePost{},
		&PostImage{},
		&ProviderResponse{},
		&Review{},
		&Notification{},
		&Conversation{},
		&Message{},
	)
}
