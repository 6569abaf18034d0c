package models

import (
	"time"

	"gorm.io/gorm"
)

// UserSettings 应用设置（每个用户一条，首次访问时创建默认值）
type UserSettings struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	UserID        uint           `json:"user_id" gorm:"uniqueIndex;not null"`
	Notifications bool           `json:"notifications" gorm:"default:true"`
	Currency      string         `json:"currency" gorm:"size:10;default:INR"`
	Language      string         `json:"language" gorm:"size:10;default:en"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
	User          User           `json:"-" gorm:"foreignKey:UserID"`
}

// TableName 设置表名
func (UserSettings) TableName() string {
	return "user_settings"
}

// DefaultSettings 默认设置
func DefaultSettings(userID uint) UserSettings {
	return UserSettings{
		UserID:        userID,
		Notifications: true,
		Currency:      "INR",
		Language:      "en",
	}
}
