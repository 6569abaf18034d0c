package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

const (
	// UserStatusLocked 锁定：不可登录
	UserStatusLocked = "locked"
	// UserStatusActive 正常：可登录
	UserStatusActive = "active"
)

const (
	// AuthProviderEmail 邮箱+密码注册
	AuthProviderEmail = "email"
)

// User 用户模型（FinPal 以邮箱为登录标识）
type User struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Name         string         `json:"name" gorm:"size:100"`
	Email        string         `json:"email" gorm:"uniqueIndex;size:100;not null"`
	Password     string         `json:"-" gorm:"size:255"`
	AuthProvider string         `json:"auth_provider" gorm:"size:20;default:email"`
	Status       string         `json:"status" gorm:"size:20;default:active;index"` // 用户状态：locked/active
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName 设置表名
func (User) TableName() string {
	return "users"
}

// DisplayName 展示名：未填写姓名时退回邮箱前缀
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	if i := strings.Index(u.Email, "@"); i > 0 {
		return u.Email[:i]
	}
	return u.Email
}
