package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	// FamilyLinkPending 受邀成员尚未注册
	FamilyLinkPending = "pending"
	// FamilyLinkConnected 成员已注册并关联
	FamilyLinkConnected = "connected"
)

// FamilyLink 家庭成员关联（实验功能）
// 按邮箱邀请：对方已注册则立即 connected，否则保持 pending，
// 等对方注册后由 connect 流程补齐 MemberUserID。
type FamilyLink struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	OwnerID      uint           `json:"owner_id" gorm:"index;not null"`
	MemberEmail  string         `json:"member_email" gorm:"size:100;not null;index"`
	MemberUserID *uint          `json:"member_user_id" gorm:"index"` // NULL 表示尚未注册
	Status       string         `json:"status" gorm:"size:20;default:pending;index"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
	Owner        User           `json:"-" gorm:"foreignKey:OwnerID"`
}

// TableName 设置表名
func (FamilyLink) TableName() string {
	return "family_links"
}
