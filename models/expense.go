package models

import (
	"time"

	"gorm.io/gorm"
)

// Expense 消费记录模型
// ExpenseTime 为用户填写的消费发生时间，CreatedAt 为提交时间，
// 排序时 ExpenseTime 缺失则退回 CreatedAt。消费记录创建后不再原地修改。
type Expense struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	UserID      uint           `json:"user_id" gorm:"index;not null"`
	Category    string         `json:"category" gorm:"size:50;not null"`
	Amount      float64        `json:"amount" gorm:"type:decimal(10,2);not null"`
	PaymentMode string         `json:"payment_mode" gorm:"size:20;not null"`
	Description string         `json:"description" gorm:"size:255"`
	ExpenseTime time.Time      `json:"expense_time" gorm:"not null"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
	User        User           `json:"-" gorm:"foreignKey:UserID"`
}

// TableName 设置表名
func (Expense) TableName() string {
	return "expenses"
}

// Category 消费类别常量（与 App 端约定的固定枚举值）
const (
	CategoryFood          = "food"
	CategoryRent          = "rent"
	CategoryBills         = "bills"
	CategoryEducation     = "education"
	CategoryTransport     = "transport"
	CategoryShopping      = "shopping"
	CategoryMedical       = "medical"
	CategoryEntertainment = "entertainment"
	CategoryMiscellaneous = "miscellaneous"
)

// GetCategories 获取所有消费类别
func GetCategories() []string {
	return []string{
		CategoryFood,
		CategoryRent,
		CategoryBills,
		CategoryEducation,
		CategoryTransport,
		CategoryShopping,
		CategoryMedical,
		CategoryEntertainment,
		CategoryMiscellaneous,
	}
}

// categoryLabels 类别中文展示名
var categoryLabels = map[string]string{
	CategoryFood:          "餐饮",
	CategoryRent:          "房租",
	CategoryBills:         "账单",
	CategoryEducation:     "教育",
	CategoryTransport:     "交通",
	CategoryShopping:      "购物",
	CategoryMedical:       "医疗",
	CategoryEntertainment: "娱乐",
	CategoryMiscellaneous: "其他",
}

// IsKnownCategory 类别是否属于固定枚举
func IsKnownCategory(category string) bool {
	_, ok := categoryLabels[category]
	return ok
}

// CategoryLabel 类别展示名
// 未知类别原值保留在记录中，展示时归入“其他”
func CategoryLabel(category string) string {
	if label, ok := categoryLabels[category]; ok {
		return label
	}
	return categoryLabels[CategoryMiscellaneous]
}

// PaymentMode 支付方式常量
const (
	PaymentModeCash       = "cash"
	PaymentModeUPI        = "upi"
	PaymentModeDebitCard  = "debit_card"
	PaymentModeCreditCard = "credit_card"
	PaymentModeEMI        = "emi"
	PaymentModeOther      = "other"
)

// GetPaymentModes 获取所有支付方式
func GetPaymentModes() []string {
	return []string{
		PaymentModeCash,
		PaymentModeUPI,
		PaymentModeDebitCard,
		PaymentModeCreditCard,
		PaymentModeEMI,
		PaymentModeOther,
	}
}

// paymentModeLabels 支付方式中文展示名
var paymentModeLabels = map[string]string{
	PaymentModeCash:       "现金",
	PaymentModeUPI:        "UPI",
	PaymentModeDebitCard:  "借记卡",
	PaymentModeCreditCard: "信用卡",
	PaymentModeEMI:        "分期付款",
	PaymentModeOther:      "其他",
}

// IsKnownPaymentMode 支付方式是否属于固定枚举
func IsKnownPaymentMode(mode string) bool {
	_, ok := paymentModeLabels[mode]
	return ok
}

// PaymentModeLabel 支付方式展示名
func PaymentModeLabel(mode string) string {
	if label, ok := paymentModeLabels[mode]; ok {
		return label
	}
	return paymentModeLabels[PaymentModeOther]
}
