package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCategoryEnum(t *testing.T) {
	cats := GetCategories()
	assert.Len(t, cats, 9)
	for _, c := range cats {
		assert.True(t, IsKnownCategory(c), "类别 %s 应属于固定枚举", c)
	}

	assert.False(t, IsKnownCategory(""))
	assert.False(t, IsKnownCategory("lottery"))
}

func TestCategoryLabel_UnknownFallsBack(t *testing.T) {
	assert.Equal(t, "餐饮", CategoryLabel(CategoryFood))
	// 未知类别展示归入“其他”，原值不丢失（由调用方保留）
	assert.Equal(t, "其他", CategoryLabel("lottery"))
	assert.Equal(t, "其他", CategoryLabel(""))
}

func TestPaymentModeEnum(t *testing.T) {
	modes := GetPaymentModes()
	assert.Len(t, modes, 6)
	for _, m := range modes {
		assert.True(t, IsKnownPaymentMode(m), "支付方式 %s 应属于固定枚举", m)
	}

	assert.False(t, IsKnownPaymentMode("cheque"))
	assert.Equal(t, "其他", PaymentModeLabel("cheque"))
	assert.Equal(t, "UPI", PaymentModeLabel(PaymentModeUPI))
}

func TestUserDisplayName(t *testing.T) {
	u := User{Name: "Barath", Email: "barath@example.com"}
	assert.Equal(t, "Barath", u.DisplayName())

	u.Name = ""
	assert.Equal(t, "barath", u.DisplayName())
}

func TestPasswordResetValidity(t *testing.T) {
	code, err := GenerateVerificationCode()
	assert.NoError(t, err)
	assert.Len(t, code, 6)

	p := PasswordReset{Code: code, ExpiresAt: time.Now().Add(10 * time.Minute)}
	assert.True(t, p.IsValid())

	p.Used = true
	assert.False(t, p.IsValid())

	p.Used = false
	p.ExpiresAt = time.Now().Add(-time.Minute)
	assert.True(t, p.IsExpired())
	assert.False(t, p.IsValid())
}
