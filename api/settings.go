package api

import (
	"errors"

	"finpal/database"
	"finpal/middleware"
	"finpal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SettingsHandler 应用设置处理器
type SettingsHandler struct{}

// NewSettingsHandler 创建应用设置处理器
func NewSettingsHandler() *SettingsHandler {
	return &SettingsHandler{}
}

// UpdateSettingsRequest 更新设置请求
// 使用指针区分“未提交”与“显式设为 false/空”
type UpdateSettingsRequest struct {
	Notifications *bool   `json:"notifications" example:"true"`
	Currency      *string `json:"currency" example:"INR"`
	Language      *string `json:"language" example:"en"`
}

// 支持的货币与语言选项
var (
	supportedCurrencies = map[string]bool{"INR": true, "USD": true, "EUR": true, "CNY": true}
	supportedLanguages  = map[string]bool{"en": true, "hi": true, "zh": true}
)

// Get 获取应用设置
// @Summary 获取应用设置
// @Description 获取当前用户的应用设置，首次访问时创建默认设置
// @Tags 设置
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=models.UserSettings} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/settings [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var settings models.UserSettings
	err := database.DB.Where("user_id = ?", userID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// 首次访问创建默认设置
		settings = models.DefaultSettings(userID)
		if err := database.DB.Create(&settings).Error; err != nil {
			InternalError(c, SafeErrorMessage(err, "创建默认设置失败"))
			return
		}
	} else if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询设置失败"))
		return
	}

	Success(c, settings)
}

// Update 更新应用设置
// @Summary 更新应用设置
// @Description 更新当前用户的通知开关、默认货币或显示语言，仅更新提交的字段
// @Tags 设置
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateSettingsRequest true "设置信息"
// @Success 200 {object} Response{data=models.UserSettings} "更新成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/settings [put]
func (h *SettingsHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	updates := make(map[string]interface{})
	if req.Notifications != nil {
		updates["notifications"] = *req.Notifications
	}
	if req.Currency != nil {
		if !supportedCurrencies[*req.Currency] {
			BadRequest(c, "不支持的货币: "+*req.Currency)
			return
		}
		updates["currency"] = *req.Currency
	}
	if req.Language != nil {
		if !supportedLanguages[*req.Language] {
			BadRequest(c, "不支持的语言: "+*req.Language)
			return
		}
		updates["language"] = *req.Language
	}
	if len(updates) == 0 {
		BadRequest(c, "没有需要更新的字段")
		return
	}

	var settings models.UserSettings
	err := database.DB.Where("user_id = ?", userID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = models.DefaultSettings(userID)
		if err := database.DB.Create(&settings).Error; err != nil {
			InternalError(c, SafeErrorMessage(err, "创建默认设置失败"))
			return
		}
	} else if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询设置失败"))
		return
	}

	if err := database.DB.Model(&settings).Updates(updates).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "更新设置失败"))
		return
	}

	database.DB.First(&settings, settings.ID)
	SuccessWithMessage(c, "设置已更新", settings)
}
