package api

import (
	"strconv"
	"strings"

	"finpal/database"
	"finpal/middleware"
	"finpal/models"

	"github.com/badoux/checkmail"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// FamilyHandler 家庭成员处理器（实验功能）
type FamilyHandler struct{}

// NewFamilyHandler 创建家庭成员处理器
func NewFamilyHandler() *FamilyHandler {
	return &FamilyHandler{}
}

// ConnectFamilyRequest 邀请家庭成员请求
type ConnectFamilyRequest struct {
	Email string `json:"email" binding:"required" example:"spouse@example.com"`
}

// FamilyMemberView 家庭成员展示结构
type FamilyMemberView struct {
	ID           uint    `json:"id"`
	Email        string  `json:"email"`
	Name         string  `json:"name"`
	Status       string  `json:"status"`
	TotalExpense float64 `json:"total_expense"`
}

// FamilyData 家庭成员列表数据
type FamilyData struct {
	Members     []FamilyMemberView `json:"members"`
	FamilyTotal float64            `json:"family_total"`
}

// List 获取家庭成员列表
// @Summary 获取家庭成员列表
// @Description 获取已邀请的家庭成员及各自的消费总额（仅已关联成员有总额），并汇总家庭总支出
// @Tags 家庭
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=FamilyData} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/family/members [get]
func (h *FamilyHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var links []models.FamilyLink
	if err := database.DB.Where("owner_id = ?", userID).Order("id ASC").Find(&links).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	members := make([]FamilyMemberView, 0, len(links))
	var familyTotal float64
	for _, link := range links {
		view := FamilyMemberView{
			ID:     link.ID,
			Email:  link.MemberEmail,
			Status: link.Status,
		}
		if link.Status == models.FamilyLinkConnected && link.MemberUserID != nil {
			var member models.User
			if err := database.DB.First(&member, *link.MemberUserID).Error; err == nil {
				view.Name = member.DisplayName()
			}
			// 已关联成员的消费总额
			var total float64
			database.DB.Model(&models.Expense{}).
				Where("user_id = ?", *link.MemberUserID).
				Select("COALESCE(SUM(amount), 0)").
				Scan(&total)
			view.TotalExpense = total
			familyTotal += total
		}
		members = append(members, view)
	}

	Success(c, FamilyData{
		Members:     members,
		FamilyTotal: familyTotal,
	})
}

// Connect 邀请家庭成员
// @Summary 邀请家庭成员
// @Description 按邮箱邀请家庭成员。对方已注册则立即关联（connected），否则保持待定（pending），注册后自动补齐关联。
// @Tags 家庭
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ConnectFamilyRequest true "邀请信息"
// @Success 200 {object} Response{data=models.FamilyLink} "邀请成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Failure 409 {object} Response "已邀请过该成员"
// @Router /api/v1/family/connect [post]
func (h *FamilyHandler) Connect(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req ConnectFamilyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if err := checkmail.ValidateFormat(email); err != nil {
		BadRequest(c, "邮箱格式不正确")
		return
	}
	if email == middleware.GetCurrentUserEmail(c) {
		BadRequest(c, "不能邀请自己")
		return
	}

	// 去重
	var existing models.FamilyLink
	if err := database.DB.Where("owner_id = ? AND member_email = ?", userID, email).First(&existing).Error; err == nil {
		Conflict(c, "已邀请过该成员")
		return
	}

	link := models.FamilyLink{
		OwnerID:     userID,
		MemberEmail: email,
		Status:      models.FamilyLinkPending,
	}

	// 对方已注册则立即关联
	var member models.User
	if err := database.DB.Where("email = ?", email).First(&member).Error; err == nil {
		link.MemberUserID = &member.ID
		link.Status = models.FamilyLinkConnected
	} else if err != gorm.ErrRecordNotFound {
		InternalError(c, SafeErrorMessage(err, "查询用户失败"))
		return
	}

	if err := database.DB.Create(&link).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建邀请失败"))
		return
	}

	SuccessWithMessage(c, "邀请成功", link)
}

// Delete 移除家庭成员
// @Summary 移除家庭成员
// @Description 移除一个已邀请的家庭成员（仅解除关联，不影响对方账号与记录）
// @Tags 家庭
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "成员关联ID"
// @Success 200 {object} Response "移除成功"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "成员不存在"
// @Router /api/v1/family/members/{id} [delete]
func (h *FamilyHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	var link models.FamilyLink
	if err := database.DB.Where("id = ? AND owner_id = ?", id, userID).First(&link).Error; err != nil {
		NotFound(c, "成员不存在")
		return
	}

	if err := database.DB.Delete(&link).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "移除失败"))
		return
	}

	SuccessWithMessage(c, "移除成功", nil)
}
